package emaildomain

import (
	"context"
	"strings"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// AllowList is a domain service that answers whether an email address is
// acceptable for registration, given the set of registered domains.
// It holds no state beyond the repository handle.
type AllowList struct {
	repo Repository
}

// NewAllowList creates an AllowList backed by the given repository.
func NewAllowList(repo Repository) *AllowList {
	return &AllowList{repo: repo}
}

// Match returns the registered domain that matches the email address, or
// ErrEmailDomainNotFound when no registered domain matches. Malformed
// addresses yield a validation error.
func (s *AllowList) Match(ctx context.Context, email string) (*EmailDomain, error) {
	extracted, err := ExtractDomainFromEmail(email)
	if err != nil {
		return nil, err
	}

	d, err := s.repo.GetByDomain(ctx, extracted)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// IsAllowed reports whether the email's domain is registered. Malformed
// addresses and lookup misses both yield false; infrastructure failures
// are returned as errors.
func (s *AllowList) IsAllowed(ctx context.Context, email string) (bool, error) {
	_, err := s.Match(ctx, email)
	if err == nil {
		return true, nil
	}
	if shared.IsNotFound(err) || shared.IsValidation(err) {
		return false, nil
	}
	return false, err
}

// MatchHierarchy returns every registered domain that either equals the
// email's domain or is a parent of it, most specific first. An empty
// slice means nothing matched.
func (s *AllowList) MatchHierarchy(ctx context.Context, email string) ([]*EmailDomain, error) {
	extracted, err := ExtractDomainFromEmail(email)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*EmailDomain
	for _, d := range all {
		if d.Domain == extracted || d.IsParentDomainOf(extracted) {
			matched = append(matched, d)
		}
	}

	// Longer domains are more specific.
	sortBySpecificity(matched)
	return matched, nil
}

func sortBySpecificity(domains []*EmailDomain) {
	for i := 1; i < len(domains); i++ {
		for j := i; j > 0 && moreSpecific(domains[j], domains[j-1]); j-- {
			domains[j], domains[j-1] = domains[j-1], domains[j]
		}
	}
}

func moreSpecific(a, b *EmailDomain) bool {
	la, lb := strings.Count(a.Domain, "."), strings.Count(b.Domain, ".")
	if la != lb {
		return la > lb
	}
	return len(a.Domain) > len(b.Domain)
}
