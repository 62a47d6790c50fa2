package phonenumber

import (
	"context"
	"strings"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// Matcher is a domain service that finds the config responsible for a
// phone number among all registered configs.
type Matcher struct {
	repo Repository
}

// NewMatcher creates a Matcher backed by the given repository.
func NewMatcher(repo Repository) *Matcher {
	return &Matcher{repo: repo}
}

// BestMatch finds the config for a phone number in two tiers. The strict
// tier returns the first config whose pattern matches the normalized
// number; only when no pattern matches does the fallback tier run,
// returning the first config whose calling code (with or without its
// plus) prefixes the number. The strict tier fully precedes the
// fallback tier. Returns ErrPhoneConfigNotFound when both tiers miss.
func (m *Matcher) BestMatch(ctx context.Context, raw string) (*Config, error) {
	configs, err := m.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range configs {
		if c.ValidatePhoneNumber(raw).IsValid {
			return c, nil
		}
	}

	normalized := NormalizeNumber(raw)
	for _, c := range configs {
		code := c.CountryCode
		if code == "" {
			continue
		}
		if strings.HasPrefix(normalized, code) ||
			strings.HasPrefix(normalized, strings.TrimPrefix(code, "+")) {
			return c, nil
		}
	}

	return nil, shared.ErrPhoneConfigNotFound
}

// Validate runs BestMatch and returns the matched config's structured
// validation result. A miss on both tiers yields ErrPhoneConfigNotFound.
func (m *Matcher) Validate(ctx context.Context, raw string) (ValidationResult, error) {
	c, err := m.BestMatch(ctx, raw)
	if err != nil {
		return ValidationResult{Normalized: NormalizeNumber(raw)}, err
	}
	return c.ValidatePhoneNumber(raw), nil
}
