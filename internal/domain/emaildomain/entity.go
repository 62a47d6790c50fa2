// Package emaildomain contains the allowed-email-domain registry entity
// and its hierarchy and classification queries. Zero external dependencies.
package emaildomain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

const entityName = "EmailDomain"

// Domain length bounds.
const (
	MinDomainLength = 3
	MaxDomainLength = 255
)

var (
	// labelRegex: one hostname label - letters, digits, hyphens, not
	// starting or ending with a hyphen.
	labelRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

	// tldRegex: the final label is letters only, at least two of them.
	tldRegex = regexp.MustCompile(`^[a-z]{2,}$`)

	// emailShapeRegex captures the host part of a one-@ address with a
	// dotted host.
	emailShapeRegex = regexp.MustCompile(`^[^\s@]+@([^\s@]+\.[^\s@]+)$`)
)

// Suffixes that classify a domain as educational or governmental.
var (
	educationalSuffixes = []string{".edu.vn", ".ac.vn", ".edu", ".ac"}
	governmentSuffixes  = []string{".gov.vn", ".gov", ".mil"}
)

// EmailDomain is one entry of the allowed-email-domain registry: a single
// normalized (lowercased, trimmed) domain with hierarchy query methods.
type EmailDomain struct {
	// ID is the opaque storage identifier. Empty until persisted.
	ID string

	// Domain is the normalized domain string (e.g. "student.hcmus.edu.vn").
	Domain string

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
}

// Params bundles the inputs for New. Timestamps default to now when zero.
type Params struct {
	ID        string
	Domain    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a validated EmailDomain. The domain is normalized to
// lowercase and checked against the hostname grammar: dot-separated
// labels of letters/digits/hyphens, a letters-only TLD of at least two
// characters, no leading/trailing/consecutive dots or hyphens.
func New(p Params) (*EmailDomain, error) {
	domain := Normalize(p.Domain)
	if err := validateDomain(domain); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	return &EmailDomain{
		ID:        p.ID,
		Domain:    domain,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Normalize lowercases and trims a domain candidate.
func Normalize(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

func validateDomain(domain string) error {
	if err := shared.Required(entityName, "domain", domain); err != nil {
		return err
	}
	if len(domain) < MinDomainLength || len(domain) > MaxDomainLength {
		return shared.NewValidationError(entityName,
			fmt.Sprintf("domain must be between %d and %d characters", MinDomainLength, MaxDomainLength))
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return shared.NewValidationError(entityName, "domain cannot start or end with a dot")
	}
	if strings.Contains(domain, "..") {
		return shared.NewValidationError(entityName, "domain cannot contain consecutive dots")
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return shared.NewValidationError(entityName, "domain cannot start or end with a hyphen")
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return shared.NewValidationError(entityName, "domain must contain at least two labels")
	}
	for _, label := range labels {
		if !labelRegex.MatchString(label) {
			return shared.NewValidationError(entityName,
				fmt.Sprintf("invalid domain label: %q", label))
		}
	}
	if !tldRegex.MatchString(labels[len(labels)-1]) {
		return shared.NewValidationError(entityName, "top-level domain must be at least 2 letters")
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// QUERY METHODS
// ══════════════════════════════════════════════════════════════════════════════

// MatchesEmail reports whether the email's domain part equals this domain,
// case-insensitively. Malformed input yields false, never an error.
func (d *EmailDomain) MatchesEmail(email string) bool {
	extracted, err := ExtractDomainFromEmail(email)
	if err != nil {
		return false
	}
	return extracted == d.Domain
}

// IsSubdomainOf reports whether this domain is a subdomain of parent
// (i.e. it ends with "." + parent).
func (d *EmailDomain) IsSubdomainOf(parent string) bool {
	p := Normalize(parent)
	if p == "" {
		return false
	}
	return strings.HasSuffix(d.Domain, "."+p)
}

// IsParentDomainOf reports whether this domain is a parent of child
// (i.e. child ends with "." + this domain).
func (d *EmailDomain) IsParentDomainOf(child string) bool {
	c := Normalize(child)
	if c == "" {
		return false
	}
	return strings.HasSuffix(c, "."+d.Domain)
}

// TLD returns the top-level domain (the last label).
func (d *EmailDomain) TLD() string {
	labels := strings.Split(d.Domain, ".")
	return labels[len(labels)-1]
}

// BaseDomain returns the last two labels, or the whole domain when it has
// two labels or fewer. Used to ignore subdomain variation.
func (d *EmailDomain) BaseDomain() string {
	labels := strings.Split(d.Domain, ".")
	if len(labels) <= 2 {
		return d.Domain
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// IsEducationalDomain reports whether the domain belongs to an
// educational institution (.edu, .ac, .edu.vn, .ac.vn suffix or exact).
func (d *EmailDomain) IsEducationalDomain() bool {
	return matchesAnySuffix(d.Domain, educationalSuffixes)
}

// IsGovernmentDomain reports whether the domain belongs to a government
// institution (.gov, .gov.vn, .mil suffix or exact).
func (d *EmailDomain) IsGovernmentDomain() bool {
	return matchesAnySuffix(d.Domain, governmentSuffixes)
}

func matchesAnySuffix(domain string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(domain, suffix) || domain == strings.TrimPrefix(suffix, ".") {
			return true
		}
	}
	return false
}

// ExtractDomainFromEmail returns the lowercased domain part of an email
// address, or a validation error when the address does not match the
// local@host.tld shape.
func ExtractDomainFromEmail(email string) (string, error) {
	m := emailShapeRegex.FindStringSubmatch(strings.TrimSpace(email))
	if m == nil {
		return "", shared.NewValidationError(entityName, "invalid email address format")
	}
	return strings.ToLower(m[1]), nil
}

// String returns a short representation for logging.
func (d *EmailDomain) String() string {
	return fmt.Sprintf("EmailDomain{ID: %s, Domain: %s}", d.ID, d.Domain)
}

// ══════════════════════════════════════════════════════════════════════════════
// SERIALIZATION & LEGACY RECONSTRUCTION
// ══════════════════════════════════════════════════════════════════════════════

// Snapshot is the plain serializable form of an EmailDomain, including
// the derived classification fields.
type Snapshot struct {
	ID        string    `json:"id,omitempty"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Derived.
	TLD           string `json:"tld"`
	BaseDomain    string `json:"baseDomain"`
	IsEducational bool   `json:"isEducational"`
	IsGovernment  bool   `json:"isGovernment"`
}

// Snapshot returns the plain serializable form of the domain.
func (d *EmailDomain) Snapshot() Snapshot {
	return Snapshot{
		ID:            d.ID,
		Domain:        d.Domain,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		TLD:           d.TLD(),
		BaseDomain:    d.BaseDomain(),
		IsEducational: d.IsEducationalDomain(),
		IsGovernment:  d.IsGovernmentDomain(),
	}
}

// FromSnapshot reconstructs an EmailDomain with full validation. Derived
// fields are recomputed, not trusted.
func FromSnapshot(s Snapshot) (*EmailDomain, error) {
	return New(Params{
		ID:        s.ID,
		Domain:    s.Domain,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	})
}

// ReconstructLegacy rebuilds an EmailDomain from pre-existing stored data,
// bypassing the hostname grammar. Only "domain non-empty" is enforced.
// For ingestion of previously-stored records only, never for new input.
func ReconstructLegacy(s Snapshot) (*EmailDomain, error) {
	domain := Normalize(s.Domain)
	if domain == "" {
		return nil, shared.NewValidationError(entityName, "domain is required")
	}

	now := time.Now().UTC()
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	return &EmailDomain{
		ID:        s.ID,
		Domain:    domain,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
