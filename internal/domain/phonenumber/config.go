// Package phonenumber contains the phone-number configuration registry:
// per-country validation patterns with heuristic auto-repair of malformed
// legacy patterns, candidate normalization, and format classification.
package phonenumber

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

const entityName = "PhoneNumberConfig"

// Field bounds and formats.
const (
	MinCountryLength = 2
	MaxCountryLength = 100
	MaxPatternLength = 500
)

var (
	countryRegex     = regexp.MustCompile(`^[\p{L}][\p{L} \-]*$`)
	countryCodeRegex = regexp.MustCompile(`^\+\d{1,4}$`)
)

// Config pairs a country with its calling code and a compiled phone
// validation pattern. Instances are immutable; updates return copies.
type Config struct {
	// ID is the opaque storage identifier. Empty until persisted.
	ID string

	// Country is the country display name.
	Country string

	// CountryCode is the calling code including the leading plus ("+84").
	CountryCode string

	// Pattern is the validation pattern after auto-repair.
	Pattern string

	// PatternRepaired records whether auto-repair altered the input
	// pattern at construction time.
	PatternRepaired bool

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time

	// matcher is the compiled pattern. Nil only on legacy-reconstructed
	// configs whose stored pattern no longer compiles.
	matcher *regexp.Regexp
}

// Params bundles the inputs for New. Timestamps default to now when zero.
type Params struct {
	ID          string
	Country     string
	CountryCode string
	Pattern     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates a validated Config. The pattern is first passed through
// RepairPattern, then checked for length and compilability.
func New(p Params) (*Config, error) {
	pattern, repaired := RepairPattern(p.Pattern)

	c := &Config{
		ID:              p.ID,
		Country:         strings.TrimSpace(p.Country),
		CountryCode:     strings.TrimSpace(p.CountryCode),
		Pattern:         pattern,
		PatternRepaired: repaired,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	matcher, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, shared.NewValidationError(entityName,
			fmt.Sprintf("pattern does not compile: %v", err))
	}
	c.matcher = matcher

	return c, nil
}

func (c *Config) validate() error {
	if err := shared.Required(entityName, "country", c.Country); err != nil {
		return err
	}
	if err := shared.MinLength(entityName, "country", c.Country, MinCountryLength); err != nil {
		return err
	}
	if err := shared.MaxLength(entityName, "country", c.Country, MaxCountryLength); err != nil {
		return err
	}
	if !countryRegex.MatchString(c.Country) {
		return shared.NewValidationError(entityName, "country may only contain letters, spaces, and hyphens")
	}
	if err := shared.Required(entityName, "country code", c.CountryCode); err != nil {
		return err
	}
	if !countryCodeRegex.MatchString(c.CountryCode) {
		return shared.NewValidationError(entityName, "country code must be a plus sign followed by 1-4 digits")
	}
	if err := shared.Required(entityName, "pattern", c.Pattern); err != nil {
		return err
	}
	if len(c.Pattern) > MaxPatternLength {
		return shared.NewValidationError(entityName,
			fmt.Sprintf("pattern cannot exceed %d characters", MaxPatternLength))
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PHONE NUMBER VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// ValidationResult is the structured outcome of ValidatePhoneNumber.
// A broken pattern yields IsValid=false with a message, never an error.
type ValidationResult struct {
	IsValid     bool   `json:"isValid"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	Normalized  string `json:"normalized"`
	Pattern     string `json:"pattern"`
	Message     string `json:"message"`
}

// ValidatePhoneNumber normalizes the candidate and tests it against the
// compiled pattern. It never returns an error: configs force-loaded via
// ReconstructLegacy may carry an uncompilable pattern, and in that case
// the result is a negative one with an explanatory message.
func (c *Config) ValidatePhoneNumber(raw string) ValidationResult {
	result := ValidationResult{
		Country:     c.Country,
		CountryCode: c.CountryCode,
		Normalized:  NormalizeNumber(raw),
		Pattern:     c.Pattern,
	}

	if c.matcher == nil {
		result.Message = fmt.Sprintf("validation pattern for %s is not usable", c.Country)
		return result
	}
	if result.Normalized == "" {
		result.Message = "phone number is empty"
		return result
	}

	if c.matcher.MatchString(result.Normalized) {
		result.IsValid = true
		result.Message = fmt.Sprintf("valid phone number for %s", c.Country)
	} else {
		result.Message = fmt.Sprintf("phone number does not match the %s format", c.Country)
	}
	return result
}

// HasUsablePattern reports whether the config carries a compiled pattern.
// False only for legacy-reconstructed configs with broken stored patterns.
func (c *Config) HasUsablePattern() bool {
	return c.matcher != nil
}

// ══════════════════════════════════════════════════════════════════════════════
// FORMAT CLASSIFICATION
// ══════════════════════════════════════════════════════════════════════════════

// IsInternationalFormat reports whether the pattern accepts numbers in
// international form, detected by the presence of the escaped calling
// code in the pattern text.
func (c *Config) IsInternationalFormat() bool {
	escaped := `\+` + strings.TrimPrefix(c.CountryCode, "+")
	return strings.Contains(c.Pattern, escaped)
}

// IsLocalFormat reports whether the pattern accepts numbers in local
// form, detected by an anchor on a leading trunk zero or digit class.
func (c *Config) IsLocalFormat() bool {
	body := strings.TrimPrefix(c.Pattern, "^")
	body = strings.TrimLeft(body, "(")
	if strings.HasPrefix(body, "0") || strings.HasPrefix(body, `\d`) {
		return true
	}
	return strings.Contains(c.Pattern, "|0)") || strings.Contains(c.Pattern, "|0|")
}

// SupportedFormats returns a human-readable list of the number formats
// this config accepts.
func (c *Config) SupportedFormats() []string {
	var formats []string
	if c.IsInternationalFormat() {
		formats = append(formats, fmt.Sprintf("international (%s...)", c.CountryCode))
	}
	if c.IsLocalFormat() {
		formats = append(formats, "local (0...)")
	}
	if len(formats) == 0 {
		formats = append(formats, "pattern-defined")
	}
	return formats
}

// ══════════════════════════════════════════════════════════════════════════════
// COPY-ON-UPDATE
// ══════════════════════════════════════════════════════════════════════════════

// UpdateCountryCode returns a new Config with the validated new calling
// code. The receiver is never modified.
func (c *Config) UpdateCountryCode(code string) (*Config, error) {
	updated := *c
	updated.CountryCode = strings.TrimSpace(code)
	updated.UpdatedAt = time.Now().UTC()
	if err := updated.validate(); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateRegex returns a new Config with the new pattern, re-running
// auto-repair, validation, and compilation. The receiver is never
// modified.
func (c *Config) UpdateRegex(pattern string) (*Config, error) {
	return New(Params{
		ID:          c.ID,
		Country:     c.Country,
		CountryCode: c.CountryCode,
		Pattern:     pattern,
		CreatedAt:   c.CreatedAt,
	})
}

// String returns a short representation for logging.
func (c *Config) String() string {
	return fmt.Sprintf("PhoneNumberConfig{ID: %s, Country: %s, Code: %s}", c.ID, c.Country, c.CountryCode)
}

// ══════════════════════════════════════════════════════════════════════════════
// SERIALIZATION & LEGACY RECONSTRUCTION
// ══════════════════════════════════════════════════════════════════════════════

// Snapshot is the plain serializable form of a Config, including the
// derived classification fields.
type Snapshot struct {
	ID              string    `json:"id,omitempty"`
	Country         string    `json:"country"`
	CountryCode     string    `json:"countryCode"`
	Pattern         string    `json:"pattern"`
	PatternRepaired bool      `json:"patternRepaired"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Derived.
	IsInternational  bool     `json:"isInternational"`
	IsLocal          bool     `json:"isLocal"`
	SupportedFormats []string `json:"supportedFormats"`
}

// Snapshot returns the plain serializable form of the config.
func (c *Config) Snapshot() Snapshot {
	return Snapshot{
		ID:               c.ID,
		Country:          c.Country,
		CountryCode:      c.CountryCode,
		Pattern:          c.Pattern,
		PatternRepaired:  c.PatternRepaired,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		IsInternational:  c.IsInternationalFormat(),
		IsLocal:          c.IsLocalFormat(),
		SupportedFormats: c.SupportedFormats(),
	}
}

// FromSnapshot reconstructs a Config with full validation. Derived
// fields are recomputed, not trusted. The repaired flag is restored from
// the snapshot since the stored pattern is already the repaired one.
func FromSnapshot(s Snapshot) (*Config, error) {
	c, err := New(Params{
		ID:          s.ID,
		Country:     s.Country,
		CountryCode: s.CountryCode,
		Pattern:     s.Pattern,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}
	c.PatternRepaired = s.PatternRepaired
	return c, nil
}

// ReconstructLegacy rebuilds a Config from pre-existing stored data,
// bypassing format validation. The stored pattern is compiled best-effort:
// when it no longer compiles the matcher stays nil and every subsequent
// ValidatePhoneNumber call returns a negative result instead of failing.
// For ingestion of previously-stored records only, never for new input.
func ReconstructLegacy(s Snapshot) (*Config, error) {
	country := strings.TrimSpace(s.Country)
	if country == "" {
		return nil, shared.NewValidationError(entityName, "country is required")
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

	c := &Config{
		ID:              s.ID,
		Country:         country,
		CountryCode:     strings.TrimSpace(s.CountryCode),
		Pattern:         s.Pattern,
		PatternRepaired: s.PatternRepaired,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}

	if matcher, err := regexp.Compile(s.Pattern); err == nil {
		c.matcher = matcher
	}

	return c, nil
}
