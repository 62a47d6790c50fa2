package shared

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATION GUARDS
// Small guard functions entities call during construction. Each guard is a
// pure predicate plus a raise path: on failure it returns a *DomainError
// built by NewValidationError, tagged with the invoking entity's name.
// ══════════════════════════════════════════════════════════════════════════════

// Loose email shape check: one @ with a dotted host part. Entities that need
// a stricter hostname grammar (the email domain registry) layer their own
// checks on top.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required checks that a string field is present and non-blank.
func Required(entity, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(entity, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// MinLength checks that a field has at least min characters (after trimming).
func MinLength(entity, field, value string, min int) error {
	if len([]rune(strings.TrimSpace(value))) < min {
		return NewValidationError(entity, fmt.Sprintf("%s must be at least %d characters", field, min))
	}
	return nil
}

// MaxLength checks that a field has at most max characters.
func MaxLength(entity, field, value string, max int) error {
	if len([]rune(value)) > max {
		return NewValidationError(entity, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}

// ValidEmail checks that the value looks like an email address.
func ValidEmail(entity, field, value string) error {
	if !emailRegex.MatchString(value) {
		return NewValidationError(entity, fmt.Sprintf("%s must be a valid email address", field))
	}
	return nil
}

// ValidPastDate checks that the timestamp is set and not in the future.
func ValidPastDate(entity, field string, value time.Time) error {
	if value.IsZero() {
		return NewValidationError(entity, fmt.Sprintf("%s is required", field))
	}
	if value.After(time.Now()) {
		return NewValidationError(entity, fmt.Sprintf("%s cannot be in the future", field))
	}
	return nil
}

// InAllowedValues checks enum membership.
func InAllowedValues(entity, field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return NewValidationError(entity, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
}
