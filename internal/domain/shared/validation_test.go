package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("Student", "email", "a@b.vn"))

	err := Required("Student", "email", "   ")
	assert.Error(t, err)
	assert.Equal(t, "Student validation error: email is required", err.Error())
}

func TestMinLength_CountsRunes(t *testing.T) {
	// Two runes, six bytes.
	assert.NoError(t, MinLength("Faculty", "code", "общ", 2))
	assert.Error(t, MinLength("Faculty", "code", "x", 2))
}

func TestMaxLength(t *testing.T) {
	assert.NoError(t, MaxLength("Faculty", "name", "CNTT", 10))
	assert.Error(t, MaxLength("Faculty", "name", "a very long faculty name", 5))
}

func TestValidEmail(t *testing.T) {
	assert.NoError(t, ValidEmail("Student", "email", "student@hcmus.edu.vn"))
	assert.Error(t, ValidEmail("Student", "email", "no-at-sign"))
	assert.Error(t, ValidEmail("Student", "email", "a@b"))
	assert.Error(t, ValidEmail("Student", "email", "a b@c.vn"))
}

func TestValidPastDate(t *testing.T) {
	assert.NoError(t, ValidPastDate("Student", "date of birth", time.Now().AddDate(-20, 0, 0)))
	assert.Error(t, ValidPastDate("Student", "date of birth", time.Time{}))
	assert.Error(t, ValidPastDate("Student", "date of birth", time.Now().AddDate(1, 0, 0)))
}

func TestInAllowedValues(t *testing.T) {
	allowed := []string{"active", "graduated"}
	assert.NoError(t, InAllowedValues("Student", "status", "active", allowed))

	err := InAllowedValues("Student", "status", "retired", allowed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestDomainError_Unwrapping(t *testing.T) {
	err := NewValidationError("EmailDomain", "domain is required")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "EmailDomain validation error: domain is required", err.Error())
}

func TestSentinelHelpers(t *testing.T) {
	assert.True(t, IsNotFound(ErrStudentNotFound))
	assert.True(t, IsNotFound(ErrPhoneConfigNotFound))
	assert.True(t, IsAlreadyExists(ErrFacultyAlreadyExists))
	assert.False(t, IsNotFound(ErrFacultyAlreadyExists))
}
