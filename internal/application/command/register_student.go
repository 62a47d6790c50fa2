// Package command contains write operations (CQRS - Commands).
// Commands are responsible for changing the state of the system.
package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/uni-hub/student-records-hub/internal/domain/emaildomain"
	"github.com/uni-hub/student-records-hub/internal/domain/faculty"
	"github.com/uni-hub/student-records-hub/internal/domain/phonenumber"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
	"github.com/uni-hub/student-records-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER STUDENT COMMAND
// Creates a new student record after checking the email allow-list, the
// phone-number registry, and faculty existence.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterStudentCommand contains the data needed to register a student.
type RegisterStudentCommand struct {
	StudentID   string
	Email       string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      student.Gender
	PhoneNumber string

	// Address components.
	Street   string
	Ward     string
	District string
	City     string
	Country  string

	// Identity document.
	Document student.DocumentParams

	FacultyID      string
	ProgramID      string
	ClassID        string
	EnrollmentDate time.Time
}

// Validate performs the shallow command-level checks. Business rules run
// in the aggregate constructor.
func (c RegisterStudentCommand) Validate() error {
	if c.StudentID == "" {
		return errors.New("register_student: student_id must be provided")
	}
	if c.Email == "" {
		return errors.New("register_student: email must be provided")
	}
	return nil
}

// RegisterStudentResult contains the result of registration.
type RegisterStudentResult struct {
	// Student is the created record.
	Student *student.Student

	// EmailDomain is the allow-list entry the email matched.
	EmailDomain *emaildomain.EmailDomain

	// PhoneValidation is the phone-number check outcome.
	PhoneValidation phonenumber.ValidationResult
}

// RegisterStudentHandler handles the RegisterStudentCommand.
type RegisterStudentHandler struct {
	studentRepo  student.Repository
	facultyRepo  faculty.Repository
	allowList    *emaildomain.AllowList
	phoneMatcher *phonenumber.Matcher
}

// NewRegisterStudentHandler creates a new RegisterStudentHandler.
func NewRegisterStudentHandler(
	studentRepo student.Repository,
	facultyRepo faculty.Repository,
	allowList *emaildomain.AllowList,
	phoneMatcher *phonenumber.Matcher,
) *RegisterStudentHandler {
	return &RegisterStudentHandler{
		studentRepo:  studentRepo,
		facultyRepo:  facultyRepo,
		allowList:    allowList,
		phoneMatcher: phoneMatcher,
	}
}

// Handle executes the registration.
func (h *RegisterStudentHandler) Handle(ctx context.Context, cmd RegisterStudentCommand) (*RegisterStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("register_student: validation failed: %w", err)
	}

	// The email must belong to a registered domain.
	matchedDomain, err := h.allowList.Match(ctx, cmd.Email)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewValidationError("Student", "email domain is not in the allow-list")
		}
		return nil, fmt.Errorf("register_student: allow-list check failed: %w", err)
	}

	// The phone number must be recognized by some registered config.
	phoneResult, err := h.phoneMatcher.Validate(ctx, cmd.PhoneNumber)
	if err != nil && !shared.IsNotFound(err) {
		return nil, fmt.Errorf("register_student: phone check failed: %w", err)
	}

	// The faculty must exist.
	if _, err := h.facultyRepo.GetByID(ctx, cmd.FacultyID); err != nil {
		return nil, fmt.Errorf("register_student: faculty lookup failed: %w", err)
	}

	// Natural keys must be free.
	if taken, err := h.studentRepo.ExistsByStudentID(ctx, cmd.StudentID); err != nil {
		return nil, fmt.Errorf("register_student: uniqueness check failed: %w", err)
	} else if taken {
		return nil, shared.ErrStudentAlreadyExists
	}
	if taken, err := h.studentRepo.ExistsByEmail(ctx, cmd.Email); err != nil {
		return nil, fmt.Errorf("register_student: uniqueness check failed: %w", err)
	} else if taken {
		return nil, shared.ErrStudentAlreadyExists
	}

	addr, err := student.NewAddress(cmd.Street, cmd.Ward, cmd.District, cmd.City, cmd.Country)
	if err != nil {
		return nil, err
	}

	doc, err := student.NewDocument(cmd.Document)
	if err != nil {
		return nil, err
	}

	s, err := student.New(student.Params{
		ID:             uuid.NewString(),
		StudentID:      cmd.StudentID,
		Email:          cmd.Email,
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		DateOfBirth:    cmd.DateOfBirth,
		Gender:         cmd.Gender,
		PhoneNumber:    cmd.PhoneNumber,
		Address:        addr,
		Document:       doc,
		FacultyID:      cmd.FacultyID,
		ProgramID:      cmd.ProgramID,
		ClassID:        cmd.ClassID,
		Status:         student.StatusActive,
		EnrollmentDate: cmd.EnrollmentDate,
	})
	if err != nil {
		return nil, err
	}

	if err := h.studentRepo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("register_student: failed to save student: %w", err)
	}

	return &RegisterStudentResult{
		Student:         s,
		EmailDomain:     matchedDomain,
		PhoneValidation: phoneResult,
	}, nil
}
