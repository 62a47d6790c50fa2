package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/uni-hub/student-records-hub/internal/domain/faculty"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE FACULTY COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// CreateFacultyCommand contains the data needed to create a faculty.
type CreateFacultyCommand struct {
	Code string
	Name string
}

// Validate validates the command.
func (c CreateFacultyCommand) Validate() error {
	if c.Code == "" {
		return errors.New("create_faculty: code must be provided")
	}
	return nil
}

// CreateFacultyHandler handles the CreateFacultyCommand.
type CreateFacultyHandler struct {
	facultyRepo faculty.Repository
}

// NewCreateFacultyHandler creates a new CreateFacultyHandler.
func NewCreateFacultyHandler(facultyRepo faculty.Repository) *CreateFacultyHandler {
	return &CreateFacultyHandler{facultyRepo: facultyRepo}
}

// Handle executes the creation. Code uniqueness is checked up front and
// again arbitrated by the storage layer's unique index, so a concurrent
// duplicate still surfaces as ErrFacultyAlreadyExists.
func (h *CreateFacultyHandler) Handle(ctx context.Context, cmd CreateFacultyCommand) (*faculty.Faculty, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("create_faculty: validation failed: %w", err)
	}

	f, err := faculty.New(faculty.Params{
		ID:   uuid.NewString(),
		Code: cmd.Code,
		Name: cmd.Name,
	})
	if err != nil {
		return nil, err
	}

	if taken, err := h.facultyRepo.ExistsByCode(ctx, f.Code); err != nil {
		return nil, fmt.Errorf("create_faculty: uniqueness check failed: %w", err)
	} else if taken {
		return nil, shared.ErrFacultyAlreadyExists
	}

	if err := h.facultyRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create_faculty: failed to save faculty: %w", err)
	}

	return f, nil
}
