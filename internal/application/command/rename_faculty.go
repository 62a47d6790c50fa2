package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/uni-hub/student-records-hub/internal/domain/faculty"
)

// ══════════════════════════════════════════════════════════════════════════════
// RENAME FACULTY COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// RenameFacultyCommand contains the data needed to rename a faculty.
type RenameFacultyCommand struct {
	// ID is the internal ID of the faculty to rename.
	ID string

	// NewName is the new display name.
	NewName string
}

// Validate validates the command.
func (c RenameFacultyCommand) Validate() error {
	if c.ID == "" {
		return errors.New("rename_faculty: id must be provided")
	}
	return nil
}

// RenameFacultyHandler handles the RenameFacultyCommand.
type RenameFacultyHandler struct {
	facultyRepo faculty.Repository
}

// NewRenameFacultyHandler creates a new RenameFacultyHandler.
func NewRenameFacultyHandler(facultyRepo faculty.Repository) *RenameFacultyHandler {
	return &RenameFacultyHandler{facultyRepo: facultyRepo}
}

// Handle executes the rename and returns the new faculty state.
func (h *RenameFacultyHandler) Handle(ctx context.Context, cmd RenameFacultyCommand) (*faculty.Faculty, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("rename_faculty: validation failed: %w", err)
	}

	current, err := h.facultyRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("rename_faculty: failed to find faculty: %w", err)
	}

	renamed, err := current.Rename(cmd.NewName)
	if err != nil {
		return nil, err
	}

	if err := h.facultyRepo.Update(ctx, renamed); err != nil {
		return nil, fmt.Errorf("rename_faculty: failed to save faculty: %w", err)
	}

	return renamed, nil
}
