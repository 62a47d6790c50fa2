package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/uni-hub/student-records-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE STUDENT COMMAND
// Applies a partial change through the aggregate's copy-on-write path, so
// an update producing an invalid state fails exactly as construction would.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStudentCommand contains a partial student change.
type UpdateStudentCommand struct {
	// ID is the internal ID of the student to update.
	ID string

	// Changes holds the fields to replace. Nil pointers keep the current
	// values.
	Changes student.Update
}

// Validate validates the command.
func (c UpdateStudentCommand) Validate() error {
	if c.ID == "" {
		return errors.New("update_student: id must be provided")
	}
	return nil
}

// UpdateStudentHandler handles the UpdateStudentCommand.
type UpdateStudentHandler struct {
	studentRepo student.Repository
	cache       student.Cache
}

// NewUpdateStudentHandler creates a new UpdateStudentHandler.
// The cache is optional and may be nil.
func NewUpdateStudentHandler(studentRepo student.Repository, cache student.Cache) *UpdateStudentHandler {
	return &UpdateStudentHandler{studentRepo: studentRepo, cache: cache}
}

// Handle executes the update and returns the new student state.
func (h *UpdateStudentHandler) Handle(ctx context.Context, cmd UpdateStudentCommand) (*student.Student, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("update_student: validation failed: %w", err)
	}

	current, err := h.studentRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("update_student: failed to find student: %w", err)
	}

	updated, err := current.UpdateWith(cmd.Changes)
	if err != nil {
		return nil, err
	}

	if err := h.studentRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update_student: failed to save student: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.Invalidate(ctx, updated.ID)
	}

	return updated, nil
}
