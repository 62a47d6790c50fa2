// Package query contains read operations (CQRS - Queries).
// Queries never change state; they return snapshots ready for a
// presentation layer.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uni-hub/student-records-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentQuery identifies a student by exactly one of the keys.
type GetStudentQuery struct {
	// ID is the internal ID.
	ID string

	// StudentID is the 8-digit student number.
	StudentID string

	// Email is the contact email.
	Email string
}

// Validate validates the query.
func (q GetStudentQuery) Validate() error {
	if q.ID == "" && q.StudentID == "" && q.Email == "" {
		return errors.New("get_student: one of id, student_id, or email must be provided")
	}
	return nil
}

// cacheTTL bounds staleness of cached student reads.
const cacheTTL = 5 * time.Minute

// GetStudentHandler handles the GetStudentQuery.
type GetStudentHandler struct {
	studentRepo student.Repository
	cache       student.Cache
}

// NewGetStudentHandler creates a new GetStudentHandler.
// The cache is optional and may be nil.
func NewGetStudentHandler(studentRepo student.Repository, cache student.Cache) *GetStudentHandler {
	return &GetStudentHandler{studentRepo: studentRepo, cache: cache}
}

// Handle executes the query and returns the student's snapshot.
func (h *GetStudentHandler) Handle(ctx context.Context, q GetStudentQuery) (*student.Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("get_student: validation failed: %w", err)
	}

	if q.ID != "" && h.cache != nil {
		if cached, err := h.cache.Get(ctx, q.ID); err == nil && cached != nil {
			snap := cached.Snapshot()
			return &snap, nil
		}
	}

	s, err := h.find(ctx, q)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, s, cacheTTL)
	}

	snap := s.Snapshot()
	return &snap, nil
}

func (h *GetStudentHandler) find(ctx context.Context, q GetStudentQuery) (*student.Student, error) {
	switch {
	case q.ID != "":
		return h.studentRepo.GetByID(ctx, q.ID)
	case q.StudentID != "":
		return h.studentRepo.GetByStudentID(ctx, q.StudentID)
	default:
		return h.studentRepo.GetByEmail(ctx, q.Email)
	}
}
