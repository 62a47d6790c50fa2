package query

import (
	"context"
	"fmt"

	"github.com/uni-hub/student-records-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsQuery filters and pages the student collection. At most one
// of FacultyID, Status, and Search applies; they are checked in that
// order.
type ListStudentsQuery struct {
	FacultyID string
	Status    student.Status
	Search    string

	Offset   int
	Limit    int
	SortBy   string
	SortDesc bool
}

// ListStudentsResult is a page of student snapshots.
type ListStudentsResult struct {
	Students []student.Snapshot
	Total    int
	Offset   int
	Limit    int
}

// ListStudentsHandler handles the ListStudentsQuery.
type ListStudentsHandler struct {
	studentRepo student.Repository
}

// NewListStudentsHandler creates a new ListStudentsHandler.
func NewListStudentsHandler(studentRepo student.Repository) *ListStudentsHandler {
	return &ListStudentsHandler{studentRepo: studentRepo}
}

// Handle executes the query.
func (h *ListStudentsHandler) Handle(ctx context.Context, q ListStudentsQuery) (*ListStudentsResult, error) {
	opts := student.DefaultListOptions()
	if q.Offset > 0 {
		opts = opts.WithOffset(q.Offset)
	}
	if q.Limit > 0 {
		opts = opts.WithLimit(q.Limit)
	}
	if q.SortBy != "" {
		opts = opts.WithSort(q.SortBy, q.SortDesc)
	}

	students, err := h.list(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("list_students: %w", err)
	}

	total, err := h.studentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_students: count failed: %w", err)
	}

	result := &ListStudentsResult{
		Students: make([]student.Snapshot, 0, len(students)),
		Total:    total,
		Offset:   opts.Offset,
		Limit:    opts.Limit,
	}
	for _, s := range students {
		result.Students = append(result.Students, s.Snapshot())
	}
	return result, nil
}

func (h *ListStudentsHandler) list(ctx context.Context, q ListStudentsQuery, opts student.ListOptions) ([]*student.Student, error) {
	switch {
	case q.FacultyID != "":
		return h.studentRepo.GetByFaculty(ctx, q.FacultyID, opts)
	case q.Status != "":
		return h.studentRepo.GetByStatus(ctx, q.Status, opts)
	case q.Search != "":
		return h.studentRepo.Search(ctx, q.Search, opts)
	default:
		return h.studentRepo.GetAll(ctx, opts)
	}
}
