package student

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// These interfaces define the storage contract. Implementations live in
// infrastructure/persistence. Uniqueness of natural keys (student ID,
// email) is the storage layer's concern, not the aggregate's.
// ══════════════════════════════════════════════════════════════════════════════

// Repository defines the persistence operations for students.
type Repository interface {
	// Create stores a new student.
	// Returns ErrStudentAlreadyExists when the student ID or email is taken.
	Create(ctx context.Context, s *Student) error

	// GetByID returns a student by opaque ID.
	// Returns ErrStudentNotFound when missing.
	GetByID(ctx context.Context, id string) (*Student, error)

	// GetByStudentID returns a student by the 8-digit student number.
	GetByStudentID(ctx context.Context, studentID string) (*Student, error)

	// GetByEmail returns a student by email.
	GetByEmail(ctx context.Context, email string) (*Student, error)

	// Update replaces the stored state of a student.
	// Returns ErrStudentNotFound when missing.
	Update(ctx context.Context, s *Student) error

	// Delete removes a student record.
	Delete(ctx context.Context, id string) error

	// GetAll returns students with pagination.
	GetAll(ctx context.Context, opts ListOptions) ([]*Student, error)

	// GetByFaculty returns students belonging to the given faculty.
	GetByFaculty(ctx context.Context, facultyID string, opts ListOptions) ([]*Student, error)

	// GetByStatus returns students with the given status.
	GetByStatus(ctx context.Context, status Status, opts ListOptions) ([]*Student, error)

	// Search finds students by name, student ID, or email fragment.
	Search(ctx context.Context, query string, opts ListOptions) ([]*Student, error)

	// Count returns the total number of students.
	Count(ctx context.Context) (int, error)

	// ExistsByStudentID checks existence by student number.
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)

	// ExistsByEmail checks existence by email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ListOptions holds pagination and sorting parameters.
type ListOptions struct {
	// Offset for pagination.
	Offset int

	// Limit is the maximum number of records.
	Limit int

	// SortBy is the sort column.
	SortBy string

	// SortDesc sorts descending when true.
	SortDesc bool
}

// DefaultListOptions returns the default pagination.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Offset:   0,
		Limit:    50,
		SortBy:   "student_id",
		SortDesc: false,
	}
}

// WithOffset sets the offset.
func (o ListOptions) WithOffset(offset int) ListOptions {
	o.Offset = offset
	return o
}

// WithLimit sets the limit.
func (o ListOptions) WithLimit(limit int) ListOptions {
	o.Limit = limit
	return o
}

// WithSort sets the sort column and direction.
func (o ListOptions) WithSort(field string, desc bool) ListOptions {
	o.SortBy = field
	o.SortDesc = desc
	return o
}

// ══════════════════════════════════════════════════════════════════════════════
// CACHE INTERFACE
// ══════════════════════════════════════════════════════════════════════════════

// Cache defines caching of frequently requested student records
// (implemented with Redis in infrastructure).
type Cache interface {
	// Get fetches a student from the cache.
	Get(ctx context.Context, id string) (*Student, error)

	// Set stores a student in the cache.
	Set(ctx context.Context, s *Student, ttl time.Duration) error

	// Invalidate drops all cached entries for a student.
	Invalidate(ctx context.Context, id string) error
}
