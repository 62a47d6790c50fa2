package faculty

import "context"

// Repository defines the storage contract for faculties. Uniqueness of
// the faculty code is arbitrated by the storage layer.
type Repository interface {
	// Create stores a new faculty.
	// Returns ErrFacultyAlreadyExists when the code is taken.
	Create(ctx context.Context, f *Faculty) error

	// GetByID returns a faculty by opaque ID.
	// Returns ErrFacultyNotFound when missing.
	GetByID(ctx context.Context, id string) (*Faculty, error)

	// GetByCode returns a faculty by its short code.
	GetByCode(ctx context.Context, code string) (*Faculty, error)

	// Update replaces the stored state of a faculty.
	Update(ctx context.Context, f *Faculty) error

	// Delete removes a faculty.
	Delete(ctx context.Context, id string) error

	// GetAll returns all faculties.
	GetAll(ctx context.Context) ([]*Faculty, error)

	// ExistsByCode checks existence by code.
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
