package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/uni-hub/student-records-hub/internal/domain/faculty"
	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FACULTY REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// FacultyRepository implements faculty.Repository for PostgreSQL.
// Code uniqueness is enforced by a case-insensitive unique index, so two
// concurrent creations of the same code resolve to one winner and one
// ErrFacultyAlreadyExists.
type FacultyRepository struct {
	conn *Connection
}

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(conn *Connection) *FacultyRepository {
	return &FacultyRepository{conn: conn}
}

// Create stores a new faculty.
func (r *FacultyRepository) Create(ctx context.Context, f *faculty.Faculty) error {
	query := `
		INSERT INTO faculties (id, code, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.Exec(ctx, query, f.ID, f.Code, f.Name, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrFacultyAlreadyExists
		}
		return fmt.Errorf("failed to create faculty: %w", err)
	}

	return nil
}

// GetByID returns a faculty by internal ID.
func (r *FacultyRepository) GetByID(ctx context.Context, id string) (*faculty.Faculty, error) {
	query := `SELECT id, code, name, created_at, updated_at FROM faculties WHERE id = $1`
	return r.scanFaculty(r.conn.QueryRow(ctx, query, id))
}

// GetByCode returns a faculty by its short code.
func (r *FacultyRepository) GetByCode(ctx context.Context, code string) (*faculty.Faculty, error) {
	query := `SELECT id, code, name, created_at, updated_at FROM faculties WHERE LOWER(code) = LOWER($1)`
	return r.scanFaculty(r.conn.QueryRow(ctx, query, code))
}

// Update replaces the stored state of a faculty.
func (r *FacultyRepository) Update(ctx context.Context, f *faculty.Faculty) error {
	query := `UPDATE faculties SET code = $2, name = $3, updated_at = $4 WHERE id = $1`

	tag, err := r.conn.Exec(ctx, query, f.ID, f.Code, f.Name, f.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrFacultyAlreadyExists
		}
		return fmt.Errorf("failed to update faculty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrFacultyNotFound
	}

	return nil
}

// Delete removes a faculty.
func (r *FacultyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM faculties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete faculty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrFacultyNotFound
	}
	return nil
}

// GetAll returns all faculties ordered by code.
func (r *FacultyRepository) GetAll(ctx context.Context) ([]*faculty.Faculty, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT id, code, name, created_at, updated_at FROM faculties ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query faculties: %w", err)
	}
	defer rows.Close()

	var faculties []*faculty.Faculty
	for rows.Next() {
		f, err := r.scanFaculty(rows)
		if err != nil {
			return nil, err
		}
		faculties = append(faculties, f)
	}

	return faculties, rows.Err()
}

// ExistsByCode checks existence by code.
func (r *FacultyRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM faculties WHERE LOWER(code) = LOWER($1))`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check faculty existence: %w", err)
	}
	return exists, nil
}

func (r *FacultyRepository) scanFaculty(row pgx.Row) (*faculty.Faculty, error) {
	var snap faculty.Snapshot

	err := row.Scan(&snap.ID, &snap.Code, &snap.Name, &snap.CreatedAt, &snap.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("failed to scan faculty: %w", err)
	}

	// Stored rows may predate the current code format rules.
	f, err := faculty.ReconstructLegacy(snap)
	if err != nil {
		return nil, fmt.Errorf("stored faculty %s fails reconstruction: %w", snap.ID, err)
	}
	return f, nil
}
