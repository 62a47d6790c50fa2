package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
	"github.com/uni-hub/student-records-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const studentColumns = `
	id, student_id, email, first_name, last_name, date_of_birth, gender,
	phone_number, address, identity_document, faculty_id, program_id,
	class_id, status, enrollment_date, graduation_date, gpa,
	created_at, updated_at`

// studentSortColumns maps ListOptions sort keys to real columns. Unknown
// keys fall back to student_id.
var studentSortColumns = map[string]string{
	"student_id":      "student_id",
	"email":           "email",
	"last_name":       "last_name",
	"enrollment_date": "enrollment_date",
	"gpa":             "gpa",
	"created_at":      "created_at",
}

// StudentRepository implements student.Repository for PostgreSQL. The
// address and identity document travel as JSONB snapshots; rows are
// rebuilt through the aggregate's validating reconstruction path.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Create stores a new student.
func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	query := `
		INSERT INTO students (
			id, student_id, email, first_name, last_name, date_of_birth, gender,
			phone_number, address, identity_document, faculty_id, program_id,
			class_id, status, enrollment_date, graduation_date, gpa,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	addrJSON, docJSON, err := marshalOwned(s)
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ctx, query,
		s.ID,
		s.StudentID,
		s.Email,
		s.FirstName,
		s.LastName,
		s.DateOfBirth,
		string(s.Gender),
		s.PhoneNumber,
		addrJSON,
		docJSON,
		s.FacultyID,
		s.ProgramID,
		nullIfEmpty(s.ClassID),
		string(s.Status),
		s.EnrollmentDate,
		s.GraduationDate,
		s.GPA,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrStudentAlreadyExists
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// GetByID returns a student by internal ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*student.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE id = $1`
	return r.scanStudent(r.conn.QueryRow(ctx, query, id))
}

// GetByStudentID returns a student by the 8-digit student number.
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*student.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE student_id = $1`
	return r.scanStudent(r.conn.QueryRow(ctx, query, studentID))
}

// GetByEmail returns a student by email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*student.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE email = LOWER($1)`
	return r.scanStudent(r.conn.QueryRow(ctx, query, email))
}

// Update replaces the stored state of a student.
func (r *StudentRepository) Update(ctx context.Context, s *student.Student) error {
	query := `
		UPDATE students SET
			student_id = $2, email = $3, first_name = $4, last_name = $5,
			date_of_birth = $6, gender = $7, phone_number = $8, address = $9,
			identity_document = $10, faculty_id = $11, program_id = $12,
			class_id = $13, status = $14, enrollment_date = $15,
			graduation_date = $16, gpa = $17, updated_at = $18
		WHERE id = $1
	`

	addrJSON, docJSON, err := marshalOwned(s)
	if err != nil {
		return err
	}

	tag, err := r.conn.Exec(ctx, query,
		s.ID,
		s.StudentID,
		s.Email,
		s.FirstName,
		s.LastName,
		s.DateOfBirth,
		string(s.Gender),
		s.PhoneNumber,
		addrJSON,
		docJSON,
		s.FacultyID,
		s.ProgramID,
		nullIfEmpty(s.ClassID),
		string(s.Status),
		s.EnrollmentDate,
		s.GraduationDate,
		s.GPA,
		s.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrStudentAlreadyExists
		}
		return fmt.Errorf("failed to update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student record.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrStudentNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Listing and search
// ─────────────────────────────────────────────────────────────────────────────

// GetAll returns students with pagination.
func (r *StudentRepository) GetAll(ctx context.Context, opts student.ListOptions) ([]*student.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students` + orderClause(opts) + ` LIMIT $1 OFFSET $2`
	return r.queryStudents(ctx, query, opts.Limit, opts.Offset)
}

// GetByFaculty returns students belonging to the given faculty.
func (r *StudentRepository) GetByFaculty(ctx context.Context, facultyID string, opts student.ListOptions) ([]*student.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE faculty_id = $1` + orderClause(opts) + ` LIMIT $2 OFFSET $3`
	return r.queryStudents(ctx, query, facultyID, opts.Limit, opts.Offset)
}

// GetByStatus returns students with the given status.
func (r *StudentRepository) GetByStatus(ctx context.Context, status student.Status, opts student.ListOptions) ([]*student.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE status = $1` + orderClause(opts) + ` LIMIT $2 OFFSET $3`
	return r.queryStudents(ctx, query, string(status), opts.Limit, opts.Offset)
}

// Search finds students by name, student number, or email fragment.
func (r *StudentRepository) Search(ctx context.Context, search string, opts student.ListOptions) ([]*student.Student, error) {
	query := `SELECT` + studentColumns + `
		FROM students
		WHERE student_id ILIKE $1
		   OR email ILIKE $1
		   OR first_name ILIKE $1
		   OR last_name ILIKE $1` + orderClause(opts) + ` LIMIT $2 OFFSET $3`
	return r.queryStudents(ctx, query, "%"+search+"%", opts.Limit, opts.Offset)
}

// Count returns the total number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// ExistsByStudentID checks existence by student number.
func (r *StudentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check student existence: %w", err)
	}
	return exists, nil
}

// ExistsByEmail checks existence by email.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE email = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check student existence: %w", err)
	}
	return exists, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Row mapping
// ─────────────────────────────────────────────────────────────────────────────

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...interface{}) ([]*student.Student, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []*student.Student
	for rows.Next() {
		s, err := r.scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

func (r *StudentRepository) scanStudent(row pgx.Row) (*student.Student, error) {
	var (
		snap           student.Snapshot
		addrJSON       []byte
		docJSON        []byte
		classID        *string
		graduationDate *time.Time
		gpa            *float64
	)

	err := row.Scan(
		&snap.ID,
		&snap.StudentID,
		&snap.Email,
		&snap.FirstName,
		&snap.LastName,
		&snap.DateOfBirth,
		&snap.Gender,
		&snap.PhoneNumber,
		&addrJSON,
		&docJSON,
		&snap.FacultyID,
		&snap.ProgramID,
		&classID,
		&snap.Status,
		&snap.EnrollmentDate,
		&graduationDate,
		&gpa,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}

	if classID != nil {
		snap.ClassID = *classID
	}
	snap.GraduationDate = graduationDate
	snap.GPA = gpa

	if err := json.Unmarshal(addrJSON, &snap.Address); err != nil {
		return nil, fmt.Errorf("failed to unmarshal address: %w", err)
	}
	if err := json.Unmarshal(docJSON, &snap.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity document: %w", err)
	}

	s, err := student.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("stored student %s fails validation: %w", snap.ID, err)
	}
	return s, nil
}

func marshalOwned(s *student.Student) ([]byte, []byte, error) {
	addrJSON, err := json.Marshal(s.Address.Snapshot())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal address: %w", err)
	}
	docJSON, err := json.Marshal(s.Document.Snapshot())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal identity document: %w", err)
	}
	return addrJSON, docJSON, nil
}

func orderClause(opts student.ListOptions) string {
	column, ok := studentSortColumns[opts.SortBy]
	if !ok {
		column = "student_id"
	}
	direction := "ASC"
	if opts.SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
