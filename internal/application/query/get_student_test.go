package query

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
	"github.com/uni-hub/student-records-hub/internal/domain/student"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ─────────────────────────────────────────────────────────────────────────────

type memStudentRepo struct {
	byID     map[string]*student.Student
	getCalls int
}

func newMemStudentRepo(students ...*student.Student) *memStudentRepo {
	r := &memStudentRepo{byID: make(map[string]*student.Student)}
	for _, s := range students {
		r.byID[s.ID] = s
	}
	return r
}

func (r *memStudentRepo) Create(_ context.Context, s *student.Student) error {
	r.byID[s.ID] = s
	return nil
}

func (r *memStudentRepo) GetByID(_ context.Context, id string) (*student.Student, error) {
	r.getCalls++
	s, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	return s, nil
}

func (r *memStudentRepo) GetByStudentID(_ context.Context, studentID string) (*student.Student, error) {
	for _, s := range r.byID {
		if s.StudentID == studentID {
			return s, nil
		}
	}
	return nil, shared.ErrStudentNotFound
}

func (r *memStudentRepo) GetByEmail(_ context.Context, email string) (*student.Student, error) {
	for _, s := range r.byID {
		if s.Email == strings.ToLower(email) {
			return s, nil
		}
	}
	return nil, shared.ErrStudentNotFound
}

func (r *memStudentRepo) Update(_ context.Context, s *student.Student) error {
	r.byID[s.ID] = s
	return nil
}

func (r *memStudentRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *memStudentRepo) GetAll(_ context.Context, _ student.ListOptions) ([]*student.Student, error) {
	out := make([]*student.Student, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, nil
}

func (r *memStudentRepo) GetByFaculty(_ context.Context, facultyID string, _ student.ListOptions) ([]*student.Student, error) {
	var out []*student.Student
	for _, s := range r.byID {
		if s.FacultyID == facultyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memStudentRepo) GetByStatus(_ context.Context, status student.Status, _ student.ListOptions) ([]*student.Student, error) {
	var out []*student.Student
	for _, s := range r.byID {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memStudentRepo) Search(_ context.Context, q string, _ student.ListOptions) ([]*student.Student, error) {
	var out []*student.Student
	for _, s := range r.byID {
		if strings.Contains(s.LastName, q) || strings.Contains(s.StudentID, q) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memStudentRepo) Count(_ context.Context) (int, error) {
	return len(r.byID), nil
}

func (r *memStudentRepo) ExistsByStudentID(_ context.Context, studentID string) (bool, error) {
	_, err := r.GetByStudentID(context.Background(), studentID)
	return err == nil, nil
}

func (r *memStudentRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

type memStudentCache struct {
	entries map[string]*student.Student
}

func newMemStudentCache() *memStudentCache {
	return &memStudentCache{entries: make(map[string]*student.Student)}
}

func (c *memStudentCache) Get(_ context.Context, id string) (*student.Student, error) {
	s, ok := c.entries[id]
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	return s, nil
}

func (c *memStudentCache) Set(_ context.Context, s *student.Student, _ time.Duration) error {
	c.entries[s.ID] = s
	return nil
}

func (c *memStudentCache) Invalidate(_ context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────────────────────────────────────

func testStudent(t *testing.T, id, studentID, email string) *student.Student {
	t.Helper()

	addr, err := student.NewAddress("227 Nguyen Van Cu", "", "District 5", "Ho Chi Minh City", "Vietnam")
	require.NoError(t, err)

	doc, err := student.NewDocument(student.DocumentParams{
		Type:       student.DocumentTypeCCCD,
		Number:     "079202012345",
		IssueDate:  time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC),
		IssuePlace: "Cuc Canh sat QLHC",
		ExpiryDate: time.Date(2031, 1, 15, 0, 0, 0, 0, time.UTC),
		HasChip:    true,
	})
	require.NoError(t, err)

	s, err := student.New(student.Params{
		ID:             id,
		StudentID:      studentID,
		Email:          email,
		FirstName:      "An",
		LastName:       "Nguyen",
		DateOfBirth:    time.Date(2002, 5, 10, 0, 0, 0, 0, time.UTC),
		Gender:         student.GenderFemale,
		PhoneNumber:    "0901234567",
		Address:        addr,
		Document:       doc,
		FacultyID:      "fac-1",
		ProgramID:      "prog-cs",
		Status:         student.StatusActive,
		EnrollmentDate: time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestGetStudent_ByEachKey(t *testing.T) {
	s := testStudent(t, "id-1", "20120001", "an.nguyen@student.hcmus.edu.vn")
	repo := newMemStudentRepo(s)
	handler := NewGetStudentHandler(repo, nil)

	byID, err := handler.Handle(context.Background(), GetStudentQuery{ID: "id-1"})
	require.NoError(t, err)
	assert.Equal(t, "20120001", byID.StudentID)

	byNumber, err := handler.Handle(context.Background(), GetStudentQuery{StudentID: "20120001"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", byNumber.ID)

	byEmail, err := handler.Handle(context.Background(), GetStudentQuery{Email: "an.nguyen@student.hcmus.edu.vn"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", byEmail.ID)
}

func TestGetStudent_RequiresAKey(t *testing.T) {
	handler := NewGetStudentHandler(newMemStudentRepo(), nil)

	_, err := handler.Handle(context.Background(), GetStudentQuery{})
	assert.Error(t, err)
}

func TestGetStudent_NotFound(t *testing.T) {
	handler := NewGetStudentHandler(newMemStudentRepo(), nil)

	_, err := handler.Handle(context.Background(), GetStudentQuery{ID: "missing"})
	assert.True(t, shared.IsNotFound(err))
}

func TestGetStudent_PopulatesAndServesCache(t *testing.T) {
	s := testStudent(t, "id-1", "20120001", "an.nguyen@student.hcmus.edu.vn")
	repo := newMemStudentRepo(s)
	cache := newMemStudentCache()
	handler := NewGetStudentHandler(repo, cache)

	_, err := handler.Handle(context.Background(), GetStudentQuery{ID: "id-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)
	assert.Contains(t, cache.entries, "id-1")

	// Second read is served from the cache.
	snap, err := handler.Handle(context.Background(), GetStudentQuery{ID: "id-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)
	assert.Equal(t, "20120001", snap.StudentID)
}

func TestListStudents_FilterPrecedence(t *testing.T) {
	active := testStudent(t, "id-1", "20120001", "an.nguyen@student.hcmus.edu.vn")
	repo := newMemStudentRepo(active)
	handler := NewListStudentsHandler(repo)

	byFaculty, err := handler.Handle(context.Background(), ListStudentsQuery{FacultyID: "fac-1"})
	require.NoError(t, err)
	require.Len(t, byFaculty.Students, 1)
	assert.Equal(t, 1, byFaculty.Total)

	byStatus, err := handler.Handle(context.Background(), ListStudentsQuery{Status: student.StatusGraduated})
	require.NoError(t, err)
	assert.Empty(t, byStatus.Students)

	all, err := handler.Handle(context.Background(), ListStudentsQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Students, 1)
}
