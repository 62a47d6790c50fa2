package student

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument(t *testing.T) Document {
	t.Helper()
	doc, err := NewDocument(DocumentParams{
		Type:       DocumentTypeCCCD,
		Number:     "012345678901",
		IssueDate:  time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		IssuePlace: "Cục Cảnh sát QLHC về TTXH",
		ExpiryDate: time.Now().AddDate(8, 0, 0),
		HasChip:    true,
	})
	require.NoError(t, err)
	return doc
}

func validAddress(t *testing.T) Address {
	t.Helper()
	addr, err := NewAddress("227 Nguyen Van Cu", "Ward 4", "District 5", "Ho Chi Minh City", "Vietnam")
	require.NoError(t, err)
	return addr
}

func validParams(t *testing.T) Params {
	t.Helper()
	return Params{
		StudentID:      "20120001",
		Email:          "An.Nguyen@student.hcmus.edu.vn",
		FirstName:      "An",
		LastName:       "Nguyen",
		DateOfBirth:    time.Date(2002, 5, 10, 0, 0, 0, 0, time.UTC),
		Gender:         GenderFemale,
		PhoneNumber:    "0901234567",
		Address:        validAddress(t),
		Document:       validDocument(t),
		FacultyID:      "faculty-1",
		ProgramID:      "program-cs",
		Status:         StatusActive,
		EnrollmentDate: time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewStudent_Valid(t *testing.T) {
	s, err := New(validParams(t))
	require.NoError(t, err)

	assert.Equal(t, "20120001", s.StudentID)
	assert.Equal(t, "an.nguyen@student.hcmus.edu.vn", s.Email, "email is lowercased")
	assert.Equal(t, "An Nguyen", s.FullName())
	assert.True(t, s.IsActive())
	assert.False(t, s.IsGraduated())
	assert.True(t, s.CanEnroll())
	assert.False(t, s.CreatedAt.IsZero())
}

func TestNewStudent_AgeBounds(t *testing.T) {
	p := validParams(t)
	p.DateOfBirth = time.Now().AddDate(0, 0, -1)
	_, err := New(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 16 years old")

	p.DateOfBirth = time.Now().AddDate(-200, 0, 0)
	_, err = New(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot exceed 100 years")
}

func TestNewStudent_StudentIDFormat(t *testing.T) {
	p := validParams(t)
	p.StudentID = "2012001" // 7 digits
	_, err := New(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Student ID must be 8 digits")

	p.StudentID = "20120001a"
	_, err = New(p)
	assert.Error(t, err)
}

func TestNewStudent_PhoneFormat(t *testing.T) {
	valid := []string{"0901234567", "+84901234567", "84901234567", "0351234567"}
	for _, phone := range valid {
		p := validParams(t)
		p.PhoneNumber = phone
		_, err := New(p)
		assert.NoError(t, err, phone)
	}

	invalid := []string{"0111234567", "090123456", "09012345678", "+1901234567"}
	for _, phone := range invalid {
		p := validParams(t)
		p.PhoneNumber = phone
		_, err := New(p)
		assert.Error(t, err, phone)
	}
}

func TestNewStudent_GraduationConsistency(t *testing.T) {
	gpa := 3.1

	// Graduated without a graduation date.
	p := validParams(t)
	p.Status = StatusGraduated
	p.GPA = &gpa
	_, err := New(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must have a graduation date")

	// Graduation date on a non-graduated student.
	p = validParams(t)
	grad := p.EnrollmentDate.AddDate(4, 0, 0)
	p.GraduationDate = &grad
	p.GPA = &gpa
	_, err = New(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only graduated students")

	// Exactly 3 years of study is too early.
	p = validParams(t)
	p.Status = StatusGraduated
	early := p.EnrollmentDate.AddDate(3, 0, 0)
	p.GraduationDate = &early
	p.GPA = &gpa
	_, err = New(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too early")

	// Four years with a passing GPA succeeds.
	p = validParams(t)
	p.Status = StatusGraduated
	p.GraduationDate = &grad
	p.GPA = &gpa
	s, err := New(p)
	require.NoError(t, err)
	assert.True(t, s.IsGraduated())

	// GPA below the graduation threshold.
	low := 1.5
	p.GPA = &low
	_, err = New(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GPA of at least 2.0")
}

func TestNewStudent_GPARange(t *testing.T) {
	p := validParams(t)
	bad := 4.5
	p.GPA = &bad
	_, err := New(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GPA must be between")

	neg := -0.1
	p.GPA = &neg
	_, err = New(p)
	assert.Error(t, err)
}

func TestUpdateWith_Immutability(t *testing.T) {
	s, err := New(validParams(t))
	require.NoError(t, err)

	newName := "Binh"
	updated, err := s.UpdateWith(Update{FirstName: &newName})
	require.NoError(t, err)

	assert.Equal(t, "An", s.FirstName, "original is untouched")
	assert.Equal(t, "Binh", updated.FirstName)
	assert.Equal(t, s.StudentID, updated.StudentID)
	assert.Equal(t, s.Email, updated.Email)
	assert.Equal(t, s.CreatedAt, updated.CreatedAt)
}

func TestUpdateWith_InvalidChangeFails(t *testing.T) {
	s, err := New(validParams(t))
	require.NoError(t, err)

	bad := "not-a-phone"
	_, err = s.UpdateWith(Update{PhoneNumber: &bad})
	assert.Error(t, err)
	assert.Equal(t, "0901234567", s.PhoneNumber)
}

func TestUpdateWith_ClearGPA(t *testing.T) {
	p := validParams(t)
	gpa := 3.0
	p.GPA = &gpa
	s, err := New(p)
	require.NoError(t, err)

	updated, err := s.UpdateWith(Update{ClearGPA: true})
	require.NoError(t, err)
	assert.Nil(t, updated.GPA)
	assert.NotNil(t, s.GPA)
}

func TestAcademicStanding(t *testing.T) {
	cases := []struct {
		gpa      float64
		standing string
	}{
		{3.8, StandingExcellent},
		{3.6, StandingExcellent},
		{3.4, StandingGood},
		{2.9, StandingFair},
		{2.1, StandingPoor},
		{1.2, StandingProbation},
	}

	for _, tc := range cases {
		p := validParams(t)
		gpa := tc.gpa
		p.GPA = &gpa
		s, err := New(p)
		require.NoError(t, err)
		assert.Equal(t, tc.standing, s.AcademicStanding(), "gpa %.1f", tc.gpa)
	}

	s, err := New(validParams(t))
	require.NoError(t, err)
	assert.Equal(t, StandingNotAvailable, s.AcademicStanding())
}

func TestComputedAccessors(t *testing.T) {
	p := validParams(t)
	gpa := 3.0
	p.GPA = &gpa
	s, err := New(p)
	require.NoError(t, err)

	assert.Equal(t, 2024, s.ExpectedGraduationYear())
	assert.True(t, s.CanRegisterForCourses(), "active with a valid document")
	assert.True(t, s.IsEligibleForGraduation(), "enrolled 2020, gpa 3.0")
	assert.Greater(t, s.YearsEnrolled(), MinStudyYears)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	p := validParams(t)
	p.ID = "stu-1"
	p.ClassID = "class-20CTT1"
	gpa := 3.25
	p.GPA = &gpa
	s, err := New(p)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, "An Nguyen", snap.FullName)
	assert.Equal(t, StandingGood, snap.AcademicStanding)

	restored, err := FromSnapshot(snap)
	require.NoError(t, err)

	assert.Equal(t, s.ID, restored.ID)
	assert.Equal(t, s.StudentID, restored.StudentID)
	assert.Equal(t, s.Email, restored.Email)
	assert.Equal(t, s.Address, restored.Address)
	assert.Equal(t, s.Document.Snapshot(), restored.Document.Snapshot())
	assert.Equal(t, s.Status, restored.Status)
	assert.Equal(t, *s.GPA, *restored.GPA)
}

func TestClone_DeepCopiesPointers(t *testing.T) {
	p := validParams(t)
	gpa := 3.0
	p.GPA = &gpa
	s, err := New(p)
	require.NoError(t, err)

	clone := s.Clone()
	*clone.GPA = 1.0
	assert.Equal(t, 3.0, *s.GPA)
}
