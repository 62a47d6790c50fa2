package student

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
	"github.com/uni-hub/student-records-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Gender is the student's declared gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid checks enum membership.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// Status is the student's position in the academic lifecycle.
type Status string

const (
	// StatusActive - currently enrolled and studying.
	StatusActive Status = "active"
	// StatusGraduated - completed the program.
	StatusGraduated Status = "graduated"
	// StatusDroppedOut - left the program without graduating.
	StatusDroppedOut Status = "dropped_out"
	// StatusSuspended - temporarily barred from studying.
	StatusSuspended Status = "suspended"
	// StatusOnLeave - on an approved leave of absence.
	StatusOnLeave Status = "on_leave"
)

// IsValid checks enum membership.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusGraduated, StatusDroppedOut, StatusSuspended, StatusOnLeave:
		return true
	default:
		return false
	}
}

// CanEnroll reports whether a student in this status may enroll in courses.
func (s Status) CanEnroll() bool {
	return s == StatusActive
}

// allStatuses lists the valid status tags for error messages.
var allStatuses = []string{
	string(StatusActive),
	string(StatusGraduated),
	string(StatusDroppedOut),
	string(StatusSuspended),
	string(StatusOnLeave),
}

// allGenders lists the valid gender tags for error messages.
var allGenders = []string{string(GenderMale), string(GenderFemale), string(GenderOther)}

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATION RULES
// ══════════════════════════════════════════════════════════════════════════════

var (
	// studentIDRegex: student IDs are exactly 8 digits.
	studentIDRegex = regexp.MustCompile(`^\d{8}$`)

	// phoneRegex: Vietnamese mobile numbers. Optional +84/84/0 prefix,
	// then a mobile-carrier digit and 8 more digits.
	phoneRegex = regexp.MustCompile(`^(\+84|84|0)(3|5|7|8|9)\d{8}$`)
)

// Business-rule bounds.
const (
	MinAge = 16
	MaxAge = 100

	MinGPA = 0.0
	MaxGPA = 4.0

	// GraduationGPAThreshold is the minimum GPA to graduate.
	GraduationGPAThreshold = 2.0

	// MinStudyYears is the minimum study duration before graduation.
	MinStudyYears = 3.5

	// ExpectedStudyYears is the nominal program length.
	ExpectedStudyYears = 4
)

// entityName tags validation errors raised by this aggregate.
const entityName = "Student"

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is the aggregate root of the records system. It owns one Address
// and one identity Document and enforces all cross-field business rules.
//
// A Student is an immutable snapshot: UpdateWith returns a new instance and
// never mutates the receiver.
type Student struct {
	// ID is the opaque storage identifier. Empty until persisted.
	ID string

	// StudentID is the 8-digit university student number.
	StudentID string

	// Email is the contact email, normalized to lowercase.
	Email string

	// FirstName and LastName are the name parts.
	FirstName string
	LastName  string

	// DateOfBirth is the student's date of birth.
	DateOfBirth time.Time

	// Gender is the declared gender.
	Gender Gender

	// PhoneNumber is a Vietnamese-format mobile number.
	PhoneNumber string

	// Address is the student's postal address.
	Address Address

	// Document is the student's identity document.
	Document Document

	// FacultyID references the owning faculty.
	FacultyID string

	// ProgramID references the enrollment program.
	ProgramID string

	// ClassID references the class group (optional).
	ClassID string

	// Status is the academic lifecycle status.
	Status Status

	// EnrollmentDate is when the student enrolled.
	EnrollmentDate time.Time

	// GraduationDate is set only when Status is graduated.
	GraduationDate *time.Time

	// GPA is the grade point average on a 0.0-4.0 scale (optional).
	GPA *float64

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
}

// Params bundles the inputs for New. CreatedAt/UpdatedAt default to now
// when zero.
type Params struct {
	ID             string
	StudentID      string
	Email          string
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
	Gender         Gender
	PhoneNumber    string
	Address        Address
	Document       Document
	FacultyID      string
	ProgramID      string
	ClassID        string
	Status         Status
	EnrollmentDate time.Time
	GraduationDate *time.Time
	GPA            *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New creates a Student with full validation of base fields and business
// rules. It raises on the first violation, in fixed order: required fields,
// date validity, age, student-ID format, phone format, enrollment and
// graduation date logic, GPA range, graduation-status consistency.
func New(p Params) (*Student, error) {
	now := time.Now().UTC()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	s := &Student{
		ID:             p.ID,
		StudentID:      strings.TrimSpace(p.StudentID),
		Email:          strings.ToLower(strings.TrimSpace(p.Email)),
		FirstName:      strings.TrimSpace(p.FirstName),
		LastName:       strings.TrimSpace(p.LastName),
		DateOfBirth:    p.DateOfBirth,
		Gender:         p.Gender,
		PhoneNumber:    strings.TrimSpace(p.PhoneNumber),
		Address:        p.Address,
		Document:       p.Document,
		FacultyID:      strings.TrimSpace(p.FacultyID),
		ProgramID:      strings.TrimSpace(p.ProgramID),
		ClassID:        strings.TrimSpace(p.ClassID),
		Status:         p.Status,
		EnrollmentDate: p.EnrollmentDate,
		GraduationDate: copyTimePtr(p.GraduationDate),
		GPA:            copyFloatPtr(p.GPA),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// validate enforces every invariant. The check order is part of the
// contract: callers observe the first violation only.
func (s *Student) validate() error {
	// 1. Required fields.
	if err := shared.Required(entityName, "student ID", s.StudentID); err != nil {
		return err
	}
	if err := shared.Required(entityName, "email", s.Email); err != nil {
		return err
	}
	if err := shared.ValidEmail(entityName, "email", s.Email); err != nil {
		return err
	}
	if err := shared.Required(entityName, "first name", s.FirstName); err != nil {
		return err
	}
	if err := shared.Required(entityName, "last name", s.LastName); err != nil {
		return err
	}
	if err := shared.InAllowedValues(entityName, "gender", string(s.Gender), allGenders); err != nil {
		return err
	}
	if err := shared.Required(entityName, "phone number", s.PhoneNumber); err != nil {
		return err
	}
	if s.Document == nil {
		return shared.NewValidationError(entityName, "identity document is required")
	}
	if err := shared.Required(entityName, "faculty", s.FacultyID); err != nil {
		return err
	}
	if err := shared.Required(entityName, "program", s.ProgramID); err != nil {
		return err
	}
	if err := shared.InAllowedValues(entityName, "status", string(s.Status), allStatuses); err != nil {
		return err
	}

	// 2. Date validity.
	if err := shared.ValidPastDate(entityName, "date of birth", s.DateOfBirth); err != nil {
		return err
	}
	if err := shared.ValidPastDate(entityName, "enrollment date", s.EnrollmentDate); err != nil {
		return err
	}

	// 3. Age bounds.
	age := timeutil.Age(s.DateOfBirth, time.Now())
	if age < MinAge {
		return shared.NewValidationError(entityName, fmt.Sprintf("student must be at least %d years old", MinAge))
	}
	if age > MaxAge {
		return shared.NewValidationError(entityName, fmt.Sprintf("student age cannot exceed %d years", MaxAge))
	}

	// 4. Student ID format.
	if !studentIDRegex.MatchString(s.StudentID) {
		return shared.NewValidationError(entityName, "Student ID must be 8 digits")
	}

	// 5. Phone format.
	if !phoneRegex.MatchString(s.PhoneNumber) {
		return shared.NewValidationError(entityName, "phone number must be a valid Vietnamese mobile number")
	}

	// 6. Enrollment / graduation date logic.
	if s.GraduationDate != nil {
		if !s.GraduationDate.After(s.EnrollmentDate) {
			return shared.NewValidationError(entityName, "graduation date must be after enrollment date")
		}
		if timeutil.YearsBetween(s.EnrollmentDate, *s.GraduationDate) < MinStudyYears {
			return shared.NewValidationError(entityName,
				fmt.Sprintf("graduation date is too early: at least %.1f years of study are required", MinStudyYears))
		}
	}

	// 7. GPA range.
	if s.GPA != nil && (*s.GPA < MinGPA || *s.GPA > MaxGPA) {
		return shared.NewValidationError(entityName,
			fmt.Sprintf("GPA must be between %.1f and %.1f", MinGPA, MaxGPA))
	}

	// 8. Graduation-status consistency.
	if s.Status == StatusGraduated {
		if s.GraduationDate == nil {
			return shared.NewValidationError(entityName, "graduated students must have a graduation date")
		}
		if s.GPA == nil || *s.GPA < GraduationGPAThreshold {
			return shared.NewValidationError(entityName,
				fmt.Sprintf("graduated students must have a GPA of at least %.1f", GraduationGPAThreshold))
		}
	} else if s.GraduationDate != nil {
		return shared.NewValidationError(entityName, "only graduated students may have a graduation date")
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE (copy-on-write)
// ══════════════════════════════════════════════════════════════════════════════

// Update describes a partial change. Nil pointers mean "keep the current
// value". GraduationDate and GPA are cleared via the explicit Clear flags,
// since a nil pointer already means "unchanged".
type Update struct {
	StudentID      *string
	Email          *string
	FirstName      *string
	LastName       *string
	DateOfBirth    *time.Time
	Gender         *Gender
	PhoneNumber    *string
	Address        *Address
	Document       Document
	FacultyID      *string
	ProgramID      *string
	ClassID        *string
	Status         *Status
	EnrollmentDate *time.Time
	GraduationDate *time.Time
	GPA            *float64

	ClearGraduationDate bool
	ClearGPA            bool
}

// UpdateWith returns a new Student with the specified fields replaced and
// all others carried over verbatim. The merged result is re-validated in
// full, so an update producing an invalid state fails exactly as
// construction would. The receiver is never modified.
func (s *Student) UpdateWith(u Update) (*Student, error) {
	p := Params{
		ID:             s.ID,
		StudentID:      s.StudentID,
		Email:          s.Email,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		DateOfBirth:    s.DateOfBirth,
		Gender:         s.Gender,
		PhoneNumber:    s.PhoneNumber,
		Address:        s.Address,
		Document:       s.Document,
		FacultyID:      s.FacultyID,
		ProgramID:      s.ProgramID,
		ClassID:        s.ClassID,
		Status:         s.Status,
		EnrollmentDate: s.EnrollmentDate,
		GraduationDate: copyTimePtr(s.GraduationDate),
		GPA:            copyFloatPtr(s.GPA),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      time.Now().UTC(),
	}

	if u.StudentID != nil {
		p.StudentID = *u.StudentID
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.DateOfBirth != nil {
		p.DateOfBirth = *u.DateOfBirth
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = *u.PhoneNumber
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.Document != nil {
		p.Document = u.Document
	}
	if u.FacultyID != nil {
		p.FacultyID = *u.FacultyID
	}
	if u.ProgramID != nil {
		p.ProgramID = *u.ProgramID
	}
	if u.ClassID != nil {
		p.ClassID = *u.ClassID
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.EnrollmentDate != nil {
		p.EnrollmentDate = *u.EnrollmentDate
	}
	if u.GraduationDate != nil {
		p.GraduationDate = copyTimePtr(u.GraduationDate)
	}
	if u.ClearGraduationDate {
		p.GraduationDate = nil
	}
	if u.GPA != nil {
		p.GPA = copyFloatPtr(u.GPA)
	}
	if u.ClearGPA {
		p.GPA = nil
	}

	return New(p)
}

// ══════════════════════════════════════════════════════════════════════════════
// COMPUTED ACCESSORS
// ══════════════════════════════════════════════════════════════════════════════

// Age returns the student's current age in whole years.
func (s *Student) Age() int {
	return timeutil.Age(s.DateOfBirth, time.Now())
}

// FullName returns "FirstName LastName".
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// IsActive reports whether the student is actively studying.
func (s *Student) IsActive() bool {
	return s.Status == StatusActive
}

// IsGraduated reports whether the student has graduated.
func (s *Student) IsGraduated() bool {
	return s.Status == StatusGraduated
}

// CanEnroll reports whether the student may enroll in courses.
func (s *Student) CanEnroll() bool {
	return s.Status.CanEnroll()
}

// Academic standing bands by GPA.
const (
	StandingExcellent    = "Excellent"
	StandingGood         = "Good"
	StandingFair         = "Fair"
	StandingPoor         = "Poor"
	StandingProbation    = "Probation"
	StandingNotAvailable = "Not Available"
)

// AcademicStanding returns the GPA band, or "Not Available" when the
// student has no GPA yet.
func (s *Student) AcademicStanding() string {
	if s.GPA == nil {
		return StandingNotAvailable
	}
	switch gpa := *s.GPA; {
	case gpa >= 3.6:
		return StandingExcellent
	case gpa >= 3.2:
		return StandingGood
	case gpa >= 2.5:
		return StandingFair
	case gpa >= 2.0:
		return StandingPoor
	default:
		return StandingProbation
	}
}

// YearsEnrolled returns the fractional years between enrollment and
// graduation (or now, when still enrolled).
func (s *Student) YearsEnrolled() float64 {
	end := time.Now()
	if s.GraduationDate != nil {
		end = *s.GraduationDate
	}
	return timeutil.YearsBetween(s.EnrollmentDate, end)
}

// CanRegisterForCourses reports whether the student may register for
// courses: enrollable status plus a currently valid identity document.
func (s *Student) CanRegisterForCourses() bool {
	return s.CanEnroll() && s.Document != nil && s.Document.IsValid()
}

// IsEligibleForGraduation reports whether the student meets all
// graduation prerequisites.
func (s *Student) IsEligibleForGraduation() bool {
	return s.IsActive() &&
		s.GPA != nil && *s.GPA >= GraduationGPAThreshold &&
		s.YearsEnrolled() >= MinStudyYears
}

// ExpectedGraduationYear returns the enrollment year plus the nominal
// program length.
func (s *Student) ExpectedGraduationYear() int {
	return s.EnrollmentDate.Year() + ExpectedStudyYears
}

// String returns a short representation for logging.
func (s *Student) String() string {
	return fmt.Sprintf("Student{ID: %s, StudentID: %s, Name: %s, Status: %s}",
		s.ID, s.StudentID, s.FullName(), s.Status)
}

// Clone creates a deep copy of the student.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}

	clone := *s
	clone.GraduationDate = copyTimePtr(s.GraduationDate)
	clone.GPA = copyFloatPtr(s.GPA)
	return &clone
}

// ══════════════════════════════════════════════════════════════════════════════
// SERIALIZATION
// ══════════════════════════════════════════════════════════════════════════════

// Snapshot is the plain serializable form of a Student, including derived
// fields for persistence and presentation layers.
type Snapshot struct {
	ID             string           `json:"id,omitempty"`
	StudentID      string           `json:"studentId"`
	Email          string           `json:"email"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	DateOfBirth    time.Time        `json:"dateOfBirth"`
	Gender         string           `json:"gender"`
	PhoneNumber    string           `json:"phoneNumber"`
	Address        AddressSnapshot  `json:"address"`
	Document       DocumentSnapshot `json:"identityDocument"`
	FacultyID      string           `json:"facultyId"`
	ProgramID      string           `json:"programId"`
	ClassID        string           `json:"classId,omitempty"`
	Status         string           `json:"status"`
	EnrollmentDate time.Time        `json:"enrollmentDate"`
	GraduationDate *time.Time       `json:"graduationDate,omitempty"`
	GPA            *float64         `json:"gpa,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`

	// Derived.
	FullName         string `json:"fullName"`
	Age              int    `json:"age"`
	AcademicStanding string `json:"academicStanding"`
}

// Snapshot returns the plain serializable form of the student.
func (s *Student) Snapshot() Snapshot {
	return Snapshot{
		ID:               s.ID,
		StudentID:        s.StudentID,
		Email:            s.Email,
		FirstName:        s.FirstName,
		LastName:         s.LastName,
		DateOfBirth:      s.DateOfBirth,
		Gender:           string(s.Gender),
		PhoneNumber:      s.PhoneNumber,
		Address:          s.Address.Snapshot(),
		Document:         s.Document.Snapshot(),
		FacultyID:        s.FacultyID,
		ProgramID:        s.ProgramID,
		ClassID:          s.ClassID,
		Status:           string(s.Status),
		EnrollmentDate:   s.EnrollmentDate,
		GraduationDate:   copyTimePtr(s.GraduationDate),
		GPA:              copyFloatPtr(s.GPA),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		FullName:         s.FullName(),
		Age:              s.Age(),
		AcademicStanding: s.AcademicStanding(),
	}
}

// FromSnapshot reconstructs a Student from a previously serialized
// snapshot. The full validation path runs; derived fields are recomputed.
func FromSnapshot(snap Snapshot) (*Student, error) {
	addr, err := AddressFromSnapshot(snap.Address)
	if err != nil {
		return nil, err
	}

	doc, err := DocumentFromSnapshot(snap.Document)
	if err != nil {
		return nil, err
	}

	return New(Params{
		ID:             snap.ID,
		StudentID:      snap.StudentID,
		Email:          snap.Email,
		FirstName:      snap.FirstName,
		LastName:       snap.LastName,
		DateOfBirth:    snap.DateOfBirth,
		Gender:         Gender(snap.Gender),
		PhoneNumber:    snap.PhoneNumber,
		Address:        addr,
		Document:       doc,
		FacultyID:      snap.FacultyID,
		ProgramID:      snap.ProgramID,
		ClassID:        snap.ClassID,
		Status:         Status(snap.Status),
		EnrollmentDate: snap.EnrollmentDate,
		GraduationDate: copyTimePtr(snap.GraduationDate),
		GPA:            copyFloatPtr(snap.GPA),
		CreatedAt:      snap.CreatedAt,
		UpdatedAt:      snap.UpdatedAt,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyFloatPtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
