// Package faculty contains the Faculty aggregate: a named organizational
// unit that students reference. Zero external dependencies.
package faculty

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/uni-hub/student-records-hub/internal/domain/shared"
)

const entityName = "Faculty"

// codeRegex: short identifier of letters (including Unicode letters),
// digits, spaces, and hyphens.
var codeRegex = regexp.MustCompile(`^[\p{L}\d][\p{L}\d \-]*$`)

// Code and name length bounds.
const (
	MinCodeLength = 2
	MaxCodeLength = 100
	MinNameLength = 2
	MaxNameLength = 200
)

// Faculty is an immutable named aggregate. Rename returns a new instance.
type Faculty struct {
	// ID is the opaque storage identifier. Empty until persisted.
	ID string

	// Code is the short faculty identifier (e.g. "CNTT", "FIT-01").
	Code string

	// Name is the display name.
	Name string

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
}

// Params bundles the inputs for New. Timestamps default to now when zero.
type Params struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a Faculty with full validation of code and name.
func New(p Params) (*Faculty, error) {
	now := time.Now().UTC()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	f := &Faculty{
		ID:        p.ID,
		Code:      strings.TrimSpace(p.Code),
		Name:      strings.TrimSpace(p.Name),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Faculty) validate() error {
	if err := shared.Required(entityName, "code", f.Code); err != nil {
		return err
	}
	if err := shared.MinLength(entityName, "code", f.Code, MinCodeLength); err != nil {
		return err
	}
	if err := shared.MaxLength(entityName, "code", f.Code, MaxCodeLength); err != nil {
		return err
	}
	if !codeRegex.MatchString(f.Code) {
		return shared.NewValidationError(entityName, "code may only contain letters, digits, spaces, and hyphens")
	}
	if err := validateName(f.Name); err != nil {
		return err
	}
	return nil
}

func validateName(name string) error {
	if err := shared.Required(entityName, "name", name); err != nil {
		return err
	}
	if err := shared.MinLength(entityName, "name", name, MinNameLength); err != nil {
		return err
	}
	return shared.MaxLength(entityName, "name", name, MaxNameLength)
}

// Rename returns a new Faculty with the validated new name and a
// refreshed update timestamp. The receiver is never modified.
func (f *Faculty) Rename(newName string) (*Faculty, error) {
	name := strings.TrimSpace(newName)
	if err := validateName(name); err != nil {
		return nil, err
	}

	renamed := *f
	renamed.Name = name
	renamed.UpdatedAt = time.Now().UTC()
	return &renamed, nil
}

// String returns a short representation for logging.
func (f *Faculty) String() string {
	return fmt.Sprintf("Faculty{ID: %s, Code: %s, Name: %s}", f.ID, f.Code, f.Name)
}

// ══════════════════════════════════════════════════════════════════════════════
// SERIALIZATION & LEGACY RECONSTRUCTION
// ══════════════════════════════════════════════════════════════════════════════

// Snapshot is the plain serializable form of a Faculty.
type Snapshot struct {
	ID        string    `json:"id,omitempty"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot returns the plain serializable form of the faculty.
func (f *Faculty) Snapshot() Snapshot {
	return Snapshot{
		ID:        f.ID,
		Code:      f.Code,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FromSnapshot reconstructs a Faculty with full validation.
func FromSnapshot(s Snapshot) (*Faculty, error) {
	return New(Params{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	})
}

// ReconstructLegacy rebuilds a Faculty from pre-existing stored data,
// bypassing format validation except "name must be non-empty". It exists
// only for ingesting legacy records that predate the current format
// rules; new writes must go through New.
func ReconstructLegacy(s Snapshot) (*Faculty, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return nil, shared.NewValidationError(entityName, "name is required")
	}

	now := time.Now().UTC()
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	return &Faculty{
		ID:        s.ID,
		Code:      strings.TrimSpace(s.Code),
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
