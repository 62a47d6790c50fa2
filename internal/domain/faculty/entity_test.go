package faculty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFaculty(t *testing.T) {
	f, err := New(Params{Code: " CNTT ", Name: " Faculty of Information Technology "})
	require.NoError(t, err)

	assert.Equal(t, "CNTT", f.Code)
	assert.Equal(t, "Faculty of Information Technology", f.Name)
	assert.False(t, f.CreatedAt.IsZero())
}

func TestNewFaculty_Validation(t *testing.T) {
	_, err := New(Params{Code: "", Name: "Mathematics"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code is required")

	_, err = New(Params{Code: "C", Name: "Mathematics"})
	assert.Error(t, err, "code below minimum length")

	_, err = New(Params{Code: "FIT_01", Name: "Mathematics"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "letters, digits, spaces, and hyphens")

	_, err = New(Params{Code: "FIT-01", Name: "M"})
	assert.Error(t, err, "name below minimum length")
}

func TestFaculty_Rename(t *testing.T) {
	f, err := New(Params{Code: "TOAN", Name: "Mathematics"})
	require.NoError(t, err)

	renamed, err := f.Rename("Mathematics and Computer Science")
	require.NoError(t, err)

	assert.Equal(t, "Mathematics", f.Name, "original is untouched")
	assert.Equal(t, "Mathematics and Computer Science", renamed.Name)
	assert.Equal(t, f.Code, renamed.Code)
	assert.Equal(t, f.CreatedAt, renamed.CreatedAt)

	_, err = f.Rename(" ")
	assert.Error(t, err)
}

func TestFaculty_SnapshotRoundTrip(t *testing.T) {
	f, err := New(Params{
		ID:        "fac-1",
		Code:      "VLVT",
		Name:      "Physics",
		CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	restored, err := FromSnapshot(f.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, f, restored)
}

func TestFaculty_ReconstructLegacy(t *testing.T) {
	// Legacy rows may carry codes that fail the current format rules.
	f, err := ReconstructLegacy(Snapshot{Code: "#", Name: "Old Faculty"})
	require.NoError(t, err)
	assert.Equal(t, "#", f.Code)
	assert.Equal(t, "Old Faculty", f.Name)
	assert.False(t, f.UpdatedAt.IsZero())

	_, err = ReconstructLegacy(Snapshot{Code: "OK-1", Name: "  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}
