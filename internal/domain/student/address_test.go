package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	addr, err := NewAddress("  227 Nguyen Van Cu ", "Ward 4", "District 5", "Ho Chi Minh City", " Vietnam ")
	require.NoError(t, err)

	assert.Equal(t, "227 Nguyen Van Cu", addr.Street, "components are trimmed")
	assert.Equal(t, "Vietnam", addr.Country)
	assert.True(t, addr.IsComplete())
}

func TestNewAddress_CountryRequired(t *testing.T) {
	_, err := NewAddress("227 Nguyen Van Cu", "", "", "Ho Chi Minh City", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "country is required")

	_, err = NewAddress("", "", "", "", "V")
	assert.Error(t, err, "one-letter country")
}

func TestAddress_FullAddress(t *testing.T) {
	addr, err := NewAddress("227 Nguyen Van Cu", "", "District 5", "Ho Chi Minh City", "Vietnam")
	require.NoError(t, err)

	// Empty components are skipped, order is fixed.
	assert.Equal(t, "227 Nguyen Van Cu, District 5, Ho Chi Minh City, Vietnam", addr.FullAddress())
}

func TestAddress_IsComplete(t *testing.T) {
	addr, err := NewAddress("", "", "", "", "Vietnam")
	require.NoError(t, err)
	assert.False(t, addr.IsComplete(), "city is missing")
}

func TestAddress_SnapshotRoundTrip(t *testing.T) {
	addr, err := NewAddress("1 Duy Tan", "", "Cau Giay", "Hanoi", "Vietnam")
	require.NoError(t, err)

	snap := addr.Snapshot()
	assert.Equal(t, addr.FullAddress(), snap.FullAddress)
	assert.True(t, snap.IsComplete)

	restored, err := AddressFromSnapshot(snap)
	require.NoError(t, err)
	assert.True(t, addr.Equals(restored))
}
