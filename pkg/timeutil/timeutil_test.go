package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UsesLocalZone(t *testing.T) {
	d := Date(2024, 9, 1)

	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.September, d.Month())
	assert.Equal(t, 1, d.Day())

	_, offset := d.Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 15, 18, 45, 12, 0, HoChiMinhTZ)
	start := StartOfDay(ts)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.True(t, IsSameDay(ts, start))
}

func TestIsSameDay_AcrossZones(t *testing.T) {
	// 23:00 UTC is already the next day in Ho Chi Minh City.
	utcEvening := time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)
	localMorning := Date(2024, 3, 16)

	assert.True(t, IsSameDay(utcEvening, localMorning))
	assert.False(t, IsSameDay(utcEvening, Date(2024, 3, 15)))
}

func TestDaysBetween(t *testing.T) {
	a := Date(2024, 3, 1)
	b := Date(2024, 3, 15)

	assert.Equal(t, 14, DaysBetween(a, b))
	assert.Equal(t, 14, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestYearsBetween(t *testing.T) {
	from := Date(2020, 9, 1)
	to := from.AddDate(4, 0, 0)

	years := YearsBetween(from, to)
	assert.InDelta(t, 4.0, years, 0.01)

	assert.Negative(t, YearsBetween(to, from))
}

func TestAge_AnniversaryBoundary(t *testing.T) {
	dob := Date(2002, 5, 10)

	assert.Equal(t, 21, Age(dob, Date(2024, 5, 9)))
	assert.Equal(t, 22, Age(dob, Date(2024, 5, 10)))
	assert.Equal(t, 22, Age(dob, Date(2024, 5, 11)))
}

func TestAcademicYearFor(t *testing.T) {
	assert.Equal(t, 2023, AcademicYearFor(Date(2024, 3, 15)))
	assert.Equal(t, 2024, AcademicYearFor(Date(2024, 9, 1)))
	assert.Equal(t, 2024, AcademicYearFor(Date(2024, 12, 31)))
}

func TestFormatVietnamese(t *testing.T) {
	assert.Equal(t, "15/03/2024", FormatVietnamese(Date(2024, 3, 15)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.True(t, IsSameDay(d, Date(2024, 3, 15)))

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}
