// Package timeutil provides timezone utilities for Ho Chi Minh City
// (UTC+7), where the university operates, plus the date arithmetic the
// student records use (ages, study durations, academic years).
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// HoChiMinhTZ is the Ho Chi Minh City timezone (UTC+7, no DST).
// Vietnam has observed a constant offset since 1975.
var HoChiMinhTZ = time.FixedZone("Asia/Ho_Chi_Minh", 7*60*60)

// Now returns the current time in Ho Chi Minh City timezone.
func Now() time.Time {
	return time.Now().In(HoChiMinhTZ)
}

// ToHoChiMinh converts a time to Ho Chi Minh City timezone.
func ToHoChiMinh(t time.Time) time.Time {
	return t.In(HoChiMinhTZ)
}

// ToUTC converts a time to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// Date creates a time in Ho Chi Minh City timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, HoChiMinhTZ)
}

// StartOfDay returns the start of the day (00:00:00) in Ho Chi Minh City timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToHoChiMinh(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, HoChiMinhTZ)
}

// IsSameDay checks if two times are on the same day in Ho Chi Minh City timezone.
func IsSameDay(t1, t2 time.Time) bool {
	a, b := ToHoChiMinh(t1), ToHoChiMinh(t2)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DaysBetween calculates the number of days between two times.
func DaysBetween(t1, t2 time.Time) int {
	a := StartOfDay(t1)
	b := StartOfDay(t2)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// daysPerYear averages leap years into the fractional-year arithmetic.
const daysPerYear = 365.25

// YearsBetween returns fractional years between two instants.
func YearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / daysPerYear
}

// Age returns whole years between dob and now, calendar-aware: the year
// counter does not tick until the anniversary has passed.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// AcademicYearStartMonth is the month the academic year begins.
const AcademicYearStartMonth = time.September

// AcademicYearFor returns the starting calendar year of the academic
// year the given time falls in. A date in March 2024 belongs to the
// 2023 academic year.
func AcademicYearFor(t time.Time) int {
	local := ToHoChiMinh(t)
	if local.Month() < AcademicYearStartMonth {
		return local.Year() - 1
	}
	return local.Year()
}

// Common date/time formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD).
	FormatDate = "2006-01-02"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
	// FormatDateTimeSeconds includes seconds.
	FormatDateTimeSeconds = "2006-01-02 15:04:05"
	// FormatVietnameseDate is the Vietnamese date format (DD/MM/YYYY).
	FormatVietnameseDate = "02/01/2006"
)

// FormatLocal formats a time in Ho Chi Minh City timezone with the given layout.
func FormatLocal(t time.Time, layout string) string {
	return ToHoChiMinh(t).Format(layout)
}

// FormatDateStr formats a time as a date string (YYYY-MM-DD).
func FormatDateStr(t time.Time) string {
	return FormatLocal(t, FormatDate)
}

// FormatVietnamese formats a time in Vietnamese format (DD/MM/YYYY).
func FormatVietnamese(t time.Time) string {
	return FormatLocal(t, FormatVietnameseDate)
}

// ParseLocal parses a time string in Ho Chi Minh City timezone.
func ParseLocal(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, HoChiMinhTZ)
}

// ParseDate parses a date string (YYYY-MM-DD) in Ho Chi Minh City timezone.
func ParseDate(value string) (time.Time, error) {
	return ParseLocal(FormatDate, value)
}
