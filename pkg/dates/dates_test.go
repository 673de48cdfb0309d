package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 3, 15, 18, 42, 9, 123, time.Local)
	got := Midnight(in)

	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Zero(t, got.Hour())
	assert.Zero(t, got.Minute())
	assert.Zero(t, got.Second())
	assert.Zero(t, got.Nanosecond())
}

func TestTodayTomorrowWindow(t *testing.T) {
	today := Today()
	tomorrow := Tomorrow()

	assert.Equal(t, 24*time.Hour, tomorrow.Sub(today))
	assert.True(t, today.Before(time.Now().Add(time.Second)))
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, time.February)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), start)
	// 2024 is a leap year.
	assert.Equal(t, 29, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
}

func TestMonthRangeDecemberRollsYear(t *testing.T) {
	start, end := MonthRange(2023, time.December)

	assert.Equal(t, time.December, start.Month())
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, 2023, end.Year())
}

func TestDateString(t *testing.T) {
	in := time.Date(2024, 7, 4, 13, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-07-04", DateString(in))
}
