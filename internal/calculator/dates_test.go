package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearsAgo_KeepsMonthAndDay(t *testing.T) {
	now := time.Date(2026, time.October, 19, 15, 4, 5, 0, time.UTC)
	for _, n := range []int{0, 1, 5, 30} {
		got := YearsAgo(now, n)
		assert.Equal(t, 2026-n, got.Year())
		assert.Equal(t, time.October, got.Month())
		assert.Equal(t, 19, got.Day())
	}
}

func TestYearsAgo_LeapDayIntoNonLeapYear(t *testing.T) {
	now := time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC)
	got := YearsAgo(now, 5)
	assert.Equal(t, "2019-02-28", got.Format(DateLayout))
}

func TestYearsAgo_LeapDayIntoLeapYear(t *testing.T) {
	now := time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC)
	got := YearsAgo(now, 4)
	assert.Equal(t, "2020-02-29", got.Format(DateLayout))
}

func TestYearsAgo_NegativeTreatedAsZero(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-01", YearsAgo(now, -3).Format(DateLayout))
}
