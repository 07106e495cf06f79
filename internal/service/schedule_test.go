package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	last := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	next := last.Add(10 * time.Hour)

	assert.Equal(t, 0.0, Progress(last, next, last))
	assert.Equal(t, 0.5, Progress(last, next, last.Add(5*time.Hour)))
	assert.Equal(t, 1.0, Progress(last, next, next))

	// Clamped outside the window.
	assert.Equal(t, 0.0, Progress(last, next, last.Add(-time.Hour)))
	assert.Equal(t, 1.0, Progress(last, next, next.Add(time.Hour)))

	// Degenerate window saturates rather than dividing by zero.
	assert.Equal(t, 1.0, Progress(last, last, last))
}

func TestFormatCountdown(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "in 01:30", FormatCountdown(now, now.Add(90*time.Minute)))
	assert.Equal(t, "in 2d 03:15", FormatCountdown(now, now.Add(51*time.Hour+15*time.Minute)))
	assert.Equal(t, "overdue 01:40", FormatCountdown(now, now.Add(-100*time.Minute)))
}

func TestGetWeekStart(t *testing.T) {
	// 2026-01-07 is a Wednesday; the week starts Monday the 5th.
	wed := time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, GetWeekStart(wed).Day())

	// Sunday belongs to the week that started the previous Monday.
	sun := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, GetWeekStart(sun).Day())

	mon := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, GetWeekStart(mon).Day())
}

func TestGetGroupKey(t *testing.T) {
	ts := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-04", GetGroupKey(ts, GroupByDay))
	assert.Equal(t, "2026-W10", GetGroupKey(ts, GroupByWeek))
	assert.Equal(t, "2026-03", GetGroupKey(ts, GroupByMonth))
	assert.Equal(t, "", GetGroupKey(ts, GroupByNone))
}

func TestGetGroupTitle(t *testing.T) {
	ts := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "Wednesday, 04 Mar 2026", GetGroupTitle(ts, GroupByDay))
	assert.Equal(t, "March 2026", GetGroupTitle(ts, GroupByMonth))
}
