package service

import (
	"fmt"
	"time"
)

const (
	GroupByNone  = "None"
	GroupByDay   = "Daily"
	GroupByWeek  = "Weekly"
	GroupByMonth = "Monthly"
)

// Shared helpers for presenting occurrence times.

// Progress reports how far now sits between the last and next occurrence,
// clamped to [0, 1]. Overdue tasks saturate at 1.
func Progress(last, next, now time.Time) float64 {
	total := next.Sub(last)
	if total <= 0 {
		return 1
	}
	f := float64(now.Sub(last)) / float64(total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// FormatCountdown renders the distance between now and due, e.g.
// "in 2d 03:15" or "overdue 01:40".
func FormatCountdown(now, due time.Time) string {
	d := due.Sub(now)
	if d < 0 {
		return "overdue " + formatDelta(-d)
	}
	return "in " + formatDelta(d)
}

func formatDelta(d time.Duration) string {
	d = d.Round(time.Minute)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d", days, h, m)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

func GetWeekStart(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	return t.AddDate(0, 0, -offset+1)
}

func GetWeekRange(t time.Time) (time.Time, time.Time) {
	start := GetWeekStart(t)
	return start, start.AddDate(0, 0, 6)
}

// GetGroupKey buckets an occurrence time for report grouping.
func GetGroupKey(t time.Time, groupBy string) string {
	if groupBy == GroupByDay {
		return t.Format("2006-01-02")
	} else if groupBy == GroupByWeek {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	} else if groupBy == GroupByMonth {
		return t.Format("2006-01")
	}
	return ""
}

// GetGroupTitle renders the heading for a report group.
func GetGroupTitle(t time.Time, groupBy string) string {
	if groupBy == GroupByDay {
		return t.Format("Monday, 02 Jan 2006")
	} else if groupBy == GroupByWeek {
		start, end := GetWeekRange(t)
		return fmt.Sprintf("%s - %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	} else if groupBy == GroupByMonth {
		return t.Format("January 2006")
	}
	return ""
}
