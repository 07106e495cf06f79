package models

import (
	"time"

	"github.com/sosodev/duration"
)

// IntervalTask recurs a fixed calendar period after each completion. The
// period is calendar arithmetic in the system zone, not elapsed seconds, so
// "1 month" from Jan 31 lands on the calendar, not 30.44 days later.
type IntervalTask struct {
	id             string
	name           string
	interval       duration.Duration
	stopTime       time.Time // zero means no stop
	lastOccurrence time.Time
}

func NewIntervalTask(
	id, name string,
	interval duration.Duration,
	stopTime, lastOccurrence time.Time,
) IntervalTask {
	return IntervalTask{
		id:             id,
		name:           name,
		interval:       interval,
		stopTime:       stopTime,
		lastOccurrence: lastOccurrence,
	}
}

func (t IntervalTask) ID() string                  { return t.id }
func (t IntervalTask) Name() string                { return t.name }
func (t IntervalTask) Interval() duration.Duration { return t.interval }

// StopTime reports the stop boundary, if the task has one.
func (t IntervalTask) StopTime() (time.Time, bool) {
	return t.stopTime, !t.stopTime.IsZero()
}

func (t IntervalTask) LastOccurrence() time.Time { return t.lastOccurrence }

// NextOccurrence advances the last occurrence by the interval in the system
// zone.
func (t IntervalTask) NextOccurrence() (time.Time, error) {
	local := t.lastOccurrence.In(time.Local)
	next := local.AddDate(
		int(t.interval.Years),
		int(t.interval.Months),
		int(t.interval.Weeks)*7+int(t.interval.Days),
	)
	clock := time.Duration(t.interval.Hours)*time.Hour +
		time.Duration(t.interval.Minutes)*time.Minute +
		time.Duration(t.interval.Seconds)*time.Second
	return next.Add(clock), nil
}

// NextTaskEntry re-anchors purely on the completion time: a late completion
// shifts every future occurrence later by the same margin. This differs from
// PatternTask on purpose, since the interval measures from when the task was
// actually done.
func (t IntervalTask) NextTaskEntry(completionTime time.Time) (TaskEntry, error) {
	next := t
	next.lastOccurrence = completionTime
	// If it won't happen until after we want to stop, there's no next
	if !t.stopTime.IsZero() {
		nextDue, err := next.NextOccurrence()
		if err != nil {
			return nil, err
		}
		if completionTime.After(t.stopTime) || nextDue.After(t.stopTime) {
			return nil, nil
		}
	}
	return next, nil
}

func (IntervalTask) taskEntry() {}
