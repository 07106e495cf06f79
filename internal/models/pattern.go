package models

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts the standard five-field minute/hour/dom/month/dow
// expressions used by the editor and the persisted files.
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// PatternTask recurs on a calendar pattern, interpreted in a fixed time
// zone. The execution base anchors the search for the next match; it is the
// last occurrence unless a completion pushed it forward.
type PatternTask struct {
	id             string
	name           string
	zone           *time.Location
	pattern        string
	schedule       cron.Schedule
	stopTime       time.Time // zero means no stop
	lastOccurrence time.Time
	executionBase  time.Time
}

// NewPatternTask parses pattern and builds the task. A zero executionBase
// defaults to lastOccurrence. A zero stopTime means the task never stops.
func NewPatternTask(
	id, name, pattern string,
	zone *time.Location,
	stopTime, lastOccurrence, executionBase time.Time,
) (PatternTask, error) {
	schedule, err := cronParser.Parse(pattern)
	if err != nil {
		return PatternTask{}, fmt.Errorf("parse pattern %q: %w", pattern, err)
	}
	if zone == nil {
		zone = time.Local
	}
	if executionBase.IsZero() {
		executionBase = lastOccurrence
	}
	return PatternTask{
		id:             id,
		name:           name,
		zone:           zone,
		pattern:        pattern,
		schedule:       schedule,
		stopTime:       stopTime,
		lastOccurrence: lastOccurrence,
		executionBase:  executionBase,
	}, nil
}

func (t PatternTask) ID() string            { return t.id }
func (t PatternTask) Name() string          { return t.name }
func (t PatternTask) Zone() *time.Location  { return t.zone }
func (t PatternTask) Pattern() string       { return t.pattern }
func (t PatternTask) ExecutionBase() time.Time { return t.executionBase }

// StopTime reports the stop boundary, if the task has one.
func (t PatternTask) StopTime() (time.Time, bool) {
	return t.stopTime, !t.stopTime.IsZero()
}

func (t PatternTask) LastOccurrence() time.Time { return t.lastOccurrence }

// NextOccurrence finds the pattern's first match strictly after the
// execution base, in the task's zone.
func (t PatternTask) NextOccurrence() (time.Time, error) {
	next := t.schedule.Next(t.executionBase.In(t.zone))
	if next.IsZero() {
		return time.Time{}, ErrNoNextOccurrence
	}
	return next, nil
}

// NextTaskEntry re-anchors the execution base at whichever is later, the
// completion time or the occurrence that was due. Completing early therefore
// keeps the due slot, and completing late skips the slots that were missed
// rather than replaying them.
func (t PatternTask) NextTaskEntry(completionTime time.Time) (TaskEntry, error) {
	dueNow, err := t.NextOccurrence()
	if err != nil {
		return nil, err
	}
	executionBase := completionTime
	if completionTime.Before(dueNow) {
		executionBase = dueNow
	}
	next := t
	next.lastOccurrence = completionTime
	next.executionBase = executionBase
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

func (PatternTask) taskEntry() {}
