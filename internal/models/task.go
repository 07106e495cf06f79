package models

import (
	"errors"
	"time"
)

// ErrNoNextOccurrence is returned when a recurrence pattern has no reachable
// match after its execution base.
var ErrNoNextOccurrence = errors.New("unable to calculate next occurrence of task")

// TaskEntry represents a task, repeating or not.
//
// Entries are immutable value objects: completing or editing a task always
// produces a new entry, never mutates one in place. The variant set is
// closed (OneTimeTask, PatternTask, IntervalTask).
type TaskEntry interface {
	// ID returns the stable identity of the task. It is unique across the
	// roster and carries over to successors.
	ID() string

	// Name returns the display name.
	Name() string

	// LastOccurrence reports when the task last actually happened. For a
	// never-completed one-time task this is its creation time. For
	// repeating tasks it is when the task was actually completed, not when
	// it should have been.
	LastOccurrence() time.Time

	// NextOccurrence computes when the task is due next.
	NextOccurrence() (time.Time, error)

	// NextTaskEntry produces the successor entry for a completion at
	// completionTime. A nil entry with a nil error means the task has no
	// further occurrence.
	NextTaskEntry(completionTime time.Time) (TaskEntry, error)

	// taskEntry keeps the variant set closed to this package.
	taskEntry()
}
