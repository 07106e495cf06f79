package models

import "time"

// OneTimeTask is a task with a single due date and no recurrence rule. The
// due date is stored directly because there is nothing to recompute it from.
type OneTimeTask struct {
	id      string
	name    string
	created time.Time
	due     time.Time
}

func NewOneTimeTask(id, name string, created, due time.Time) OneTimeTask {
	return OneTimeTask{id: id, name: name, created: created, due: due}
}

func (t OneTimeTask) ID() string   { return t.id }
func (t OneTimeTask) Name() string { return t.name }

func (t OneTimeTask) LastOccurrence() time.Time { return t.created }

func (t OneTimeTask) NextOccurrence() (time.Time, error) { return t.due, nil }

// NextTaskEntry always reports no successor: a one-time task, once done, is
// done.
func (t OneTimeTask) NextTaskEntry(time.Time) (TaskEntry, error) { return nil, nil }

func (OneTimeTask) taskEntry() {}
