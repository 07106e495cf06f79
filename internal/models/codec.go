package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sosodev/duration"
)

// Variant discriminators used in the persisted files.
const (
	typeOneTime  = "oneTime"
	typePattern  = "patternRecurring"
	typeInterval = "intervalRecurring"
)

// taskRecord is the on-disk shape of a single entry: a discriminator plus
// the union of the per-variant fields. Instants are RFC 3339, the interval
// is an ISO-8601 duration, the zone is an IANA identifier, and the pattern
// is its canonical cron text.
type taskRecord struct {
	Type           string     `json:"@type"`
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	LastOccurrence time.Time  `json:"lastOccurrence"`
	NextOccurrence *time.Time `json:"nextOccurrence,omitempty"`
	TimeZone       string     `json:"timeZone,omitempty"`
	Pattern        string     `json:"pattern,omitempty"`
	Interval       string     `json:"interval,omitempty"`
	StopTime       *time.Time `json:"stopTime,omitempty"`
	ExecutionBase  *time.Time `json:"executionBase,omitempty"`
}

// MarshalTasks serializes the whole collection.
func MarshalTasks(entries []TaskEntry) ([]byte, error) {
	records := make([]taskRecord, 0, len(entries))
	for _, entry := range entries {
		rec, err := toRecord(entry)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return json.MarshalIndent(records, "", "  ")
}

// UnmarshalTasks deserializes a whole collection. Any record with an
// unrecognized discriminator fails the load; there is no best-effort partial
// result.
func UnmarshalTasks(data []byte) ([]TaskEntry, error) {
	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	entries := make([]TaskEntry, 0, len(records))
	for _, rec := range records {
		entry, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func toRecord(entry TaskEntry) (taskRecord, error) {
	switch t := entry.(type) {
	case OneTimeTask:
		due := t.due
		return taskRecord{
			Type:           typeOneTime,
			ID:             t.id,
			Name:           t.name,
			LastOccurrence: t.created,
			NextOccurrence: &due,
		}, nil
	case PatternTask:
		rec := taskRecord{
			Type:           typePattern,
			ID:             t.id,
			Name:           t.name,
			LastOccurrence: t.lastOccurrence,
			TimeZone:       t.zone.String(),
			Pattern:        t.pattern,
		}
		base := t.executionBase
		rec.ExecutionBase = &base
		if !t.stopTime.IsZero() {
			stop := t.stopTime
			rec.StopTime = &stop
		}
		return rec, nil
	case IntervalTask:
		interval := t.interval
		rec := taskRecord{
			Type:           typeInterval,
			ID:             t.id,
			Name:           t.name,
			LastOccurrence: t.lastOccurrence,
			Interval:       interval.String(),
		}
		if !t.stopTime.IsZero() {
			stop := t.stopTime
			rec.StopTime = &stop
		}
		return rec, nil
	default:
		return taskRecord{}, fmt.Errorf("unknown task entry type %T", entry)
	}
}

func fromRecord(rec taskRecord) (TaskEntry, error) {
	stopTime := time.Time{}
	if rec.StopTime != nil {
		stopTime = *rec.StopTime
	}
	switch rec.Type {
	case typeOneTime:
		if rec.NextOccurrence == nil {
			return nil, fmt.Errorf("task %q: one-time entry missing nextOccurrence", rec.ID)
		}
		return NewOneTimeTask(rec.ID, rec.Name, rec.LastOccurrence, *rec.NextOccurrence), nil
	case typePattern:
		zone, err := time.LoadLocation(rec.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", rec.ID, err)
		}
		executionBase := time.Time{}
		if rec.ExecutionBase != nil {
			executionBase = *rec.ExecutionBase
		}
		entry, err := NewPatternTask(
			rec.ID, rec.Name, rec.Pattern, zone,
			stopTime, rec.LastOccurrence, executionBase,
		)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", rec.ID, err)
		}
		return entry, nil
	case typeInterval:
		interval, err := duration.Parse(rec.Interval)
		if err != nil {
			return nil, fmt.Errorf("task %q: parse interval %q: %w", rec.ID, rec.Interval, err)
		}
		return NewIntervalTask(rec.ID, rec.Name, *interval, stopTime, rec.LastOccurrence), nil
	default:
		return nil, fmt.Errorf("task %q: unknown task type %q", rec.ID, rec.Type)
	}
}
