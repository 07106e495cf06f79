package store

import (
	"log/slog"
	"strings"
	"time"

	"github.com/octylFractal/clock-resonator/internal/debounce"
	"github.com/octylFractal/clock-resonator/internal/livelist"
	"github.com/octylFractal/clock-resonator/internal/models"
	"github.com/octylFractal/clock-resonator/internal/report"
)

// saveQuietWindow is how long mutations must pause before the pending
// snapshot is written. Persistence intentionally lags live state by up to
// this much, trading write amplification for durability.
const saveQuietWindow = time.Second

// Manager owns the authoritative task roster: the id-to-entry mapping, its
// always-sorted live view, and the debounced persistence pipeline.
//
// The mapping is confined to the presentation goroutine: Put, Delete,
// Complete, Get, and Entries must only be used there. Loading and saving run
// on background goroutines and hand results back through runOnMain (fyne.Do
// in the app) before touching shared state.
type Manager struct {
	storage   *Storage
	reporter  *report.Reporter
	runOnMain func(func())

	tasks  map[string]models.TaskEntry
	sorted *livelist.Sorted[models.TaskEntry]
	saver  *debounce.Debouncer[[]models.TaskEntry]

	initialized bool
}

func NewManager(storage *Storage, reporter *report.Reporter, runOnMain func(func())) *Manager {
	return newManager(storage, reporter, runOnMain, saveQuietWindow)
}

func newManager(storage *Storage, reporter *report.Reporter, runOnMain func(func()), quiet time.Duration) *Manager {
	m := &Manager{
		storage:   storage,
		reporter:  reporter,
		runOnMain: runOnMain,
		tasks:     make(map[string]models.TaskEntry),
	}
	m.sorted = livelist.NewSorted(func(a, b models.TaskEntry) int {
		return strings.Compare(a.ID(), b.ID())
	})
	m.saver = debounce.New(quiet, m.save)
	return m
}

// Entries returns the live roster view, ordered by task id. Listener
// notifications are delivered synchronously with each mutation.
func (m *Manager) Entries() livelist.List[models.TaskEntry] {
	return m.sorted
}

func (m *Manager) Get(id string) (models.TaskEntry, bool) {
	entry, ok := m.tasks[id]
	return entry, ok
}

// Put inserts or wholesale-replaces the entry with the same id, then queues
// a save. The persisted file catches up once the quiet window elapses.
func (m *Manager) Put(entry models.TaskEntry) {
	if old, ok := m.tasks[entry.ID()]; ok {
		m.sorted.Remove(old)
	}
	m.tasks[entry.ID()] = entry
	m.sorted.Insert(entry)
	m.publish()
}

// Delete removes the entry if present. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id string) {
	old, ok := m.tasks[id]
	if !ok {
		return
	}
	delete(m.tasks, id)
	m.sorted.Remove(old)
	m.publish()
}

// Complete marks the task done at completionTime, replacing it with its
// successor or removing it when there is none. A pattern computation error
// surfaces to the caller and leaves the roster untouched.
func (m *Manager) Complete(id string, completionTime time.Time) error {
	entry, ok := m.tasks[id]
	if !ok {
		return nil
	}
	next, err := entry.NextTaskEntry(completionTime)
	if err != nil {
		return err
	}
	if next == nil {
		m.Delete(id)
		return nil
	}
	m.Put(next)
	return nil
}

// Initialize loads the persisted roster once, off the presentation
// goroutine, then applies the entries on it through the normal mutation
// path. Mutations made before the load lands are not lost: the loaded
// entries have distinct ids and are applied with plain Puts.
func (m *Manager) Initialize() {
	if m.initialized {
		return
	}
	m.initialized = true
	go func() {
		slog.Info("loading task entries")
		entries, err := m.storage.LoadTasks()
		if err != nil {
			m.reporter.Error("failed to load task entries", err)
			return
		}
		m.runOnMain(func() {
			for _, entry := range entries {
				m.Put(entry)
			}
		})
	}()
}

// Flush writes any pending snapshot immediately. Call on shutdown so the
// quiet window cannot swallow the final mutations.
func (m *Manager) Flush() {
	m.saver.Flush()
}

func (m *Manager) publish() {
	snapshot := make([]models.TaskEntry, 0, len(m.tasks))
	for _, entry := range m.tasks {
		snapshot = append(snapshot, entry)
	}
	m.saver.Trigger(snapshot)
}

func (m *Manager) save(entries []models.TaskEntry) {
	slog.Info("saving task entries", "count", len(entries))
	if err := m.storage.SaveTasks(entries); err != nil {
		m.reporter.Warn("failed to save task entries", err)
	}
}
