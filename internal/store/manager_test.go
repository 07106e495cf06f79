package store

import (
	"testing"
	"time"

	"github.com/octylFractal/clock-resonator/internal/livelist"
	"github.com/octylFractal/clock-resonator/internal/models"
	"github.com/octylFractal/clock-resonator/internal/report"

	"github.com/sosodev/duration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testQuiet keeps save-related tests fast without changing behavior.
const testQuiet = 30 * time.Millisecond

func newTestManager(t *testing.T) (*Manager, *Storage) {
	t.Helper()
	storage := NewStorage(t.TempDir())
	runOnMain := func(f func()) { f() }
	return newManager(storage, report.New(nil), runOnMain, testQuiet), storage
}

func oneTime(t *testing.T, id string) models.TaskEntry {
	t.Helper()
	return models.NewOneTimeTask(id, "task "+id, time.Now(), time.Now().Add(time.Hour))
}

func ids(l livelist.List[models.TaskEntry]) []string {
	out := make([]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		out = append(out, l.At(i).ID())
	}
	return out
}

func TestManagerEntriesStaySorted(t *testing.T) {
	m, _ := newTestManager(t)

	m.Put(oneTime(t, "c"))
	m.Put(oneTime(t, "a"))
	m.Put(oneTime(t, "b"))

	assert.Equal(t, []string{"a", "b", "c"}, ids(m.Entries()))
}

func TestManagerPutReplacesInPlace(t *testing.T) {
	m, _ := newTestManager(t)

	m.Put(oneTime(t, "a"))
	m.Put(oneTime(t, "b"))

	replacement := models.NewOneTimeTask("a", "renamed", time.Now(), time.Now().Add(time.Hour))
	m.Put(replacement)

	assert.Equal(t, []string{"a", "b"}, ids(m.Entries()))
	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Name())
}

func TestManagerDeleteUnknownIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	m.Put(oneTime(t, "a"))

	m.Delete("missing")
	assert.Equal(t, []string{"a"}, ids(m.Entries()))

	m.Delete("a")
	assert.Empty(t, ids(m.Entries()))
}

func TestManagerCompleteOneTimeRemoves(t *testing.T) {
	m, _ := newTestManager(t)
	m.Put(oneTime(t, "a"))

	require.NoError(t, m.Complete("a", time.Now()))
	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestManagerCompleteRecurringReplaces(t *testing.T) {
	m, _ := newTestManager(t)
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	m.Put(models.NewIntervalTask("a", "water plants",
		duration.Duration{Days: 7}, time.Time{}, start))

	completion := start.AddDate(0, 0, 8)
	require.NoError(t, m.Complete("a", completion))

	got, ok := m.Get("a")
	require.True(t, ok)
	assert.True(t, got.LastOccurrence().Equal(completion))
	assert.Equal(t, 1, m.Entries().Len())
}

func TestManagerCompleteErrorLeavesRosterUntouched(t *testing.T) {
	m, _ := newTestManager(t)
	task, err := models.NewPatternTask(
		"a", "impossible", "0 9 31 2 *", time.UTC,
		time.Time{}, time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), time.Time{},
	)
	require.NoError(t, err)
	m.Put(task)

	err = m.Complete("a", time.Now())
	require.ErrorIs(t, err, models.ErrNoNextOccurrence)

	_, ok := m.Get("a")
	assert.True(t, ok, "the entry stays when its successor cannot be computed")
}

func TestManagerCompleteUnknownIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Complete("missing", time.Now()))
}

func TestManagerDebouncedSave(t *testing.T) {
	m, storage := newTestManager(t)

	m.Put(oneTime(t, "a"))
	m.Put(oneTime(t, "b"))
	m.Delete("a")

	require.Eventually(t, func() bool {
		loaded, err := storage.LoadTasks()
		return err == nil && len(loaded) == 1 && loaded[0].ID() == "b"
	}, time.Second, 5*time.Millisecond,
		"the final state lands once mutations pause")
}

func TestManagerFlushWritesImmediately(t *testing.T) {
	storage := NewStorage(t.TempDir())
	runOnMain := func(f func()) { f() }
	m := newManager(storage, report.New(nil), runOnMain, time.Hour)

	m.Put(oneTime(t, "a"))
	m.Flush()

	loaded, err := storage.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].ID())
}

func TestManagerInitializeLoadsRoster(t *testing.T) {
	dir := t.TempDir()
	seed := NewStorage(dir)
	require.NoError(t, seed.SaveTasks([]models.TaskEntry{
		models.NewOneTimeTask("a", "dentist", time.Now(), time.Now().Add(time.Hour)),
		models.NewOneTimeTask("b", "plumber", time.Now(), time.Now().Add(2*time.Hour)),
	}))

	runOnMain := func(f func()) { f() }
	m := newManager(NewStorage(dir), report.New(nil), runOnMain, testQuiet)
	m.Initialize()

	require.Eventually(t, func() bool {
		return m.Entries().Len() == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, ids(m.Entries()))

	// A second Initialize must not double the roster.
	m.Initialize()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, m.Entries().Len())
}

func TestManagerInitializeReportsLoadFailure(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorage(dir)
	require.NoError(t, writeFileAtomic(storage.taskFilePath(), []byte("not json")))

	reporter := report.New(nil)
	errs := make(chan error, 1)
	reporter.SetHook(func(msg string, err error) { errs <- err })

	runOnMain := func(f func()) { f() }
	m := newManager(storage, reporter, runOnMain, testQuiet)
	m.Initialize()

	select {
	case err := <-errs:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("load failure was never reported")
	}
	assert.Equal(t, 0, m.Entries().Len())
}
