package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/octylFractal/clock-resonator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestTasksRoundTrip(t *testing.T) {
	s := NewStorage(t.TempDir())

	entry := models.NewOneTimeTask(
		"a", "dentist",
		mustTime(t, "2026-01-01T08:00:00Z"),
		mustTime(t, "2026-01-10T09:00:00Z"),
	)
	require.NoError(t, s.SaveTasks([]models.TaskEntry{entry}))

	loaded, err := s.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].ID())
	assert.Equal(t, "dentist", loaded[0].Name())
}

func TestLoadTasksMissingFileIsEmpty(t *testing.T) {
	s := NewStorage(t.TempDir())
	loaded, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestDeleteAllTasks(t *testing.T) {
	s := NewStorage(t.TempDir())
	require.NoError(t, s.SaveTasks([]models.TaskEntry{
		models.NewOneTimeTask("a", "x", time.Now(), time.Now()),
	}))

	require.NoError(t, s.DeleteAllTasks())
	loaded, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// Deleting again is fine.
	require.NoError(t, s.DeleteAllTasks())
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, writeFileAtomic(path, []byte("first")))
	require.NoError(t, writeFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	leftovers, err := filepath.Glob(filepath.Join(dir, "tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestAtomicWriteFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the parent directory should be.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := writeFileAtomic(filepath.Join(blocker, "out.json"), []byte("data"))
	require.Error(t, err)
}

func TestWindowStateRoundTrip(t *testing.T) {
	s := NewStorage(t.TempDir())

	_, ok, err := s.LoadWindowState("main")
	require.NoError(t, err)
	assert.False(t, ok)

	want := WindowState{X: 10, Y: 20, Width: 800, Height: 600, Maximized: true}
	require.NoError(t, s.SaveWindowState("main", want))

	got, ok, err := s.LoadWindowState("main")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// States are keyed per window.
	_, ok, err = s.LoadWindowState("other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAppStateRoundTrip(t *testing.T) {
	s := NewStorage(t.TempDir())

	state, err := s.LoadAppState()
	require.NoError(t, err)
	assert.Empty(t, state.LastRunVersion)

	state.LastRunVersion = "v1.2.3"
	require.NoError(t, s.SaveAppState(state))

	got, err := s.LoadAppState()
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", got.LastRunVersion)
}

func TestMoveData(t *testing.T) {
	oldDir := t.TempDir()
	newDir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewStorage(oldDir)

	require.NoError(t, s.SaveTasks([]models.TaskEntry{
		models.NewOneTimeTask("a", "dentist", time.Now(), time.Now().Add(time.Hour)),
	}))
	require.NoError(t, s.SaveWindowState("main", WindowState{Width: 640, Height: 480}))

	require.NoError(t, s.MoveData(newDir))
	assert.Equal(t, newDir, s.BaseDir())

	loaded, err := s.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].ID())

	_, ok, err := s.LoadWindowState("main")
	require.NoError(t, err)
	assert.True(t, ok)
}
