package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/octylFractal/clock-resonator/internal/models"
)

// Storage handles the files inside the data folder: the task roster, the
// per-window layout state, and the small app state. Every write goes through
// a temp-file-then-rename protocol so a crash can never leave a partial
// file; readers always see either the old or the new complete state.
type Storage struct {
	mu      sync.Mutex
	baseDir string
}

func NewStorage(baseDir string) *Storage {
	os.MkdirAll(baseDir, 0755)
	return &Storage{baseDir: baseDir}
}

func (s *Storage) BaseDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseDir
}

func (s *Storage) taskFilePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filepath.Join(s.baseDir, "tasks.json")
}

func (s *Storage) windowStatePath(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filepath.Join(s.baseDir, "window-state", id+".json")
}

func (s *Storage) appStatePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filepath.Join(s.baseDir, "app-state.json")
}

// LoadTasks reads the whole roster. A missing file is an empty roster, not
// an error.
func (s *Storage) LoadTasks() ([]models.TaskEntry, error) {
	path := s.taskFilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	entries, err := models.UnmarshalTasks(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return entries, nil
}

// SaveTasks writes the whole roster atomically.
func (s *Storage) SaveTasks(entries []models.TaskEntry) error {
	data, err := models.MarshalTasks(entries)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.taskFilePath(), data)
}

// DeleteAllTasks removes the persisted roster file.
func (s *Storage) DeleteAllTasks() error {
	err := os.Remove(s.taskFilePath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// WindowState is the persisted geometry of one window.
type WindowState struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Maximized bool    `json:"maximized"`
}

// LoadWindowState returns the saved geometry for the given window
// identifier and whether any state existed.
func (s *Storage) LoadWindowState(id string) (WindowState, bool, error) {
	data, err := os.ReadFile(s.windowStatePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return WindowState{}, false, nil
		}
		return WindowState{}, false, err
	}
	var state WindowState
	if err := json.Unmarshal(data, &state); err != nil {
		return WindowState{}, false, err
	}
	return state, true, nil
}

// SaveWindowState writes the geometry for the given window identifier
// atomically.
func (s *Storage) SaveWindowState(id string, state WindowState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.windowStatePath(id), data)
}

// AppState is small cross-run state that is not part of the roster.
type AppState struct {
	LastRunVersion string `json:"last_run_version"`
}

func (s *Storage) LoadAppState() (AppState, error) {
	data, err := os.ReadFile(s.appStatePath())
	if err != nil {
		if os.IsNotExist(err) {
			return AppState{}, nil
		}
		return AppState{}, err
	}
	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return AppState{}, err
	}
	return state, nil
}

func (s *Storage) SaveAppState(state AppState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.appStatePath(), data)
}

// UpdateBaseDir points the storage at a new data folder without moving
// anything.
func (s *Storage) UpdateBaseDir(dir string) {
	os.MkdirAll(dir, 0755)
	s.mu.Lock()
	s.baseDir = dir
	s.mu.Unlock()
}

// MoveData copies the current data folder's contents into dir and switches
// the storage over to it. The old files are left behind.
func (s *Storage) MoveData(dir string) error {
	oldDir := s.BaseDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	err := filepath.WalkDir(oldDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(oldDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dir, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0755)
		}
		return copyFile(path, dst)
	})
	if err != nil {
		return err
	}
	s.UpdateBaseDir(dir)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeFileAtomic writes data to a temporary file in path's directory and
// renames it over path. The temporary file is removed on any failure, and
// the previous contents of path stay intact until the rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "tmp-*-"+filepath.Base(path))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
