package ui

import (
	"time"

	"github.com/octylFractal/clock-resonator/internal/debounce"
	"github.com/octylFractal/clock-resonator/internal/report"
	"github.com/octylFractal/clock-resonator/internal/store"

	"fyne.io/fyne/v2"
)

// WindowRestorer restores window geometry after relaunch and records
// changes with the same quiet-window debounce and atomic-write policy as
// task saves.
type WindowRestorer struct {
	storage  *store.Storage
	reporter *report.Reporter
}

func NewWindowRestorer(storage *store.Storage, reporter *report.Reporter) *WindowRestorer {
	return &WindowRestorer{storage: storage, reporter: reporter}
}

// Attach restores any saved state for id onto w and starts tracking it.
// Desktop drivers expose neither window position nor a resize callback, so
// x/y round-trip as last recorded and geometry is sampled once a second;
// only actual changes reach the debouncer.
func (r *WindowRestorer) Attach(id string, w fyne.Window) {
	state, ok, err := r.storage.LoadWindowState(id)
	if err != nil {
		r.reporter.Warn("failed to load window state", err)
	}
	if ok {
		w.Resize(fyne.NewSize(float32(state.Width), float32(state.Height)))
		if state.Maximized {
			// Full screen is the closest state Fyne can reapply.
			w.SetFullScreen(true)
		}
	}

	saver := debounce.New(time.Second, func(st store.WindowState) {
		if err := r.storage.SaveWindowState(id, st); err != nil {
			r.reporter.Warn("failed to save window state", err)
		}
	})

	go func() {
		ticker := time.NewTicker(1 * time.Second)
		last := state
		for range ticker.C {
			var cur store.WindowState
			fyne.DoAndWait(func() {
				size := w.Canvas().Size()
				cur = store.WindowState{
					X:         state.X,
					Y:         state.Y,
					Width:     float64(size.Width),
					Height:    float64(size.Height),
					Maximized: w.FullScreen(),
				}
			})
			if cur != last {
				last = cur
				saver.Trigger(cur)
			}
		}
	}()
}
