// Package report funnels asynchronous failures to a single process-wide
// sink. Background work (loads, saves) reports here instead of surfacing
// errors across goroutine boundaries.
package report

import (
	"context"
	"log/slog"
	"sync"
)

// Reporter logs every report at its severity and optionally forwards it to a
// user-visible hook.
type Reporter struct {
	log *slog.Logger

	mu   sync.Mutex
	hook func(msg string, err error)
}

func New(log *slog.Logger) *Reporter {
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{log: log}
}

// SetHook installs a user-visible notifier, such as an error dialog. The
// hook may be called from any goroutine.
func (r *Reporter) SetHook(hook func(msg string, err error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hook = hook
}

// Warn reports a recoverable failure, like a save that will be retried by
// the next mutation.
func (r *Reporter) Warn(msg string, err error) {
	r.report(slog.LevelWarn, msg, err)
}

// Error reports a failure with user-visible impact, like a startup load
// producing an empty roster.
func (r *Reporter) Error(msg string, err error) {
	r.report(slog.LevelError, msg, err)
}

func (r *Reporter) report(level slog.Level, msg string, err error) {
	r.log.Log(context.Background(), level, msg, "err", err)
	r.mu.Lock()
	hook := r.hook
	r.mu.Unlock()
	if hook != nil {
		hook(msg, err)
	}
}
