// Package progress provides thread-safe progress reporting for a pipeline
// run. State is carried by an explicit Reporter handed to the scanner, not
// by process-wide globals, so multiple scans can run concurrently in one
// process without interference.
package progress

import (
	"fmt"
	"sync"
	"time"
)

// Stage identifies the pipeline phase an Update belongs to.
type Stage string

const (
	StageWalking   Stage = "walking"
	StageSizing    Stage = "sizing"
	StageQuickHash Stage = "quick-hash"
	StageFullHash  Stage = "full-hash"
	StageComplete  Stage = "complete"
)

// Update is a snapshot of pipeline progress.
type Update struct {
	Stage       Stage
	CurrentPath string
	FilesFound  int64
	Done        int64 // work units finished in the current stage
	Total       int64 // work units in the current stage, 0 if unknown
	Groups      int64 // confirmed duplicate groups, set on completion
	StartTime   time.Time
}

// Reporter fans progress updates out to subscribers. Sends are non-blocking:
// a slow listener misses intermediate updates rather than stalling workers.
type Reporter struct {
	mu        sync.RWMutex
	latest    *Update
	listeners []chan Update
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Subscribe returns a channel that receives progress updates.
func (r *Reporter) Subscribe() <-chan Update {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Update, 16)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel.
func (r *Reporter) Unsubscribe(ch <-chan Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Publish records the update and notifies all listeners without blocking.
func (r *Reporter) Publish(update Update) {
	r.mu.Lock()
	r.latest = &update
	listeners := make([]chan Update, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, listener := range listeners {
		select {
		case listener <- update:
		default:
		}
	}
}

// Latest returns the most recently published update, or nil before the
// first publish.
func (r *Reporter) Latest() *Update {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// Format renders an update as a single human-readable line.
func Format(u *Update) string {
	if u == nil {
		return "Initializing..."
	}

	elapsed := FormatDuration(time.Since(u.StartTime))

	switch u.Stage {
	case StageWalking:
		return fmt.Sprintf("Discovering files... %d found [%s]", u.FilesFound, elapsed)
	case StageSizing:
		return fmt.Sprintf("Indexing %d files by size... [%s]", u.FilesFound, elapsed)
	case StageQuickHash:
		return fmt.Sprintf("Quick-hashing candidates... %d/%d buckets [%s]", u.Done, u.Total, elapsed)
	case StageFullHash:
		return fmt.Sprintf("Verifying candidates... %d/%d files [%s]", u.Done, u.Total, elapsed)
	case StageComplete:
		return fmt.Sprintf("Scan complete: %d files examined, %d duplicate groups [%s]",
			u.FilesFound, u.Groups, elapsed)
	default:
		return "Scanning..."
	}
}

// FormatDuration renders a duration as 1h2m3s / 2m3s / 3s.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
