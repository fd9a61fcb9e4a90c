package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Tracker reports load progress at a fixed record interval. The total is
// unknown up front because the source is lazy, so it reports a running
// count and rate rather than a percentage.
type Tracker struct {
	writer         io.Writer
	reportInterval int
	current        int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewTracker creates a progress tracker.
// writer: where to write progress output (typically os.Stderr)
// reportInterval: report progress every N records
func NewTracker(writer io.Writer, reportInterval int) *Tracker {
	if reportInterval <= 0 {
		reportInterval = 1
	}

	return &Tracker{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startTime = time.Now()
	t.started = true
	t.current = 0
	t.lastReported = 0
}

// Increment increases the processed count by delta. Safe to call from
// multiple pool workers.
func (t *Tracker) Increment(delta int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return
	}

	t.current += delta

	if t.current-t.lastReported >= t.reportInterval {
		t.report()
		t.lastReported = t.current
	}
}

// Finish prints the final count and a trailing newline.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return
	}

	t.report()
	fmt.Fprintln(t.writer)
}

// Elapsed returns the time elapsed since Start was called.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return 0
	}

	return time.Since(t.startTime)
}

// report prints the current progress. Must be called with lock held.
func (t *Tracker) report() {
	elapsed := time.Since(t.startTime)
	rate := float64(t.current) / elapsed.Seconds()

	fmt.Fprintf(t.writer, "\rIndexed: %d (%.1f commits/s)", t.current, rate)
}
