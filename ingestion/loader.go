package ingestion

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/commitload/core"
	"github.com/poiesic/commitload/storage"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultPoolSize is the default number of concurrent index writers.
	DefaultPoolSize = 75

	// admissionFactor sizes the admission budget relative to the pool.
	// The extra slack keeps the pool saturated while a handful of further
	// submissions queue, without buffering the whole export in memory.
	admissionFactor = 2
)

// CommitSource yields commit records one at a time.
// source.Scanner is the production implementation.
type CommitSource interface {
	ForEach(ctx context.Context, fn func(core.Commit) error) error
}

// Loader is the concurrency core of the import: a fixed-size worker pool
// fed by a single submitting goroutine, gated by an admission semaphore.
type Loader struct {
	indexer  storage.CommitIndexer
	pool     *ants.Pool
	sem      *semaphore.Weighted
	poolSize int
	logger   *slog.Logger
	tracker  *Tracker
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size. The admission budget is always
// twice the pool size. Values below 1 are clamped to 1, which degrades to
// fully serial execution.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}

		if l.pool != nil {
			l.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		l.pool = pool
		l.poolSize = size
		l.sem = semaphore.NewWeighted(int64(admissionFactor * size))
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// WithProgress enables progress reporting to w every interval records.
func WithProgress(w io.Writer, interval int) Option {
	return func(l *Loader) error {
		l.tracker = NewTracker(w, interval)
		return nil
	}
}

// NewLoader creates a loader writing through the given indexer.
func NewLoader(indexer storage.CommitIndexer, opts ...Option) (*Loader, error) {
	if indexer == nil {
		return nil, ErrIndexerRequired
	}

	pool, err := ants.NewPool(DefaultPoolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		indexer:  indexer,
		pool:     pool,
		sem:      semaphore.NewWeighted(int64(admissionFactor * DefaultPoolSize)),
		poolSize: DefaultPoolSize,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}

	return l, nil
}

// Stats summarizes one load. Counters are exact once Run has returned.
type Stats struct {
	Submitted int64 // records handed to the worker pool
	Created   int64 // documents newly written
	Conflicts int64 // documents that already existed (not failures)
	Failed    int64 // write or id errors, logged and skipped
}

// counters is the mutable, worker-shared form of Stats.
type counters struct {
	submitted atomic.Int64
	created   atomic.Int64
	conflicts atomic.Int64
	failed    atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Submitted: c.submitted.Load(),
		Created:   c.created.Load(),
		Conflicts: c.conflicts.Load(),
		Failed:    c.failed.Load(),
	}
}

// Run drains the source through the worker pool and blocks until every
// submitted write has finished. Per-record failures are logged and counted
// but never returned; the error covers only the source itself and context
// cancellation. Cancelling ctx stops new submissions while writes already
// in flight run to completion.
func (l *Loader) Run(ctx context.Context, commits CommitSource) (Stats, error) {
	var (
		wg    sync.WaitGroup
		stats counters
	)

	if l.tracker != nil {
		l.tracker.Start()
	}

	srcErr := commits.ForEach(ctx, func(c core.Commit) error {
		c = c.SummarizeApprovals()

		// Sole backpressure: blocks once admissionFactor * poolSize
		// submissions are outstanding, so the source is never drained
		// further ahead than the budget.
		if err := l.sem.Acquire(ctx, 1); err != nil {
			return err
		}

		wg.Add(1)
		if err := l.pool.Submit(func() {
			defer wg.Done()
			defer l.sem.Release(1)
			l.indexOne(c, &stats)
		}); err != nil {
			wg.Done()
			l.sem.Release(1)
			return err
		}

		stats.submitted.Add(1)
		return nil
	})

	// Drain in-flight work even when the source failed part-way.
	wg.Wait()

	if l.tracker != nil {
		l.tracker.Finish()
	}

	return stats.snapshot(), srcErr
}

// indexOne performs a single document write inside a pool worker. The
// write uses a background context so that interrupting the run does not
// abort writes already admitted.
func (l *Loader) indexOne(c core.Commit, stats *counters) {
	id, err := c.ID()
	if err != nil {
		stats.failed.Add(1)
		l.logger.Error("skipping commit without usable id", "err", err)
		return
	}

	created, err := l.indexer.IndexCommit(context.Background(), id, c)
	switch {
	case err != nil:
		stats.failed.Add(1)
		l.logger.Error("failed to index commit", "id", id, "err", err)
	case created:
		stats.created.Add(1)
	default:
		stats.conflicts.Add(1)
	}

	if l.tracker != nil {
		l.tracker.Increment(1)
	}
}

// Release releases the worker pool.
// The loader must not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}
