// Package scanner implements the duplicate-detection pipeline: recursive
// file discovery followed by progressively more expensive filters — exact
// size, a cheap prefix hash, and finally a full SHA-256 digest. Each stage
// only sees the survivors of the previous one, so total hashing work shrinks
// rapidly compared to hashing every file.
package scanner

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Andrewsimsd/duplicate-file-finder/internal/progress"
)

// Scanner runs the duplicate-detection pipeline. All state is per-instance;
// two Scanners can run concurrently in the same process.
type Scanner struct {
	workers         int
	minFileSize     int64
	excludePatterns []string
	reporter        *progress.Reporter
	log             *logrus.Logger

	startTime  time.Time
	quickTotal int64
	fullTotal  int64
	quickDone  atomic.Int64
	fullDone   atomic.Int64
	stats      counters
}

type counters struct {
	FilesFound      atomic.Int64
	FilesDropped    atomic.Int64
	SizeBuckets     atomic.Int64
	CandidateGroups atomic.Int64
	DuplicateGroups atomic.Int64
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers sets the worker pool size for the hashing stages. Zero or
// negative selects the default (NumCPU clamped to [4,16]).
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMinFileSize drops files smaller than min bytes at discovery time.
func WithMinFileSize(min int64) Option {
	return func(s *Scanner) { s.minFileSize = min }
}

// WithExcludePatterns skips files whose path or base name matches any of
// the given glob patterns.
func WithExcludePatterns(patterns []string) Option {
	return func(s *Scanner) { s.excludePatterns = patterns }
}

// WithReporter attaches a progress reporter.
func WithReporter(r *progress.Reporter) Option {
	return func(s *Scanner) { s.reporter = r }
}

// WithLogger attaches a logger. Without one, log output is discarded.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		workers: defaultWorkers(),
		log:     discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultWorkers sizes the pool to available hardware concurrency, with a
// floor for I/O parallelism and a cap to avoid excessive context switching.
func defaultWorkers() int {
	n := runtime.NumCPU()
	if n < 4 {
		n = 4
	}
	if n > 16 {
		n = 16
	}
	return n
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// ValidateRoots checks that every root exists and is a directory. A failed
// check here is a caller error; per-entry failures below a valid root are
// tolerated by the pipeline itself.
func ValidateRoots(roots []string) error {
	if len(roots) == 0 {
		return fmt.Errorf("no directories to scan")
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("invalid directory %s: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("not a directory: %s", root)
		}
	}
	return nil
}

// Scan runs the full pipeline over the given roots and returns the
// confirmed duplicate groups, keyed by SHA-256 hex digest. Every returned
// group has at least two members whose contents are byte-identical. Per-file
// I/O errors silently exclude only the affected file; Scan fails only when
// a root itself is missing or not a directory.
func (s *Scanner) Scan(roots []string) (DuplicateGroups, error) {
	if err := ValidateRoots(roots); err != nil {
		return nil, err
	}

	s.reset()
	s.startTime = time.Now()

	s.publish(progress.StageWalking, 0, 0, "")
	files := s.collectFiles(roots)
	s.log.Infof("%d files identified across %d directories", len(files), len(roots))

	s.publish(progress.StageSizing, 0, int64(len(files)), "")
	buckets := pruneSingletons(groupBySize(files))
	s.stats.SizeBuckets.Store(int64(len(buckets)))
	s.log.Infof("%d shared file sizes identified", len(buckets))

	s.quickTotal = int64(len(buckets))
	candidates := s.groupByQuickHash(buckets)
	s.stats.CandidateGroups.Store(int64(len(candidates)))
	s.log.Infof("%d candidate quick-hash groups identified", len(candidates))

	for _, paths := range candidates {
		s.fullTotal += int64(len(paths))
	}
	duplicates := s.groupByFullHash(candidates)
	s.stats.DuplicateGroups.Store(int64(len(duplicates)))
	s.log.Infof("%d duplicate groups confirmed", len(duplicates))

	s.publishComplete(int64(len(duplicates)))
	return duplicates, nil
}

// Stats returns a snapshot of the pipeline counters for the current or most
// recent run.
func (s *Scanner) Stats() Stats {
	return Stats{
		FilesFound:      s.stats.FilesFound.Load(),
		SizeBuckets:     s.stats.SizeBuckets.Load(),
		CandidateGroups: s.stats.CandidateGroups.Load(),
		DuplicateGroups: s.stats.DuplicateGroups.Load(),
		FilesDropped:    s.stats.FilesDropped.Load(),
	}
}

// reset clears per-run state so a Scanner can be reused for another scan.
func (s *Scanner) reset() {
	s.quickTotal = 0
	s.fullTotal = 0
	s.quickDone.Store(0)
	s.fullDone.Store(0)
	s.stats.FilesFound.Store(0)
	s.stats.FilesDropped.Store(0)
	s.stats.SizeBuckets.Store(0)
	s.stats.CandidateGroups.Store(0)
	s.stats.DuplicateGroups.Store(0)
}

func (s *Scanner) publish(stage progress.Stage, done, total int64, path string) {
	if s.reporter == nil {
		return
	}
	s.reporter.Publish(progress.Update{
		Stage:       stage,
		CurrentPath: path,
		FilesFound:  s.stats.FilesFound.Load(),
		Done:        done,
		Total:       total,
		StartTime:   s.startTime,
	})
}

func (s *Scanner) publishComplete(groups int64) {
	if s.reporter == nil {
		return
	}
	s.reporter.Publish(progress.Update{
		Stage:      progress.StageComplete,
		FilesFound: s.stats.FilesFound.Load(),
		Groups:     groups,
		StartTime:  s.startTime,
	})
}

func (s *Scanner) publishWalk(path string) {
	s.publish(progress.StageWalking, 0, 0, path)
}
