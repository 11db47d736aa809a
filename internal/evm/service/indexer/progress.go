package indexer

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Progress accumulates outcomes from concurrently finishing heights.
type Progress struct {
	total   uint64
	started time.Time

	attempted atomic.Uint64
	fetched   atomic.Uint64
	committed atomic.Uint64
	rows      atomic.Uint64
	done      atomic.Bool

	mu       sync.Mutex
	failures []Failure
}

// Snapshot is a point-in-time view of a sweep.
type Snapshot struct {
	Total     uint64        `json:"total"`
	Attempted uint64        `json:"attempted"`
	Fetched   uint64        `json:"fetched"`
	Committed uint64        `json:"committed"`
	Failed    uint64        `json:"failed"`
	Rows      uint64        `json:"rows"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Done      bool          `json:"done"`
}

func newProgress(total uint64, started time.Time) *Progress {
	return &Progress{total: total, started: started}
}

func (p *Progress) attempt() {
	p.attempted.Add(1)
}

func (p *Progress) fetch() {
	p.fetched.Add(1)
}

func (p *Progress) commit(rows int) {
	p.committed.Add(1)
	p.rows.Add(uint64(rows))
}

func (p *Progress) fail(f Failure) {
	p.mu.Lock()
	p.failures = append(p.failures, f)
	p.mu.Unlock()
}

func (p *Progress) failed() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return uint64(len(p.failures))
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() Snapshot {
	return Snapshot{
		Total:     p.total,
		Attempted: p.attempted.Load(),
		Fetched:   p.fetched.Load(),
		Committed: p.committed.Load(),
		Failed:    p.failed(),
		Rows:      p.rows.Load(),
		Elapsed:   time.Since(p.started),
		Done:      p.done.Load(),
	}
}

func (p *Progress) finish() Report {
	p.done.Store(true)

	p.mu.Lock()
	failures := slices.Clone(p.failures)
	p.mu.Unlock()
	slices.SortStableFunc(failures, func(a, b Failure) int {
		return cmp.Compare(a.Height, b.Height)
	})

	return Report{
		Attempted: p.attempted.Load(),
		Committed: p.committed.Load(),
		Failed:    uint64(len(failures)),
		Rows:      p.rows.Load(),
		Elapsed:   time.Since(p.started),
		Failures:  failures,
	}
}
