package bulk

import (
	"math"
	"sync"

	domain "github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

// percentMultiplier is used to convert a ratio to percentage (0-100).
const percentMultiplier = 100

// Progress is a point-in-time view of a running batch.
type Progress struct {
	Operation domain.OperationKind
	Processed int
	Total     int
	Percent   float64
}

// Done reports whether every entity has been attempted.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Processed >= p.Total
}

// ProgressFunc receives progress updates. It may be called from a goroutine
// other than the one running Execute, but never concurrently, and Percent
// never decreases within a batch.
type ProgressFunc func(Progress)

// progressTracker counts attempted entities for one batch.
type progressTracker struct {
	mu        sync.Mutex
	op        domain.OperationKind
	total     int
	processed int
	notify    ProgressFunc
}

func newProgressTracker(op domain.OperationKind, total int, notify ProgressFunc) *progressTracker {
	return &progressTracker{op: op, total: total, notify: notify}
}

// start emits the initial 0% update.
func (t *progressTracker) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emitLocked()
}

// advance records n more attempted entities.
func (t *progressTracker) advance(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.processed = min(t.total, t.processed+n)
	t.emitLocked()
}

// complete jumps to 100%, used after a single bulk call and when a setup
// failure ends the batch.
func (t *progressTracker) complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.processed == t.total {
		return
	}
	t.processed = t.total
	t.emitLocked()
}

func (t *progressTracker) snapshotLocked() Progress {
	percent := 0.0
	if t.total > 0 {
		percent = math.Min(percentMultiplier, float64(t.processed)/float64(t.total)*percentMultiplier)
	}
	return Progress{Operation: t.op, Processed: t.processed, Total: t.total, Percent: percent}
}

func (t *progressTracker) emitLocked() {
	if t.notify == nil {
		return
	}
	t.notify(t.snapshotLocked())
}
