// Package dedupe tracks scoring event ids so retried requests apply once.
package dedupe

import (
	"context"
	"sync"
)

const defaultMaxSize = 50_000

// Deduper records seen event ids.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if not.
	// Returns true when id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a rejected event can be retried with the same id.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryDeduper keeps at most maxSize ids and evicts the oldest first.
// maxSize <= 0 disables eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	maxSize int
	seen    map[string]uint64 // id -> insertion sequence
	order   []string          // ids in insertion order; may hold stale ids
	seq     uint64
	seqs    []uint64 // insertion sequence per order slot
}

// NewInMemoryDeduper creates a deduper with the given options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]uint64)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seq++
	d.seen[id] = d.seq
	if d.maxSize > 0 {
		d.order = append(d.order, id)
		d.seqs = append(d.seqs, d.seq)
		for len(d.seen) > d.maxSize {
			d.evictOldest()
		}
	}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// The order slot goes stale and is skipped on eviction.
	delete(d.seen, id)
	if len(d.seen) == 0 {
		d.order, d.seqs = d.order[:0], d.seqs[:0]
	}
}

// evictOldest drops the oldest live id. Caller holds d.mu.
func (d *inMemoryDeduper) evictOldest() {
	for len(d.order) > 0 {
		id, seq := d.order[0], d.seqs[0]
		d.order, d.seqs = d.order[1:], d.seqs[1:]
		if cur, ok := d.seen[id]; ok && cur == seq {
			delete(d.seen, id)
			return
		}
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
