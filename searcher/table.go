package searcher

import (
	"quoridor/game"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// entrySize is a rough per-entry cost of the map, key and value included.
const entrySize = 48

const (
	DefaultMemoryFraction = 1.0 / 64
	minEntries            = 1 << 12
	maxEntries            = 1 << 24
)

// Entry is a cached search value and the depth it was searched to. Values
// cut off by alpha or beta are stored as if exact.
type Entry struct {
	Depth int
	Value float64
}

// TableStats counts table traffic since the last reset.
type TableStats struct {
	Lookups int
	Hits    int
	Stores  int
	Dropped int // Stores refused because the table was full
	Entries int
}

// TranspositionTable caches search values by state hash. A table belongs to
// one game and one set of evaluation weights; reset it between games.
type TranspositionTable struct {
	entries    map[game.StateHash]Entry
	maxEntries int
	lookups    int
	hits       int
	stores     int
	dropped    int
}

type TableOption func(t *TranspositionTable)

// WithMaxEntries bounds the table size explicitly.
func WithMaxEntries(n int) TableOption {
	return func(t *TranspositionTable) {
		if n > 0 {
			t.maxEntries = n
		}
	}
}

// WithMemoryFraction sizes the table from a fraction of system memory.
func WithMemoryFraction(fraction float64) TableOption {
	return func(t *TranspositionTable) {
		if fraction > 0 && fraction <= 1 {
			t.maxEntries = entriesForMemory(fraction)
		}
	}
}

func NewTranspositionTable(options ...TableOption) *TranspositionTable {
	t := &TranspositionTable{}
	for _, option := range options {
		option(t)
	}
	if t.maxEntries == 0 {
		t.maxEntries = entriesForMemory(DefaultMemoryFraction)
	}
	t.entries = make(map[game.StateHash]Entry)
	log.Debug().Int("max-entries", t.maxEntries).Msg("transposition-table-created")
	return t
}

func entriesForMemory(fraction float64) int {
	totalMem := memory.TotalMemory()
	n := int(fraction * float64(totalMem) / entrySize)
	return min(max(n, minEntries), maxEntries)
}

// Lookup returns the entry stored for hash, if any.
func (t *TranspositionTable) Lookup(hash game.StateHash) (Entry, bool) {
	t.lookups++
	e, ok := t.entries[hash]
	if ok {
		t.hits++
	}
	return e, ok
}

// Store records a value. Existing keys are always overwritten; new keys are
// dropped once the table is full.
func (t *TranspositionTable) Store(hash game.StateHash, depth int, value float64) {
	if _, ok := t.entries[hash]; !ok && len(t.entries) >= t.maxEntries {
		t.dropped++
		return
	}
	t.entries[hash] = Entry{Depth: depth, Value: value}
	t.stores++
}

// Reset empties the table and its counters.
func (t *TranspositionTable) Reset() {
	clear(t.entries)
	t.lookups, t.hits, t.stores, t.dropped = 0, 0, 0, 0
}

func (t *TranspositionTable) Len() int {
	return len(t.entries)
}

func (t *TranspositionTable) MaxEntries() int {
	return t.maxEntries
}

func (t *TranspositionTable) Stats() TableStats {
	return TableStats{
		Lookups: t.lookups,
		Hits:    t.hits,
		Stores:  t.stores,
		Dropped: t.dropped,
		Entries: len(t.entries),
	}
}
