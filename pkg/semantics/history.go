package semantics

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// HistoryCapacity bounds the classification history; the oldest record is
// evicted first.
const HistoryCapacity = 20

// Record is one classification result kept in history.
type Record struct {
	ID       uuid.UUID `json:"id"`
	Category Category  `json:"category"`
	Variant  string    `json:"variant"`
	At       time.Time `json:"at"`
}

// History is a bounded FIFO of classification records.
type History struct {
	mu      sync.RWMutex
	records []Record
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{records: make([]Record, 0, HistoryCapacity)}
}

// Push appends a record, evicting the oldest when full.
func (h *History) Push(category Category, variant string) Record {
	rec := Record{
		ID:       uuid.New(),
		Category: category,
		Variant:  variant,
		At:       time.Now(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.records) >= HistoryCapacity {
		copy(h.records, h.records[1:])
		h.records = h.records[:len(h.records)-1]
	}
	h.records = append(h.records, rec)
	return rec
}

// Latest returns the most recent record and whether one exists.
func (h *History) Latest() (Record, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}

// Records returns a copy of the history, oldest first.
func (h *History) Records() []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of stored records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}
