package engine

import (
	"sync"

	"github.com/fantop/fantop/model"
)

// History is a ring buffer of evaluations for trend display.
type History struct {
	buf  []model.Evaluation
	head int
	size int
	cap  int
	mu   sync.RWMutex
}

// NewHistory creates a ring buffer with the given capacity.
func NewHistory(capacity int) *History {
	return &History{
		buf: make([]model.Evaluation, capacity),
		cap: capacity,
	}
}

// Push adds an evaluation to the ring buffer.
func (h *History) Push(ev model.Evaluation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.head] = ev
	h.head = (h.head + 1) % h.cap
	if h.size < h.cap {
		h.size++
	}
}

// Len returns the number of evaluations stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Latest returns a copy of the most recent evaluation.
func (h *History) Latest() *model.Evaluation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.size == 0 {
		return nil
	}
	idx := (h.head - 1 + h.cap) % h.cap
	ev := h.buf[idx] // copy
	return &ev
}

// Get returns a copy of the evaluation at position i (0 = oldest in buffer).
func (h *History) Get(i int) *model.Evaluation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if i < 0 || i >= h.size {
		return nil
	}
	idx := (h.head - h.size + i + h.cap) % h.cap
	ev := h.buf[idx] // copy
	return &ev
}

// Series extracts one numeric field across the whole buffer, oldest
// first, for chart rendering.
func (h *History) Series(f func(*model.Evaluation) float64) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]float64, 0, h.size)
	for i := 0; i < h.size; i++ {
		idx := (h.head - h.size + i + h.cap) % h.cap
		out = append(out, f(&h.buf[idx]))
	}
	return out
}
