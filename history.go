package alogger

import "sync"

// DefaultHistoryLimit is the number of formatted lines a Logger remembers.
const DefaultHistoryLimit = 1000

// History is a bounded FIFO of formatted lines. Appends past the limit evict
// the oldest entry.
type History struct {
	mu    sync.Mutex
	lines []string
	limit int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append(h.lines, line)
	if over := len(h.lines) - h.limit; over > 0 {
		// shift in place so the backing array does not grow without bound
		n := copy(h.lines, h.lines[over:])
		clear(h.lines[n:])
		h.lines = h.lines[:n]
	}
}

// Snapshot returns a copy, oldest first.
func (h *History) Snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.lines)
}

func (h *History) Limit() int { return h.limit }

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.lines)
	h.lines = h.lines[:0]
}
