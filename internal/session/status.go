package session

import (
	"strings"
	"sync"
)

// StatusLog collects the human-readable progress strings shown to the user.
// Entries are identified by their 1-based sequence number; once emitted an
// entry is immutable except for MarkDone appending the " done." suffix.
type StatusLog struct {
	mu      sync.Mutex
	entries []string
}

// NewStatusLog constructs an empty StatusLog.
func NewStatusLog() *StatusLog {
	return &StatusLog{}
}

// Append adds a status entry and returns its sequence number.
func (l *StatusLog) Append(text string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, text)
	return len(l.entries)
}

// MarkDone appends the done suffix in place to the entry with the given
// sequence number. Unknown or already-marked entries are left alone.
func (l *StatusLog) MarkDone(seq int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := seq - 1
	if i < 0 || i >= len(l.entries) {
		return
	}
	if strings.HasSuffix(l.entries[i], StatusDone) {
		return
	}
	l.entries[i] += StatusDone
}

// Entries returns a snapshot of the log in sequence order.
func (l *StatusLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Reset clears the log for a fresh page lifecycle.
func (l *StatusLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
