// Package inventory keeps the player's reward tokens: a set of strings that
// remembers insertion order and never holds a token twice.
package inventory

import (
	"fmt"
	"strings"
	"sync"
)

// Ledger holds reward tokens. The zero value is not usable; call New.
type Ledger struct {
	mu    sync.RWMutex
	items []string
	index map[string]struct{}

	// OnAdd is called outside the lock with each token Add takes in.
	OnAdd func(token string)
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{index: make(map[string]struct{})}
}

// Add appends token unless it is already held. It reports whether the
// ledger changed. Matching is exact and case-sensitive.
func (l *Ledger) Add(token string) bool {
	l.mu.Lock()
	if _, ok := l.index[token]; ok {
		l.mu.Unlock()
		return false
	}
	l.index[token] = struct{}{}
	l.items = append(l.items, token)
	l.mu.Unlock()

	if l.OnAdd != nil {
		l.OnAdd(token)
	}
	return true
}

// Has reports whether token is held.
func (l *Ledger) Has(token string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.index[token]
	return ok
}

// HasAll reports whether every token is held. It is true for no tokens.
func (l *Ledger) HasAll(tokens ...string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, t := range tokens {
		if _, ok := l.index[t]; !ok {
			return false
		}
	}
	return true
}

// Items returns a copy of the tokens in the order they were added.
func (l *Ledger) Items() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of tokens held.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Restore replaces the contents with items, dropping duplicates and keeping
// first occurrences in order. It does not call OnAdd.
func (l *Ledger) Restore(items []string) {
	l.mu.Lock()
	l.items = make([]string, 0, len(items))
	l.index = make(map[string]struct{}, len(items))
	for _, t := range items {
		if _, ok := l.index[t]; ok {
			continue
		}
		l.index[t] = struct{}{}
		l.items = append(l.items, t)
	}
	l.mu.Unlock()
}

// Summary formats the tokens for the HUD: "a, b", or "-" when empty.
func (l *Ledger) Summary() string {
	items := l.Items()
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func (l *Ledger) String() string {
	return fmt.Sprintf("Ledger{%d items}", l.Len())
}
