package ledger

import (
	"context"
	"sync"
	"time"
)

// MemoryLedger is an in-process Ledger with the same retention behavior
// as the redis one. Used in tests and available as a fallback when no
// redis is configured.
type MemoryLedger struct {
	mu        sync.Mutex
	retention time.Duration
	entries   map[string]map[string]time.Time
}

func NewMemoryLedger(retention time.Duration) *MemoryLedger {
	return &MemoryLedger{
		retention: retention,
		entries:   make(map[string]map[string]time.Time),
	}
}

func (l *MemoryLedger) IsProcessed(ctx context.Context, namespace, eventID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.entries[namespace][eventID]
	return ok
}

func (l *MemoryLedger) MarkProcessed(ctx context.Context, namespace, eventID string, at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ns := l.entries[namespace]
	if ns == nil {
		ns = make(map[string]time.Time)
		l.entries[namespace] = ns
	}
	ns[eventID] = at

	cutoff := at.Add(-l.retention)
	for id, processedAt := range ns {
		if !processedAt.After(cutoff) {
			delete(ns, id)
		}
	}
}

var _ Ledger = (*MemoryLedger)(nil)
