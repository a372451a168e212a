package history

import (
	"context"
	"sync"
)

// MemoryRepo stores entries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Append stores the entry.
func (r *MemoryRepo) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e.normalize())
	return nil
}

// List returns a copy of the stored entries, newest first.
func (r *MemoryRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	r.mu.RUnlock()
	reverse(out)
	return truncate(out, limit), nil
}

var _ Repo = (*MemoryRepo)(nil)
