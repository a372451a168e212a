package history

import "context"

// Repo is an append-only store of entries.
type Repo interface {
	// Append persists e after every entry already stored.
	Append(ctx context.Context, e Entry) error
	// List returns stored entries most recent first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]Entry, error)
}

func reverse(entries []Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

func truncate(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
