// Package history persists parse results and serves them back newest first.
package history

import (
	"context"
	"time"

	"resume-parser/internal/parser"
	"resume-parser/internal/shared/metrics"
)

// Service stamps and stores records.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service over repo.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Record appends rec with the current UTC time and returns the stored entry.
func (s *Service) Record(ctx context.Context, rec parser.Record) (Entry, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	entry := NewEntry(rec, now())
	if err := s.Repo.Append(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns up to limit entries, most recent first.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 0 {
		return nil, ErrInvalidInput
	}
	metrics.IncHistoryReads()
	entries, err := s.Repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
