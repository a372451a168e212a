package history

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"resume-parser/internal/shared/telemetry"
)

const lockRetryDelay = 20 * time.Millisecond

// FileRepo stores entries as newline-delimited JSON in a single file.
// Appends are serialized within the process by a mutex and across processes
// by an advisory lock on "<path>.lock".
type FileRepo struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileRepo constructs a FileRepo for path.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the log file location.
func (r *FileRepo) Path() string {
	return r.path
}

// Append writes e as one line at the end of the log.
func (r *FileRepo) Append(ctx context.Context, e Entry) error {
	line, err := json.Marshal(e.normalize())
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	locked, err := r.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLocked, err)
	}
	if !locked {
		return ErrLocked
	}
	defer r.lock.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync history: %w", err)
	}
	return f.Close()
}

// List reads the whole log, skipping lines that do not decode as an entry.
// A missing file is an empty history.
func (r *FileRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	entries, skipped, err := readEntries(f)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		telemetry.Warn("history.lines_skipped", map[string]any{
			"path":    r.path,
			"skipped": skipped,
		})
	}
	reverse(entries)
	return truncate(entries, limit), nil
}

func readEntries(src io.Reader) ([]Entry, int, error) {
	reader := bufio.NewReader(src)
	entries := []Entry{}
	skipped := 0
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			trimmed := bytes.TrimSpace(line)
			if len(trimmed) > 0 {
				entry, ok := decodeLine(trimmed)
				if ok {
					entries = append(entries, entry)
				} else {
					skipped++
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return entries, skipped, nil
			}
			return nil, skipped, fmt.Errorf("read history: %w", err)
		}
	}
}

func decodeLine(line []byte) (Entry, bool) {
	if line[0] != '{' {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(line, &e); err != nil {
		return Entry{}, false
	}
	return e.normalize(), true
}

var _ Repo = (*FileRepo)(nil)
