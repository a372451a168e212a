package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"resume-parser/internal/shared/telemetry"
)

// PGRepo implements Repo using Postgres. Entries are kept whole in a JSONB
// column and ordered by an identity sequence.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts a new entry.
func (r *PGRepo) Append(ctx context.Context, e Entry) error {
	const query = `
INSERT INTO parse_history (id, payload, created_at)
VALUES ($1, $2, $3)`
	payload, err := json.Marshal(e.normalize())
	if err != nil {
		return err
	}
	createdAt, err := time.Parse(TimestampLayout, e.Timestamp)
	if err != nil {
		createdAt = time.Now().UTC()
	}
	_, err = r.DB.ExecContext(ctx, query, uuid.NewString(), string(payload), createdAt)
	return err
}

// List returns entries newest first. Rows whose payload no longer decodes
// are skipped.
func (r *PGRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
SELECT payload
FROM parse_history
ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += "\nLIMIT $1"
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	skipped := 0
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var e Entry
		if err := json.Unmarshal(payload, &e); err != nil {
			skipped++
			continue
		}
		entries = append(entries, e.normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 {
		telemetry.Warn("history.rows_skipped", map[string]any{"skipped": skipped})
	}
	return entries, nil
}

var _ Repo = (*PGRepo)(nil)
