package history

import (
	"time"

	"resume-parser/internal/parser"
)

// TimestampLayout is the format of Entry.Timestamp.
const TimestampLayout = time.RFC3339Nano

// Entry is one persisted parse result. The record fields are flattened next
// to the timestamp in JSON.
type Entry struct {
	parser.Record
	Timestamp string `json:"timestamp"`
}

// NewEntry stamps rec with at, in UTC.
func NewEntry(rec parser.Record, at time.Time) Entry {
	return Entry{
		Record:    rec.Normalize(),
		Timestamp: at.UTC().Format(TimestampLayout),
	}
}

func (e Entry) normalize() Entry {
	e.Record = e.Record.Normalize()
	return e
}
