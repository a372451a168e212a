// Package uploads turns an uploaded PDF into a parsed, persisted record.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"resume-parser/internal/extract"
	"resume-parser/internal/history"
	"resume-parser/internal/parser"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/storage/object"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/shared/util"
)

// RecordParser produces a record from resume text.
type RecordParser interface {
	Parse(ctx context.Context, text string) parser.Record
}

// Recorder appends a record to the history log.
type Recorder interface {
	Record(ctx context.Context, rec parser.Record) (history.Entry, error)
}

// TextExtractor pulls text out of an uploaded payload.
type TextExtractor func(ctx context.Context, data []byte, mimeType string, fileName string) (string, error)

// Service contains the upload pipeline. Store is optional; when set, the
// original file and its extracted text are kept best-effort.
type Service struct {
	Parser  RecordParser
	History Recorder
	Store   object.ObjectStore
	Extract TextExtractor
}

// Upload describes one processed upload.
type Upload struct {
	ID         string
	FileName   string
	Digest     string
	StorageKey string
	Entry      history.Entry
}

// Process validates, extracts, parses and records one uploaded file.
func (s *Service) Process(ctx context.Context, fileName string, r io.Reader) (Upload, error) {
	up := Upload{ID: uuid.NewString(), FileName: strings.TrimSpace(fileName)}
	if up.FileName == "" {
		return up, ErrEmptyFileName
	}
	if !extract.IsPDFName(up.FileName) {
		return up, ErrNotPDF
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return up, err
	}
	up.Digest = util.ContentDigest(data)
	start := metrics.NowMillis()
	up.StorageKey = s.keepOriginal(ctx, up, data)

	extractFn := s.Extract
	if extractFn == nil {
		extractFn = extract.ExtractTextFromBytes
	}
	text, err := extractFn(ctx, data, "application/pdf", up.FileName)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return up, err
		}
		return up, fmt.Errorf("%w: %v", ErrUnreadablePDF, unwrapReader(err))
	}
	if strings.TrimSpace(text) == "" {
		return up, ErrNoText
	}
	s.keepText(ctx, up, text)

	rec := s.Parser.Parse(ctx, text)
	metrics.ObserveParseDurationMs(metrics.NowMillis() - start)

	entry, err := s.History.Record(ctx, rec)
	if err != nil {
		return up, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	up.Entry = entry

	telemetry.Info("upload.parsed", map[string]any{
		"upload_id":   up.ID,
		"file_name":   up.FileName,
		"storage_key": up.StorageKey,
		"sha256":      up.Digest,
		"bytes":       len(data),
		"skills":      len(entry.Skills),
		"experience":  len(entry.Experience),
	})
	return up, nil
}

func (s *Service) keepOriginal(ctx context.Context, up Upload, data []byte) string {
	if s.Store == nil {
		return ""
	}
	key, _, _, err := s.Store.Save(ctx, up.FileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Warn("upload.store_failed", map[string]any{
			"upload_id": up.ID,
			"file_name": up.FileName,
			"error":     err.Error(),
		})
		return ""
	}
	return key
}

func (s *Service) keepText(ctx context.Context, up Upload, text string) {
	if s.Store == nil || up.StorageKey == "" {
		return
	}
	if _, err := extract.SaveExtracted(ctx, s.Store, up.StorageKey, text); err != nil {
		telemetry.Warn("upload.store_text_failed", map[string]any{
			"upload_id":   up.ID,
			"storage_key": up.StorageKey,
			"error":       err.Error(),
		})
	}
}

// unwrapReader drops the extract package prefix so the message reads like
// the reader's own error.
func unwrapReader(err error) string {
	msg := err.Error()
	prefix := extract.ErrUnreadable.Error() + ": "
	return strings.TrimPrefix(msg, prefix)
}
