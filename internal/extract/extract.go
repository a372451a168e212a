// Package extract pulls plain text out of uploaded PDF resumes.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"resume-parser/internal/shared/storage/object"
)

const (
	mimePDF = "application/pdf"

	// ExtractedSuffix names the plain-text copy stored next to an upload.
	ExtractedSuffix = ".extracted.txt"
)

var (
	// ErrUnsupported is returned for payloads that are not PDFs.
	ErrUnsupported = errors.New("unsupported document type")
	// ErrUnreadable wraps failures of the PDF reader.
	ErrUnreadable = errors.New("unreadable pdf")
)

// IsPDFName reports whether fileName carries a .pdf extension, in any case.
func IsPDFName(fileName string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(fileName)), ".pdf")
}

// ExtractTextFromBytes extracts text from an in-memory PDF. Pages are joined
// with a newline.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := normalizeMimeType(mimeType, fileName, data)
	if normalized != mimePDF {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, normalized)
	}
	text, err := extractPDF(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return text, nil
}

// SaveExtracted stores text next to the upload at storageKey and returns the
// derived key.
func SaveExtracted(ctx context.Context, store object.ObjectStore, storageKey string, text string) (string, error) {
	key := object.SidecarKey(storageKey, ExtractedSuffix)
	if _, err := store.SaveWithKey(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("save extracted text key=%s: %w", key, err)
	}
	return key, nil
}

// extractPDF converts reader panics on malformed streams into errors.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("malformed PDF: %v", p)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 0; i < numPages; i++ {
		page := r.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i+1, err)
		}
		buf.WriteString(pageText)
		if i < numPages-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}

// normalizeMimeType trusts the .pdf extension or the %PDF magic over a
// generic client-declared type.
func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == mimePDF {
		return clean
	}
	if IsPDFName(fileName) || bytes.HasPrefix(data, []byte("%PDF-")) {
		return mimePDF
	}
	if clean == "" {
		return "application/octet-stream"
	}
	return clean
}
