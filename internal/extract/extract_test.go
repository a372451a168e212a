package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-parser/internal/shared/storage/object/local"
)

// buildPDF writes a single-page PDF with one text object per line.
func buildPDF(lines ...string) []byte {
	var content strings.Builder
	y := 720
	for _, line := range lines {
		fmt.Fprintf(&content, "BT /F1 12 Tf 72 %d Td (%s) Tj ET\n", y, line)
		y -= 20
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefAt := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefAt)
	return buf.Bytes()
}

func TestExtractTextFromBytesReadsLines(t *testing.T) {
	data := buildPDF("Jane Doe", "jane@example.com")
	text, err := ExtractTextFromBytes(context.Background(), data, "application/octet-stream", "cv.pdf")
	if err != nil {
		t.Fatalf("ExtractTextFromBytes: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "jane@example.com") {
		t.Fatalf("unexpected text %q", text)
	}
	if !strings.Contains(text, "\njane@example.com") {
		t.Fatalf("expected text objects on separate lines, got %q", text)
	}
}

func TestExtractTextFromBytesRejectsNonPDF(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("hello"), "text/plain", "notes.txt")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if !strings.Contains(err.Error(), "text/plain") {
		t.Fatalf("expected mime in error, got %v", err)
	}
}

func TestExtractTextFromBytesUnreadable(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("definitely not a pdf"), "application/pdf", "cv.pdf")
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestExtractTextFromBytesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractTextFromBytes(ctx, buildPDF("x"), mimePDF, "cv.pdf"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIsPDFName(t *testing.T) {
	cases := map[string]bool{
		"resume.pdf":  true,
		"RESUME.PDF":  true,
		"resume.docx": false,
		"pdf":         false,
		"":            false,
	}
	for name, want := range cases {
		if got := IsPDFName(name); got != want {
			t.Fatalf("IsPDFName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestSaveExtractedWritesSidecar(t *testing.T) {
	dir := t.TempDir()
	store := local.New(dir)
	key, err := SaveExtracted(context.Background(), store, "2024/05/01/id_cv.pdf", "Jane Doe")
	if err != nil {
		t.Fatalf("SaveExtracted: %v", err)
	}
	if key != "2024/05/01/id_cv.pdf.extracted.txt" {
		t.Fatalf("unexpected key %q", key)
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "Jane Doe" {
		t.Fatalf("unexpected sidecar %q", data)
	}
}
