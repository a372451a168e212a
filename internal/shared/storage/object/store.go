package object

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"resume-parser/internal/shared/util"
)

// ObjectStore keeps uploaded files and their derived artifacts.
type ObjectStore interface {
	// Save stores r under a fresh key derived from fileName.
	Save(ctx context.Context, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	// SaveWithKey stores r at an exact key, replacing any previous object.
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

// NewKey returns a day-partitioned, collision-free key for fileName, in the
// form "2006/01/02/<uuid>_<name>".
func NewKey(fileName string, now time.Time) (string, error) {
	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	day := now.UTC().Format("2006/01/02")
	return path.Join(day, fmt.Sprintf("%s_%s", uuid.NewString(), sanitizedName)), nil
}

// SidecarKey returns the key of a derived artifact stored next to storageKey.
func SidecarKey(storageKey, suffix string) string {
	return storageKey + suffix
}
