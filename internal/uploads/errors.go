package uploads

import (
	"errors"
	"strings"
)

var (
	ErrNoFile        = errors.New("no file uploaded")
	ErrEmptyFileName = errors.New("empty filename")
	ErrNotPDF        = errors.New("file must be a PDF")
	ErrNoText        = errors.New("no text could be extracted from PDF")
	ErrUnreadablePDF = errors.New("error reading PDF")
	ErrPersist       = errors.New("persist history")
)

// clientMessages holds the wording returned to API callers.
var clientMessages = map[error]string{
	ErrNoFile:        "No file uploaded",
	ErrEmptyFileName: "Empty filename",
	ErrNotPDF:        "File must be a PDF",
	ErrNoText:        "No text could be extracted from PDF",
	ErrUnreadablePDF: "Error reading PDF",
	ErrPersist:       "Server error",
}

// clientMessage renders err for the response body, keeping any detail that
// follows the sentinel.
func clientMessage(err error) string {
	for sentinel, msg := range clientMessages {
		if !errors.Is(err, sentinel) {
			continue
		}
		if detail, ok := strings.CutPrefix(err.Error(), sentinel.Error()); ok {
			return msg + detail
		}
		return msg
	}
	return "Server error: " + err.Error()
}
