package history

import "errors"

var (
	// ErrInvalidInput marks a rejected request parameter.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLocked is returned when the log lock could not be acquired.
	ErrLocked = errors.New("history log is locked")
)
