package alogger

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

var (
	ErrUnknownLevel  = errors.New("alogger: unknown level")
	ErrUnknownFormat = errors.New("alogger: unknown format")
	ErrNoFormatter   = errors.New("alogger: no formatter configured")
)

// ErrorHandler is the fallback channel for failures that must never reach
// the caller of a log method.
type ErrorHandler func(error)

// AdapterError reports a sink that failed or panicked while handling a line.
type AdapterError struct {
	Adapter Adapter
	Err     error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("alogger: adapter %T: %v", e.Adapter, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// DefaultErrorHandler prints to stderr.
func DefaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "alogger error: %v\n", err) }
