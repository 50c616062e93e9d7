package alogger

import (
	"io"
	"sync"
)

// Adapter is an output sink (Strategy). It receives the already formatted
// line; a returned error or a panic is isolated by the Logger and reported
// to its ErrorHandler.
type Adapter interface {
	Log(level Level, tag, message string, err error) error
}

// AdapterFunc adapter.
type AdapterFunc func(level Level, tag, message string, err error) error

func (f AdapterFunc) Log(level Level, tag, message string, err error) error {
	return f(level, tag, message, err)
}

// WriterAdapter writes one line per call to an io.Writer. The error, if any,
// follows on its own line.
type WriterAdapter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterAdapter(w io.Writer) *WriterAdapter {
	return &WriterAdapter{w: w}
}

func (a *WriterAdapter) Log(level Level, tag, message string, err error) error {
	if level == LevelNone {
		return nil
	}
	buf := make([]byte, 0, len(message)+1)
	buf = append(buf, message...)
	buf = append(buf, '\n')
	if err != nil {
		buf = append(buf, err.Error()...)
		buf = append(buf, '\n')
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	_, werr := a.w.Write(buf)
	return werr
}
