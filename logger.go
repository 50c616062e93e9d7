package alogger

import (
	"io"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Logger filters by level, formats, records history and fans out to
// adapters. Emission and history reads share a read lock; adapter and history
// mutation take the write lock. Adapters run on the caller's goroutine.
type Logger struct {
	tag       string
	minLevel  Level
	formatter Formatter
	onError   ErrorHandler

	mu sync.RWMutex
	// adapters is replaced, never mutated in place, so emitters can fan out
	// over a snapshot after releasing the lock.
	adapters []Adapter
	history  *History
}

// Factory: internal constructor.
func newLogger(cfg Config) *Logger {
	return &Logger{
		tag:       cfg.Tag,
		minLevel:  cfg.MinLevel,
		formatter: cfg.Formatter,
		onError:   cfg.ErrorHandler,
		adapters:  cfg.Adapters,
		history:   NewHistory(cfg.HistoryLimit),
	}
}

func (l *Logger) Tag() string          { return l.tag }
func (l *Logger) MinLevel() Level      { return l.minLevel }
func (l *Logger) Formatter() Formatter { return l.formatter }

// Enabled reports whether logs at 'level' would be emitted by this logger.
// Use to avoid building messages in hot paths when disabled.
func (l *Logger) Enabled(level Level) bool {
	return level != LevelNone && level.Rank() >= l.minLevel.Rank()
}

// Log is the single entry point. msg is only called when the level passes
// the filter.
func (l *Logger) Log(level Level, msg func() string, err error) {
	if !l.Enabled(level) {
		return
	}
	var m string
	if msg != nil {
		m = msg()
	}
	l.emit(level, m, err)
}

func (l *Logger) V(msg func() string)            { l.Log(LevelVerbose, msg, nil) }
func (l *Logger) D(msg func() string)            { l.Log(LevelDebug, msg, nil) }
func (l *Logger) I(msg func() string)            { l.Log(LevelInfo, msg, nil) }
func (l *Logger) W(msg func() string)            { l.Log(LevelWarn, msg, nil) }
func (l *Logger) E(msg func() string, err error) { l.Log(LevelError, msg, err) }

// Level entry points returning fluent builders; nil when disabled.

func (l *Logger) Verbose() *Event { return getEvent(l, LevelVerbose) }
func (l *Logger) Debug() *Event   { return getEvent(l, LevelDebug) }
func (l *Logger) Info() *Event    { return getEvent(l, LevelInfo) }
func (l *Logger) Warn() *Event    { return getEvent(l, LevelWarn) }
func (l *Logger) Error() *Event   { return getEvent(l, LevelError) }

func (l *Logger) emit(level Level, msg string, err error) {
	line := l.format(level, msg)

	l.mu.RLock()
	l.history.Add(line)
	adapters := l.adapters
	l.mu.RUnlock()

	for _, a := range adapters {
		l.dispatch(a, level, line, err)
	}
}

func (l *Logger) format(level Level, msg string) (line string) {
	defer func() {
		if r := recover(); r != nil {
			l.onError(errors.Errorf("alogger: formatter %T panicked: %v", l.formatter, r))
			line = CompactFormatter{}.Format(level, l.tag, msg)
		}
	}()
	return l.formatter.Format(level, l.tag, msg)
}

// dispatch isolates one adapter: errors and panics go to the error handler.
func (l *Logger) dispatch(a Adapter, level Level, line string, err error) {
	defer func() {
		if r := recover(); r != nil {
			l.onError(&AdapterError{Adapter: a, Err: errors.Errorf("panic: %v", r)})
		}
	}()
	if aerr := a.Log(level, l.tag, line, err); aerr != nil {
		l.onError(&AdapterError{Adapter: a, Err: aerr})
	}
}

func (l *Logger) AddAdapter(a Adapter) {
	if a == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]Adapter, len(l.adapters), len(l.adapters)+1)
	copy(next, l.adapters)
	l.adapters = append(next, a)
}

// RemoveAdapter removes the first registered adapter equal to a and reports
// whether one was found. Adapters of non-comparable types (e.g. AdapterFunc)
// cannot be removed individually; use ClearAdapters.
func (l *Logger) RemoveAdapter(a Adapter) bool {
	if a == nil || !reflect.TypeOf(a).Comparable() {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, cur := range l.adapters {
		if reflect.TypeOf(cur).Comparable() && cur == a {
			next := make([]Adapter, 0, len(l.adapters)-1)
			next = append(next, l.adapters[:i]...)
			l.adapters = append(next, l.adapters[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Logger) ClearAdapters() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.adapters = nil
}

// Adapters returns a snapshot of the registered adapters.
func (l *Logger) Adapters() []Adapter {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Adapter, len(l.adapters))
	copy(out, l.adapters)
	return out
}

// History returns a copy of the recorded lines, oldest first.
func (l *Logger) History() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.history.Snapshot()
}

func (l *Logger) ClearHistory() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history.Clear()
}

// Close closes every adapter that implements io.Closer.
func (l *Logger) Close() error {
	var err error
	for _, a := range l.Adapters() {
		if c, ok := a.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
