package alogger

import (
	"fmt"
	"sync"
)

// Event is a fluent builder (Builder pattern) for a single log line.
// API: logger.Error().Err(err).Msgf("upload %s failed", name)
//
// A disabled level yields a nil *Event; every method is a no-op on nil, so
// arguments to MsgFunc are never evaluated.
type Event struct {
	l     *Logger
	level Level
	err   error
}

var eventPool = sync.Pool{
	New: func() any { return &Event{} },
}

func getEvent(l *Logger, level Level) *Event {
	if !l.Enabled(level) {
		return nil
	}
	ev := eventPool.Get().(*Event)
	ev.l = l
	ev.level = level
	ev.err = nil
	return ev
}

func (e *Event) putBack() {
	e.l = nil
	e.level = 0
	e.err = nil
	eventPool.Put(e)
}

// Enabled reports whether the event will be written.
func (e *Event) Enabled() bool { return e != nil }

// Err attaches an error handed to adapters alongside the line.
func (e *Event) Err(err error) *Event {
	if e == nil {
		return e
	}
	e.err = err
	return e
}

// Msg terminates the builder and emits the event.
func (e *Event) Msg(msg string) {
	if e == nil {
		return
	}
	e.l.emit(e.level, msg, e.err)
	e.putBack()
}

func (e *Event) Msgf(format string, args ...any) {
	if e == nil {
		return
	}
	e.Msg(fmt.Sprintf(format, args...))
}

// MsgFunc emits the result of fn.
func (e *Event) MsgFunc(fn func() string) {
	if e == nil {
		return
	}
	var msg string
	if fn != nil {
		msg = fn()
	}
	e.Msg(msg)
}

// Send emits an empty message, useful with Err alone.
func (e *Event) Send() { e.Msg("") }
