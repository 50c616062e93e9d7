package alogger

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/alogger/internal/goid"
)

// Formatter turns a record into the display string handed to adapters and
// stored in history.
type Formatter interface {
	Format(level Level, tag, message string) string
}

// FormatterFunc adapter.
type FormatterFunc func(level Level, tag, message string) string

func (f FormatterFunc) Format(level Level, tag, message string) string { return f(level, tag, message) }

// CompactFormatter renders "[I|tag] message".
type CompactFormatter struct{}

func (CompactFormatter) Format(level Level, tag, message string) string {
	var b strings.Builder
	b.Grow(len(tag) + len(message) + 6)
	b.WriteByte('[')
	b.WriteString(level.Symbol())
	b.WriteByte('|')
	b.WriteString(tag)
	b.WriteString("] ")
	b.WriteString(message)
	return b.String()
}

// PrettyFormatter renders a three line box with time, caller and goroutine:
//
//	┌─ [15:04:05.000] [I] tag
//	├─ pkg.Func:42 • goroutine-7
//	└─ message
type PrettyFormatter struct {
	// Clock defaults to the process clock (xclock.Now).
	Clock xclock.Clock
}

const (
	prettyTimeLayout = "15:04:05.000"
	unknownCaller    = "Unknown"
)

func (f PrettyFormatter) Format(level Level, tag, message string) string {
	now := xclock.Now()
	if f.Clock != nil {
		now = f.Clock.Now()
	}
	thread := goid.Name()

	var b strings.Builder
	b.Grow(len(tag) + len(message) + 96)
	b.WriteString("┌─ [")
	b.WriteString(now.Format(prettyTimeLayout))
	b.WriteString("] [")
	b.WriteString(level.Symbol())
	b.WriteString("] ")
	b.WriteString(tag)
	b.WriteString("\n├─ ")
	b.WriteString(callerInfo())
	b.WriteString(" • ")
	b.WriteString(thread)
	b.WriteString("\n└─ ")
	b.WriteString(message)
	return b.String()
}

// libraryPath is this package's import path. Frames in it and in the adapter
// packages below it are skipped when looking for the caller; other packages
// of the module (config, commands) are callers like any other.
var libraryPath = reflect.TypeOf((*Logger)(nil)).Elem().PkgPath()

func isLibraryFrame(fn string) bool {
	return strings.HasPrefix(fn, "runtime.") ||
		strings.HasPrefix(fn, libraryPath+".") ||
		strings.HasPrefix(fn, libraryPath+"/adapter/")
}

// callerInfo returns "pkg.Func:line" for the first frame outside the library,
// or "Unknown".
func callerInfo() string {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return unknownCaller
	}
	frames := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := frames.Next()
		if fr.Function != "" && !isLibraryFrame(fr.Function) {
			name := fr.Function
			if i := strings.LastIndexByte(name, '/'); i >= 0 {
				name = name[i+1:]
			}
			return name + ":" + strconv.Itoa(fr.Line)
		}
		if !more {
			return unknownCaller
		}
	}
}

// ParseFormatter maps "pretty" and "compact" to formatters.
func ParseFormatter(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pretty", "":
		return PrettyFormatter{}, nil
	case "compact":
		return CompactFormatter{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
}
