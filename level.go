package alogger

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Level is an ordered log severity. Ranks follow the platform log priorities
// (VERBOSE=2 .. ERROR=6); LevelNone ranks above everything and silences output.
type Level int

const (
	LevelVerbose Level = 2
	LevelDebug   Level = 3
	LevelInfo    Level = 4
	LevelWarn    Level = 5
	LevelError   Level = 6
	LevelNone    Level = math.MaxInt
)

// Levels lists the real levels in ascending order (LevelNone excluded).
var Levels = []Level{LevelVerbose, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Rank is the numeric value used for filtering.
func (l Level) Rank() int { return int(l) }

// Symbol returns the one-character marker used in formatted output.
func (l Level) Symbol() string {
	switch l {
	case LevelVerbose:
		return "V"
	case LevelDebug:
		return "D"
	case LevelInfo:
		return "I"
	case LevelWarn:
		return "W"
	case LevelError:
		return "E"
	default:
		return "X"
	}
}

func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "VERBOSE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts level names (any case), their one-letter symbols and a
// few common aliases.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose", "v", "trace":
		return LevelVerbose, nil
	case "debug", "d":
		return LevelDebug, nil
	case "info", "i":
		return LevelInfo, nil
	case "warn", "w", "warning":
		return LevelWarn, nil
	case "error", "e":
		return LevelError, nil
	case "none", "x", "off":
		return LevelNone, nil
	}
	return LevelNone, errors.Wrapf(ErrUnknownLevel, "%q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so levels can be read
// straight from env variables and YAML.
func (l *Level) UnmarshalText(b []byte) error {
	lv, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = lv
	return nil
}
