package slog

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/alogger"
)

// LevelVerbose sits one slog step below Debug.
const LevelVerbose = slog.LevelDebug - 4

// Adapter forwards formatted lines to a *slog.Logger using LogAttrs.
type Adapter struct {
	l *slog.Logger
}

func New(l *slog.Logger) *Adapter {
	if l == nil {
		l = slog.Default()
	}
	return &Adapter{l: l}
}

func (a *Adapter) Log(level alogger.Level, tag, message string, err error) error {
	lvl, ok := toSlog(level)
	if !ok {
		return nil
	}
	ctx := context.Background()
	if !a.l.Enabled(ctx, lvl) {
		return nil
	}
	attrs := make([]slog.Attr, 0, 2)
	attrs = append(attrs, slog.String("tag", tag))
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	a.l.LogAttrs(ctx, lvl, message, attrs...)
	return nil
}

func toSlog(l alogger.Level) (slog.Level, bool) {
	switch l {
	case alogger.LevelVerbose:
		return LevelVerbose, true
	case alogger.LevelDebug:
		return slog.LevelDebug, true
	case alogger.LevelInfo:
		return slog.LevelInfo, true
	case alogger.LevelWarn:
		return slog.LevelWarn, true
	case alogger.LevelError:
		return slog.LevelError, true
	default:
		return 0, false
	}
}
