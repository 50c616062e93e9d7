package zerolog

import (
	"github.com/rs/zerolog"

	"github.com/trickstertwo/alogger"
)

// Adapter forwards formatted lines to rs/zerolog.
//
// The tag goes into a "tag" field, the error into zerolog's error field. A
// fast GetLevel pre-check avoids allocating an event for disabled levels.
type Adapter struct {
	l zerolog.Logger
}

func New(l zerolog.Logger) *Adapter {
	return &Adapter{l: l}
}

func (a *Adapter) Log(level alogger.Level, tag, message string, err error) error {
	zlvl, ok := mapLevel(level)
	if !ok || zlvl < a.l.GetLevel() {
		return nil
	}
	ev := a.l.WithLevel(zlvl).Str("tag", tag)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(message)
	return nil
}

// mapLevel converts alogger.Level to zerolog.Level. NONE is dropped.
func mapLevel(l alogger.Level) (zerolog.Level, bool) {
	switch l {
	case alogger.LevelVerbose:
		return zerolog.TraceLevel, true
	case alogger.LevelDebug:
		return zerolog.DebugLevel, true
	case alogger.LevelInfo:
		return zerolog.InfoLevel, true
	case alogger.LevelWarn:
		return zerolog.WarnLevel, true
	case alogger.LevelError:
		return zerolog.ErrorLevel, true
	default:
		return zerolog.Disabled, false
	}
}
