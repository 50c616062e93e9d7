package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/alogger"
)

// Adapter forwards formatted lines to go.uber.org/zap.
//
// The tag and error travel as fields ("tag", "error"); the formatted line is
// the zap message. Check is used so disabled levels build nothing.
type Adapter struct {
	l      *zap.Logger
	tagKey string
}

// New creates an adapter for the provided zap logger; nil means zap.NewNop.
func New(l *zap.Logger) *Adapter {
	return NewWithTagKey(l, "tag")
}

// NewWithTagKey lets callers override the tag field key (default "tag").
func NewWithTagKey(l *zap.Logger, tagKey string) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	if tagKey == "" {
		tagKey = "tag"
	}
	return &Adapter{l: l, tagKey: tagKey}
}

func (a *Adapter) Log(level alogger.Level, tag, message string, err error) error {
	zlvl, ok := toZapLevel(level)
	if !ok {
		return nil
	}
	ce := a.l.Check(zlvl, message)
	if ce == nil {
		return nil
	}
	fields := make([]zap.Field, 0, 2)
	fields = append(fields, zap.String(a.tagKey, tag))
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
	return nil
}

// Close flushes buffered zap output.
func (a *Adapter) Close() error {
	return a.l.Sync()
}

// toZapLevel maps VERBOSE to Debug (zap has no trace) and drops NONE.
// Error never maps to DPanic/Fatal so library code cannot exit the process.
func toZapLevel(l alogger.Level) (zapcore.Level, bool) {
	switch l {
	case alogger.LevelVerbose, alogger.LevelDebug:
		return zapcore.DebugLevel, true
	case alogger.LevelInfo:
		return zapcore.InfoLevel, true
	case alogger.LevelWarn:
		return zapcore.WarnLevel, true
	case alogger.LevelError:
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InvalidLevel, false
	}
}
