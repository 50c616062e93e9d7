package alogger

import (
	"reflect"
)

// Facade helpers using the shared Logger.
// Usage: alogger.I(func() string { return "ready" })
//        alogger.Error().Err(err).Msg("sync failed")

func V(msg func() string)            { Get().V(msg) }
func D(msg func() string)            { Get().D(msg) }
func I(msg func() string)            { Get().I(msg) }
func W(msg func() string)            { Get().W(msg) }
func E(msg func() string, err error) { Get().E(msg, err) }

func Verbose() *Event { return Get().Verbose() }
func Debug() *Event   { return Get().Debug() }
func Info() *Event    { return Get().Info() }
func Warn() *Event    { return Get().Warn() }
func Error() *Event   { return Get().Error() }

// DebugFor logs at DEBUG with the message prefixed by v's type name:
// "[Uploader] started".
func DebugFor(v any, msg func() string) {
	l := Get()
	if !l.Enabled(LevelDebug) {
		return
	}
	name := typeName(v)
	l.D(func() string { return "[" + name + "] " + msg() })
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "Unknown"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if n := t.Name(); n != "" {
		return n
	}
	return "Unknown"
}
