package alogger

import "sync"

// Process-wide accessor (Singleton with explicit lifecycle).
var (
	globalMu sync.RWMutex
	global   *Logger
)

// Get returns the shared Logger, building Default() on first use.
func Get() *Logger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = Default()
	}
	return global
}

// Init replaces the shared Logger with one built from opts, typically at
// program start.
func Init(opts ...Option) (*Logger, error) {
	l, err := New(opts...)
	if err != nil {
		return nil, err
	}
	SetGlobal(l)
	return l, nil
}

// SetGlobal installs l as the shared Logger. A nil l behaves like Reset.
func SetGlobal(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

// Reset drops the shared Logger; the next Get builds a fresh default.
func Reset() {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = nil
}
