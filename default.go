package alogger

import (
	"io"
	"os"
	"sync"
)

var (
	factoryMu sync.RWMutex
	// defaultAdapterFactory is set by an adapter package (adapter/console) in
	// its init() to avoid import cycles. Default() uses it to build its sink.
	defaultAdapterFactory func(w io.Writer) Adapter
)

// RegisterDefaultAdapterFactory registers the constructor used by Default(),
// New() and Get(). Adapters call this from init() to avoid import cycles.
// Example (in adapter/console):
//
//	func init() {
//	  alogger.RegisterDefaultAdapterFactory(func(w io.Writer) alogger.Adapter {
//	    return console.New(console.Options{Out: w})
//	  })
//	}
func RegisterDefaultAdapterFactory(f func(io.Writer) Adapter) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	defaultAdapterFactory = f
}

// defaultAdapter builds the registered console sink on stderr, falling back
// to a plain WriterAdapter.
func defaultAdapter() Adapter {
	factoryMu.RLock()
	f := defaultAdapterFactory
	factoryMu.RUnlock()
	if f != nil {
		if a := f(os.Stderr); a != nil {
			return a
		}
	}
	return NewWriterAdapter(os.Stderr)
}

// Default creates a logger with tag "Alogger", DEBUG, PrettyFormatter and the
// default console adapter. Import adapter/console (or any package calling
// RegisterDefaultAdapterFactory) to pick the console sink.
func Default() *Logger {
	l, err := New()
	if err != nil {
		// New only fails on a nil formatter, which the defaults never produce.
		panic(err)
	}
	return l
}
