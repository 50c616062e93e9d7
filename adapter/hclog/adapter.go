// Package hclog forwards log lines to a hashicorp/go-hclog logger. Each tag
// becomes a named sub-logger so hclog prints it as the logger name.
package hclog

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/trickstertwo/alogger"
)

type Adapter struct {
	root hclog.Logger

	mu    sync.RWMutex
	named map[string]hclog.Logger
}

// New wraps l; nil means hclog.Default().
func New(l hclog.Logger) *Adapter {
	if l == nil {
		l = hclog.Default()
	}
	return &Adapter{root: l, named: make(map[string]hclog.Logger)}
}

func (a *Adapter) Log(level alogger.Level, tag, message string, err error) error {
	lvl := toHclog(level)
	if lvl == hclog.Off {
		return nil
	}
	l := a.forTag(tag)
	if err != nil {
		l.Log(lvl, message, "error", err)
		return nil
	}
	l.Log(lvl, message)
	return nil
}

func (a *Adapter) forTag(tag string) hclog.Logger {
	if tag == "" {
		return a.root
	}
	a.mu.RLock()
	l, ok := a.named[tag]
	a.mu.RUnlock()
	if ok {
		return l
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if l, ok = a.named[tag]; !ok {
		l = a.root.Named(tag)
		a.named[tag] = l
	}
	return l
}

func toHclog(l alogger.Level) hclog.Level {
	switch l {
	case alogger.LevelVerbose:
		return hclog.Trace
	case alogger.LevelDebug:
		return hclog.Debug
	case alogger.LevelInfo:
		return hclog.Info
	case alogger.LevelWarn:
		return hclog.Warn
	case alogger.LevelError:
		return hclog.Error
	default:
		return hclog.Off
	}
}
