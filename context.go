package alogger

import "context"

// WithContext returns a new context with the provided logger.
func WithContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey, l)
}

// FromContext retrieves the logger from the context. If none is found the
// shared logger from Get is returned.
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey).(*Logger); ok && l != nil {
			return l
		}
	}
	return Get()
}

// Unexported new type so that our context key never collides with another.
type contextKeyType struct{}

var contextKey = contextKeyType{}
