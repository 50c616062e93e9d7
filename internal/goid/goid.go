// Package goid reads the current goroutine id, which stands in for a thread
// name in formatted log output.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

var goroutineSpace = []byte("goroutine ")

var stackBuf = sync.Pool{
	New: func() any {
		b := make([]byte, 64)
		return &b
	},
}

// ID parses the id out of the "goroutine 4707 [" header of runtime.Stack.
// It returns 0 if the header cannot be parsed.
func ID() uint64 {
	bp := stackBuf.Get().(*[]byte)
	defer stackBuf.Put(bp)
	b := *bp
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, goroutineSpace)
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	n, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Name returns "goroutine-<id>" with the full id.
func Name() string { return label(ID()) }

func label(id uint64) string {
	return "goroutine-" + strconv.FormatUint(id, 10)
}
