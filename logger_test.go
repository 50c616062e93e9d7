package alogger

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trickstertwo/xclock/adapter/frozen"

	"github.com/trickstertwo/alogger/internal/goid"
)

// stubAdapter is a minimal Adapter for tests. It records every call and can
// optionally fail or write lines into a buffer.
type stubAdapter struct {
	mu     sync.Mutex
	logs   []stubEntry
	fail   error
	writer *bytes.Buffer
}

type stubEntry struct {
	Level   Level
	Tag     string
	Message string
	Err     error
}

func newStubAdapter(w *bytes.Buffer) *stubAdapter {
	return &stubAdapter{writer: w}
}

func (a *stubAdapter) Log(level Level, tag, message string, err error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logs = append(a.logs, stubEntry{Level: level, Tag: tag, Message: message, Err: err})
	if a.writer != nil {
		fmt.Fprintf(a.writer, "%s %s %s\n", level.Symbol(), tag, message)
	}
	return a.fail
}

func (a *stubAdapter) entries() []stubEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]stubEntry, len(a.logs))
	copy(out, a.logs)
	return out
}

type panicAdapter struct{}

func (panicAdapter) Log(Level, string, string, error) error { panic("boom") }

type closingAdapter struct {
	stubAdapter
	closeErr error
	closed   bool
}

func (a *closingAdapter) Close() error {
	a.closed = true
	return a.closeErr
}

func newCompactLogger(t *testing.T, min Level, adapters ...Adapter) *Logger {
	t.Helper()
	b := NewBuilder().
		WithTag("test").
		WithMinLevel(min).
		WithFormatter(CompactFormatter{}).
		WithErrorHandler(func(error) {})
	for _, a := range adapters {
		b.AddAdapter(a)
	}
	l, err := b.Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return l
}

func TestMinLevelFilterSkipsThunk(t *testing.T) {
	t.Parallel()

	adapter := newStubAdapter(nil)
	logger := newCompactLogger(t, LevelInfo, adapter)

	for _, lv := range []Level{LevelVerbose, LevelDebug} {
		called := false
		logger.Log(lv, func() string {
			called = true
			return "hidden"
		}, nil)
		if called {
			t.Fatalf("thunk evaluated for suppressed level %s", lv)
		}
	}
	logger.D(func() string { t.Fatal("D thunk evaluated"); return "" })
	logger.Debug().MsgFunc(func() string { t.Fatal("event thunk evaluated"); return "" })

	if got := len(adapter.entries()); got != 0 {
		t.Fatalf("expected 0 adapter calls, got %d", got)
	}
	if got := len(logger.History()); got != 0 {
		t.Fatalf("expected empty history, got %d", got)
	}
}

func TestInfoReadyScenario(t *testing.T) {
	t.Parallel()

	a1, a2 := newStubAdapter(nil), newStubAdapter(nil)
	logger := newCompactLogger(t, LevelInfo, a1, a2)

	logger.D(func() string { return "debug" })
	logger.I(func() string { return "ready" })

	h := logger.History()
	if len(h) != 1 || h[0] != "[I|test] ready" {
		t.Fatalf("history mismatch: %q", h)
	}
	for i, a := range []*stubAdapter{a1, a2} {
		got := a.entries()
		if len(got) != 1 {
			t.Fatalf("adapter %d: expected 1 call, got %d", i, len(got))
		}
		if got[0].Level != LevelInfo || got[0].Tag != "test" || got[0].Message != "[I|test] ready" {
			t.Fatalf("adapter %d: entry mismatch: %+v", i, got[0])
		}
	}
}

func TestNoneSilencesEverything(t *testing.T) {
	t.Parallel()

	adapter := newStubAdapter(nil)
	logger := newCompactLogger(t, LevelNone, adapter)
	logger.E(func() string { return "x" }, errors.New("e"))
	logger.Log(LevelNone, func() string { return "x" }, nil)

	if len(adapter.entries()) != 0 || len(logger.History()) != 0 {
		t.Fatal("expected no output with LevelNone")
	}
	if logger.Enabled(LevelError) {
		t.Fatal("ERROR should be disabled at NONE")
	}
}

func TestHistoryBoundedFIFO(t *testing.T) {
	t.Parallel()

	logger, err := NewBuilder().
		WithFormatter(FormatterFunc(func(_ Level, _ string, m string) string { return m })).
		WithMinLevel(LevelVerbose).
		WithHistoryLimit(10).
		Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	for i := 0; i < 13; i++ {
		n := i
		logger.V(func() string { return fmt.Sprint(n) })
	}
	h := logger.History()
	if len(h) != 10 || logger.history.Len() != 10 || logger.history.Limit() != 10 {
		t.Fatalf("expected 10 entries under limit 10, got %d (limit %d)", len(h), logger.history.Limit())
	}
	for i, line := range h {
		if want := fmt.Sprint(i + 3); line != want {
			t.Fatalf("entry %d: got %q want %q", i, line, want)
		}
	}
}

func TestDefaultHistoryLimit(t *testing.T) {
	t.Parallel()

	logger := newCompactLogger(t, LevelDebug)
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		logger.Info().Msgf("%d", i)
	}
	h := logger.History()
	if len(h) != DefaultHistoryLimit {
		t.Fatalf("expected %d entries, got %d", DefaultHistoryLimit, len(h))
	}
	if h[0] != "[I|test] 5" {
		t.Fatalf("oldest entry mismatch: %q", h[0])
	}
}

func TestHistoryLenAndLimit(t *testing.T) {
	t.Parallel()

	if got := NewHistory(0).Limit(); got != DefaultHistoryLimit {
		t.Fatalf("zero limit should default to %d, got %d", DefaultHistoryLimit, got)
	}

	h := NewHistory(3)
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		h.Add(line)
	}
	if h.Len() != 3 || h.Limit() != 3 {
		t.Fatalf("len %d limit %d", h.Len(), h.Limit())
	}
	if got := strings.Join(h.Snapshot(), ","); got != "c,d,e" {
		t.Fatalf("expected oldest evicted, got %q", got)
	}
	h.Clear()
	if h.Len() != 0 {
		t.Fatalf("expected empty history, got %d", h.Len())
	}
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	t.Parallel()

	logger := newCompactLogger(t, LevelDebug)
	logger.Info().Msg("one")
	snap := logger.History()

	logger.Info().Msg("two")
	logger.ClearHistory()
	snap2 := logger.History()

	if len(snap) != 1 || snap[0] != "[I|test] one" {
		t.Fatalf("snapshot changed: %q", snap)
	}
	if len(snap2) != 0 {
		t.Fatalf("expected cleared history, got %q", snap2)
	}
	snap[0] = "mutated"
	logger.Info().Msg("three")
	if got := logger.History(); got[0] != "[I|test] three" {
		t.Fatalf("history affected by snapshot mutation: %q", got)
	}
}

func TestFailingAdaptersAreIsolated(t *testing.T) {
	t.Parallel()

	failing := &stubAdapter{fail: errors.New("disk full")}
	healthy := newStubAdapter(nil)

	var mu sync.Mutex
	var reported []error
	logger, err := NewBuilder().
		WithFormatter(CompactFormatter{}).
		WithErrorHandler(func(err error) {
			mu.Lock()
			reported = append(reported, err)
			mu.Unlock()
		}).
		AddAdapter(failing).
		AddAdapter(panicAdapter{}).
		AddAdapter(healthy).
		Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	cause := errors.New("cause")
	logger.E(func() string { return "bad" }, cause)

	got := healthy.entries()
	if len(got) != 1 || got[0].Err != cause {
		t.Fatalf("healthy adapter did not receive the line: %+v", got)
	}
	if len(reported) != 2 {
		t.Fatalf("expected 2 reported adapter errors, got %d: %v", len(reported), reported)
	}
	var ae *AdapterError
	if !errors.As(reported[0], &ae) || ae.Adapter != Adapter(failing) {
		t.Fatalf("first report should wrap the failing adapter: %v", reported[0])
	}
	if !strings.Contains(reported[1].Error(), "panic: boom") {
		t.Fatalf("second report should describe the panic: %v", reported[1])
	}
}

func TestAdapterManagement(t *testing.T) {
	t.Parallel()

	a1, a2 := newStubAdapter(nil), newStubAdapter(nil)
	logger := newCompactLogger(t, LevelDebug, a1)
	logger.AddAdapter(a2)
	if n := len(logger.Adapters()); n != 2 {
		t.Fatalf("expected 2 adapters, got %d", n)
	}

	if !logger.RemoveAdapter(a1) {
		t.Fatal("expected a1 to be removed")
	}
	if logger.RemoveAdapter(a1) {
		t.Fatal("a1 removed twice")
	}
	fn := AdapterFunc(func(Level, string, string, error) error { return nil })
	logger.AddAdapter(fn)
	if logger.RemoveAdapter(fn) {
		t.Fatal("func adapters are not removable")
	}

	logger.Info().Msg("x")
	if len(a1.entries()) != 0 || len(a2.entries()) != 1 {
		t.Fatal("fan-out did not follow adapter removal")
	}

	logger.ClearAdapters()
	logger.Info().Msg("y")
	if len(a2.entries()) != 1 {
		t.Fatal("cleared adapter still received output")
	}
	if got := logger.History(); len(got) != 2 {
		t.Fatalf("history should still record lines: %q", got)
	}
}

func TestCloseAggregatesErrors(t *testing.T) {
	t.Parallel()

	ok := &closingAdapter{}
	bad := &closingAdapter{closeErr: errors.New("close failed")}
	logger := newCompactLogger(t, LevelDebug, ok, bad, newStubAdapter(nil))

	err := logger.Close()
	if err == nil || !strings.Contains(err.Error(), "close failed") {
		t.Fatalf("expected close error, got %v", err)
	}
	if !ok.closed || !bad.closed {
		t.Fatal("all closers should be closed")
	}
}

func TestEventErrAndNilSafety(t *testing.T) {
	t.Parallel()

	adapter := newStubAdapter(nil)
	logger := newCompactLogger(t, LevelWarn, adapter)

	var ev *Event = logger.Info()
	if ev.Enabled() {
		t.Fatal("INFO event should be nil below WARN")
	}
	ev.Err(errors.New("ignored")).Msgf("%d", 1)

	cause := errors.New("timeout")
	logger.Error().Err(cause).Msgf("sync %s", "failed")

	got := adapter.entries()
	if len(got) != 1 || got[0].Message != "[E|test] sync failed" || got[0].Err != cause {
		t.Fatalf("entry mismatch: %+v", got)
	}
}

func TestConcurrentEmitAndMutate(t *testing.T) {
	t.Parallel()

	adapter := newStubAdapter(nil)
	logger := newCompactLogger(t, LevelDebug, adapter)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				logger.Info().Msg("x")
				_ = logger.History()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			extra := newStubAdapter(nil)
			logger.AddAdapter(extra)
			logger.RemoveAdapter(extra)
			logger.ClearHistory()
		}
	}()
	wg.Wait()

	if got := len(adapter.entries()); got != 8*200 {
		t.Fatalf("expected %d entries, got %d", 8*200, got)
	}
	if n := len(logger.History()); n > DefaultHistoryLimit {
		t.Fatalf("history over limit: %d", n)
	}
}

func TestPrettyFormatterUsesClockAndCaller(t *testing.T) {
	t.Parallel()

	ft := time.Date(2025, 1, 1, 9, 8, 7, 6_000_000, time.UTC)
	adapter := newStubAdapter(nil)
	logger, err := NewBuilder().
		WithTag("pretty").
		WithClock(frozen.New(ft)).
		AddAdapter(adapter).
		Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	logger.Info().Msg("hello")
	got := adapter.entries()
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	lines := strings.Split(got[0].Message, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", got[0].Message)
	}
	if lines[0] != "┌─ [09:08:07.006] [I] pretty" {
		t.Fatalf("header mismatch: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "├─ ") || !strings.HasSuffix(lines[1], " • "+goid.Name()) {
		t.Fatalf("caller line mismatch: %q", lines[1])
	}
	if lines[2] != "└─ hello" {
		t.Fatalf("message line mismatch: %q", lines[2])
	}
}
