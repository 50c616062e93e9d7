// Package console writes log lines to a terminal in logcat style:
// "I/tag: message". The level symbol is colorized when the output is a TTY.
//
// Importing the package registers it as the default adapter used by
// alogger.Default, alogger.New and alogger.Get.
package console

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/trickstertwo/alogger"
)

func init() {
	alogger.RegisterDefaultAdapterFactory(func(w io.Writer) alogger.Adapter {
		return New(Options{Out: w})
	})
}

// Options configures the console adapter.
type Options struct {
	// Out defaults to stderr. *os.File outputs are wrapped with go-colorable
	// so ANSI colors also work on Windows consoles.
	Out io.Writer
	// NoColor disables colors even on a terminal.
	NoColor bool
	// ForceColor enables colors even when Out is not a terminal.
	ForceColor bool
}

// Adapter is the console sink. Safe for concurrent use.
type Adapter struct {
	mu     sync.Mutex
	out    io.Writer
	colors map[alogger.Level]*color.Color
}

var levelColors = map[alogger.Level]color.Attribute{
	alogger.LevelVerbose: color.FgHiBlack,
	alogger.LevelDebug:   color.FgCyan,
	alogger.LevelInfo:    color.FgGreen,
	alogger.LevelWarn:    color.FgYellow,
	alogger.LevelError:   color.FgRed,
}

func New(opts Options) *Adapter {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		out = colorable.NewColorable(f)
	}
	useColor := opts.ForceColor || (tty && !opts.NoColor)

	colors := make(map[alogger.Level]*color.Color, len(levelColors))
	for lv, attr := range levelColors {
		c := color.New(attr, color.Bold)
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		colors[lv] = c
	}
	return &Adapter{out: out, colors: colors}
}

// Log writes one prefixed line per line of message, then the error if any.
// LevelNone writes nothing.
func (a *Adapter) Log(level alogger.Level, tag, message string, err error) error {
	c, ok := a.colors[level]
	if !ok {
		return nil
	}
	prefix := c.Sprint(level.Symbol()) + "/" + tag + ": "

	var b strings.Builder
	for _, line := range strings.Split(message, "\n") {
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err != nil {
		b.WriteString(prefix)
		b.WriteString(err.Error())
		b.WriteByte('\n')
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	_, werr := io.WriteString(a.out, b.String())
	return werr
}
