// Package file is a rotating file sink. Each day gets its own log file; when
// the current file grows past MaxFileSize a new one is started and only the
// MaxFiles most recently modified files are kept.
//
// Files are named <prefix>_<yyyy-mm-dd>.log, then <prefix>_<yyyy-mm-dd>.<n>.log
// for each rotation within the same day. No file handle is kept open between
// writes.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/trickstertwo/xclock"
	"go.uber.org/multierr"

	"github.com/trickstertwo/alogger"
	"github.com/trickstertwo/alogger/internal/goid"
)

const (
	DefaultPrefix      = "app"
	DefaultMaxFileSize = 5 * 1024 * 1024
	DefaultMaxFiles    = 5

	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05.000"
)

var ErrNoDirectory = errors.New("file: no log directory configured")

// Options configures the file adapter.
type Options struct {
	Dir         string
	Prefix      string // default "app"
	MaxFileSize int64  // bytes; default 5 MiB
	MaxFiles    int    // default 5, minimum 1
	Fs          afero.Fs
	Clock       xclock.Clock

	// ErrorHandler receives I/O failures. When set, Log reports there and
	// returns nil; otherwise the error is returned to the Logger.
	ErrorHandler alogger.ErrorHandler
}

// Adapter writes lines as
// "[2006-01-02 15:04:05.000] [I] [tag] [goroutine-7] message". All writes
// are serialized by one mutex around check, rotate and append.
type Adapter struct {
	fs       afero.Fs
	dir      string
	prefix   string
	maxSize  int64
	maxFiles int
	clock    xclock.Clock
	onError  alogger.ErrorHandler
	pattern  *regexp.Regexp

	mu   sync.Mutex
	date string // date of the current file; "" until the first write
	seq  int
}

func New(opts Options) (*Adapter, error) {
	if opts.Dir == "" {
		return nil, ErrNoDirectory
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = DefaultMaxFiles
	}
	if err := opts.Fs.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "file: create log directory %s", opts.Dir)
	}

	return &Adapter{
		fs:       opts.Fs,
		dir:      opts.Dir,
		prefix:   opts.Prefix,
		maxSize:  opts.MaxFileSize,
		maxFiles: opts.MaxFiles,
		clock:    opts.Clock,
		onError:  opts.ErrorHandler,
		pattern:  namePattern(opts.Prefix),
	}, nil
}

func (a *Adapter) Dir() string { return a.dir }

func (a *Adapter) now() time.Time {
	if a.clock != nil {
		return a.clock.Now()
	}
	return xclock.Now()
}

func (a *Adapter) Log(level alogger.Level, tag, message string, err error) error {
	if level == alogger.LevelNone {
		return nil
	}
	now := a.now()
	line := formatLine(now, level, tag, goid.Name(), message, err)

	a.mu.Lock()
	werr := a.write(now, line)
	a.mu.Unlock()

	if werr != nil && a.onError != nil {
		a.onError(werr)
		return nil
	}
	return werr
}

func formatLine(now time.Time, level alogger.Level, tag, thread, message string, err error) []byte {
	buf := make([]byte, 0, len(message)+len(tag)+64)
	buf = append(buf, '[')
	buf = now.AppendFormat(buf, timestampLayout)
	buf = append(buf, "] ["...)
	buf = append(buf, level.Symbol()...)
	buf = append(buf, "] ["...)
	buf = append(buf, tag...)
	buf = append(buf, "] ["...)
	buf = append(buf, thread...)
	buf = append(buf, "] "...)
	buf = append(buf, message...)
	buf = append(buf, '\n')
	if err != nil {
		// %+v prints stack traces for errors created with pkg/errors
		buf = fmt.Appendf(buf, "%+v\n", err)
	}
	return buf
}

// write resolves the current file, rotates if it is over the size limit and
// appends line. The caller must hold the mutex.
func (a *Adapter) write(now time.Time, line []byte) error {
	var errs error
	if err := a.resolve(now.Format(dateLayout)); err != nil {
		errs = multierr.Append(errs, err)
	}

	path := a.path(a.date, a.seq)
	if info, err := a.fs.Stat(path); err == nil && info.Size() > a.maxSize {
		// keep writing even if pruning fails so the line is not lost
		errs = multierr.Append(errs, a.rotate())
		path = a.path(a.date, a.seq)
	}

	f, err := a.fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return multierr.Append(errs, errors.Wrapf(err, "file: open %s", path))
	}
	if _, err := f.Write(line); err != nil {
		errs = multierr.Append(errs, errors.Wrapf(err, "file: write %s", path))
	}
	if err := f.Close(); err != nil {
		errs = multierr.Append(errs, errors.Wrapf(err, "file: close %s", path))
	}
	return errs
}

// resolve moves to date, picking up the highest sequence already on disk.
func (a *Adapter) resolve(date string) error {
	if date == a.date {
		return nil
	}
	a.date, a.seq = date, 0
	files, err := a.list()
	for _, lf := range files {
		if lf.date == date && lf.seq > a.seq {
			a.seq = lf.seq
		}
	}
	return err
}

// rotate deletes all but the newest MaxFiles-1 files and advances to the
// next sequence number.
func (a *Adapter) rotate() error {
	a.seq++
	files, err := a.list()
	if err != nil {
		return err
	}
	keep := a.maxFiles - 1
	if keep >= len(files) {
		return nil
	}
	var errs error
	for _, lf := range files[keep:] {
		if rerr := a.fs.Remove(lf.path); rerr != nil && !os.IsNotExist(rerr) {
			errs = multierr.Append(errs, errors.Wrapf(rerr, "file: remove %s", lf.path))
		}
	}
	return errs
}

func (a *Adapter) path(date string, seq int) string {
	name := a.prefix + "_" + date
	if seq > 0 {
		name += "." + strconv.Itoa(seq)
	}
	return filepath.Join(a.dir, name+".log")
}

type logFile struct {
	path    string
	date    string
	seq     int
	modTime time.Time
}

func namePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `_(\d{4}-\d{2}-\d{2})(?:\.(\d+))?\.log$`)
}

func (a *Adapter) list() ([]logFile, error) {
	return listFiles(a.fs, a.dir, a.pattern)
}

// listFiles returns the log files in dir, newest first: by modification
// time, then date, then sequence.
func listFiles(fs afero.Fs, dir string, pattern *regexp.Regexp) ([]logFile, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "file: list %s", dir)
	}
	files := make([]logFile, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(fi.Name())
		if m == nil {
			continue
		}
		seq := 0
		if m[2] != "" {
			seq, _ = strconv.Atoi(m[2])
		}
		files = append(files, logFile{
			path:    filepath.Join(dir, fi.Name()),
			date:    m[1],
			seq:     seq,
			modTime: fi.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		fi, fj := files[i], files[j]
		if !fi.modTime.Equal(fj.modTime) {
			return fi.modTime.After(fj.modTime)
		}
		if fi.date != fj.date {
			return fi.date > fj.date
		}
		return fi.seq > fj.seq
	})
	return files, nil
}

func paths(files []logFile) []string {
	out := make([]string, len(files))
	for i, lf := range files {
		out[i] = lf.path
	}
	return out
}

// Files returns the paths of the current log files, newest first.
func (a *Adapter) Files() ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	files, err := a.list()
	if err != nil {
		return nil, err
	}
	return paths(files), nil
}

// List returns the log files for prefix in dir, newest first, without
// creating anything. A nil fs means the OS filesystem and an empty prefix
// means DefaultPrefix. A missing dir is an error matching os.ErrNotExist.
func List(fs afero.Fs, dir, prefix string) ([]string, error) {
	if dir == "" {
		return nil, ErrNoDirectory
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	files, err := listFiles(fs, dir, namePattern(prefix))
	if err != nil {
		return nil, err
	}
	return paths(files), nil
}
