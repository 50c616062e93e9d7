package alogger

import "github.com/trickstertwo/xclock"

// DefaultTag is used when no tag is configured.
const DefaultTag = "Alogger"

// Config for constructing a Logger (Factory data structure).
type Config struct {
	Tag          string
	MinLevel     Level
	Formatter    Formatter
	Adapters     []Adapter
	HistoryLimit int
	ErrorHandler ErrorHandler
	Clock        xclock.Clock // optional; handed to a PrettyFormatter without its own clock

	// DefaultAdapter prepends the registered default (console) adapter.
	DefaultAdapter bool
}

// Option mutates a Config; used by New and Init.
type Option func(*Config)

func WithTag(tag string) Option              { return func(c *Config) { c.Tag = tag } }
func WithMinLevel(l Level) Option            { return func(c *Config) { c.MinLevel = l } }
func WithFormatter(f Formatter) Option       { return func(c *Config) { c.Formatter = f } }
func WithHistoryLimit(n int) Option          { return func(c *Config) { c.HistoryLimit = n } }
func WithErrorHandler(h ErrorHandler) Option { return func(c *Config) { c.ErrorHandler = h } }
func WithClock(clk xclock.Clock) Option      { return func(c *Config) { c.Clock = clk } }
func WithoutDefaultAdapter() Option          { return func(c *Config) { c.DefaultAdapter = false } }

func WithAdapters(as ...Adapter) Option {
	return func(c *Config) { c.Adapters = append(c.Adapters, as...) }
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

// NewBuilder starts from tag "Alogger", DEBUG, PrettyFormatter and no adapters.
func NewBuilder() *Builder {
	return &Builder{cfg: Config{
		Tag:          DefaultTag,
		MinLevel:     LevelDebug,
		Formatter:    PrettyFormatter{},
		HistoryLimit: DefaultHistoryLimit,
	}}
}

func (b *Builder) WithTag(tag string) *Builder {
	b.cfg.Tag = tag
	return b
}

func (b *Builder) WithMinLevel(l Level) *Builder {
	b.cfg.MinLevel = l
	return b
}

func (b *Builder) WithFormatter(f Formatter) *Builder {
	b.cfg.Formatter = f
	return b
}

func (b *Builder) WithHistoryLimit(n int) *Builder {
	b.cfg.HistoryLimit = n
	return b
}

func (b *Builder) WithErrorHandler(h ErrorHandler) *Builder {
	b.cfg.ErrorHandler = h
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithDefaultAdapter() *Builder {
	b.cfg.DefaultAdapter = true
	return b
}

func (b *Builder) AddAdapter(a Adapter) *Builder {
	b.cfg.Adapters = append(b.cfg.Adapters, a)
	return b
}

// Apply runs functional options against the builder's Config.
func (b *Builder) Apply(opts ...Option) *Builder {
	for _, o := range opts {
		if o != nil {
			o(&b.cfg)
		}
	}
	return b
}

// Build constructs the Logger (Factory + Builder).
func (b *Builder) Build() (*Logger, error) {
	if b.cfg.Formatter == nil {
		return nil, ErrNoFormatter
	}
	cfg := b.cfg
	if cfg.Tag == "" {
		cfg.Tag = DefaultTag
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}
	if pf, ok := cfg.Formatter.(PrettyFormatter); ok && pf.Clock == nil && cfg.Clock != nil {
		pf.Clock = cfg.Clock
		cfg.Formatter = pf
	}

	adapters := make([]Adapter, 0, len(cfg.Adapters)+1)
	if cfg.DefaultAdapter {
		adapters = append(adapters, defaultAdapter())
	}
	for _, a := range cfg.Adapters {
		if a != nil {
			adapters = append(adapters, a)
		}
	}
	cfg.Adapters = adapters
	return newLogger(cfg), nil
}

// New builds a Logger like Default() and applies opts on top.
func New(opts ...Option) (*Logger, error) {
	return NewBuilder().WithDefaultAdapter().Apply(opts...).Build()
}
