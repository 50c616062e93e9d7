// Package config loads logger settings from a YAML file and ALOGGER_*
// environment variables and turns them into a configured *alogger.Logger.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trickstertwo/alogger"
	"github.com/trickstertwo/alogger/adapter/console"
	"github.com/trickstertwo/alogger/adapter/file"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ALOGGER_"

var ErrInvalidSettings = errors.New("config: invalid settings")

// FileSettings enables the rotating file adapter when Dir is set.
type FileSettings struct {
	Dir      string `yaml:"dir" env:"DIR"`
	Prefix   string `yaml:"prefix" env:"PREFIX"`
	MaxSize  int64  `yaml:"max_size" env:"MAX_SIZE"`
	MaxFiles int    `yaml:"max_files" env:"MAX_FILES"`
}

type Settings struct {
	Tag          string        `yaml:"tag" env:"TAG"`
	Level        alogger.Level `yaml:"level" env:"LEVEL"`
	Format       string        `yaml:"format" env:"FORMAT"`
	HistoryLimit int           `yaml:"history_limit" env:"HISTORY_LIMIT"`
	Console      bool          `yaml:"console" env:"CONSOLE"`
	NoColor      bool          `yaml:"no_color" env:"NO_COLOR"`
	File         FileSettings  `yaml:"file" envPrefix:"FILE_"`
}

// Defaults mirrors alogger.Default: tag "Alogger", DEBUG, pretty, console on.
func Defaults() Settings {
	return Settings{
		Tag:          alogger.DefaultTag,
		Level:        alogger.LevelDebug,
		Format:       "pretty",
		HistoryLimit: alogger.DefaultHistoryLimit,
		Console:      true,
		File: FileSettings{
			Prefix:   file.DefaultPrefix,
			MaxSize:  file.DefaultMaxFileSize,
			MaxFiles: file.DefaultMaxFiles,
		},
	}
}

// Load starts from Defaults, applies the YAML file at path (if non-empty) and
// then the environment. Environment values win.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, errors.Wrapf(err, "config: read %s", path)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, errors.Wrapf(err, "config: parse %s", path)
		}
	}
	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return s, errors.Wrap(err, "config: environment")
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	if _, err := alogger.ParseFormatter(s.Format); err != nil {
		return err
	}
	if s.HistoryLimit < 0 {
		return errors.Wrapf(ErrInvalidSettings, "history_limit %d", s.HistoryLimit)
	}
	if s.File.MaxSize < 0 || s.File.MaxFiles < 0 {
		return errors.Wrapf(ErrInvalidSettings, "file limits %d/%d", s.File.MaxSize, s.File.MaxFiles)
	}
	return nil
}

// Adapters builds the console and file adapters the settings ask for.
func (s Settings) Adapters() ([]alogger.Adapter, error) {
	var out []alogger.Adapter
	if s.Console {
		out = append(out, console.New(console.Options{NoColor: s.NoColor}))
	}
	if s.File.Dir != "" {
		fa, err := file.New(file.Options{
			Dir:         s.File.Dir,
			Prefix:      s.File.Prefix,
			MaxFileSize: s.File.MaxSize,
			MaxFiles:    s.File.MaxFiles,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, fa)
	}
	return out, nil
}

// Build returns a Logger for the settings; extra options are applied last.
func (s Settings) Build(extra ...alogger.Option) (*alogger.Logger, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	formatter, err := alogger.ParseFormatter(s.Format)
	if err != nil {
		return nil, err
	}
	adapters, err := s.Adapters()
	if err != nil {
		return nil, err
	}

	opts := []alogger.Option{
		alogger.WithTag(s.Tag),
		alogger.WithMinLevel(s.Level),
		alogger.WithFormatter(formatter),
		alogger.WithHistoryLimit(s.HistoryLimit),
		alogger.WithoutDefaultAdapter(),
		alogger.WithAdapters(adapters...),
	}
	return alogger.New(append(opts, extra...)...)
}

// Init builds the Logger and installs it as the shared instance.
func (s Settings) Init(extra ...alogger.Option) (*alogger.Logger, error) {
	l, err := s.Build(extra...)
	if err != nil {
		return nil, err
	}
	alogger.SetGlobal(l)
	return l, nil
}
