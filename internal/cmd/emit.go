package cmd

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/trickstertwo/alogger"
	"github.com/trickstertwo/alogger/adapter/console"
	"github.com/trickstertwo/alogger/config"
)

const (
	emitCmdUse   = "emit [message...]"
	emitCmdShort = "write a message through a configured logger"
	emitCmdLong  = `Build a logger from the configuration file, the ALOGGER_* environment
	variables and the command line flags, then write the message at the
	requested level.

	Console output goes to stderr. When a directory is set the message is
	also appended to the rotating log files in it.`

	emitCmdExample = `# Print an INFO line on the console
	alogger emit --level info "service ready"

	# Write 500 lines into ./logs, rotating every 4 KiB
	ALOGGER_FILE_MAX_SIZE=4096 alogger emit --dir ./logs --count 500 tick`

	levelFlagName   = "level"
	levelFlagShort  = "l"
	tagFlagName     = "tag"
	tagFlagShort    = "t"
	configFlagName  = "config"
	configFlagShort = "c"
	configFlagUsage = "path to a YAML configuration file"
	dirFlagName     = "dir"
	dirFlagShort    = "d"
	dirFlagUsage    = "directory for rotating log files; empty disables the file sink"
	formatFlagName  = "format"
	formatFlagShort = "f"
	formatFlagUsage = "line format (pretty, compact)"
	countFlagName   = "count"
	countFlagShort  = "n"
	countFlagUsage  = "number of times the message is written"
	noColorFlagName = "no-color"

	defaultMessage = "hello from alogger"
)

type emitFlags struct {
	level      string
	tag        string
	configPath string
	dir        string
	format     string
	count      int
	noColor    bool
}

func (f *emitFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.level, levelFlagName, levelFlagShort, "info", "level of the message ("+levelNames()+")")
	flags.StringVarP(&f.tag, tagFlagName, tagFlagShort, "", "tag attached to every line")
	flags.StringVarP(&f.configPath, configFlagName, configFlagShort, "", configFlagUsage)
	flags.StringVarP(&f.dir, dirFlagName, dirFlagShort, "", dirFlagUsage)
	flags.StringVarP(&f.format, formatFlagName, formatFlagShort, "", formatFlagUsage)
	flags.IntVarP(&f.count, countFlagName, countFlagShort, 1, countFlagUsage)
	flags.BoolVar(&f.noColor, noColorFlagName, false, "disable console colors")
}

type emitOptions struct {
	settings config.Settings
	level    alogger.Level
	message  string
	count    int
}

// toOptions merges the loaded settings with the flags the user set explicitly.
func (f *emitFlags) toOptions(cmd *cobra.Command, args []string) (*emitOptions, error) {
	level, err := alogger.ParseLevel(f.level)
	if err != nil {
		return nil, err
	}
	if f.count < 1 {
		return nil, errors.Wrapf(errInvalidCount, "got %d", f.count)
	}

	settings, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed(tagFlagName) {
		settings.Tag = f.tag
	}
	if flags.Changed(dirFlagName) {
		settings.File.Dir = f.dir
	}
	if flags.Changed(formatFlagName) {
		settings.Format = f.format
	}
	if flags.Changed(noColorFlagName) {
		settings.NoColor = f.noColor
	}

	message := strings.Join(args, " ")
	if message == "" {
		message = defaultMessage
	}

	return &emitOptions{
		settings: settings,
		level:    level,
		message:  message,
		count:    f.count,
	}, nil
}

func (o *emitOptions) run(cmd *cobra.Command) (err error) {
	settings := o.settings
	var extra []alogger.Option
	if settings.Console {
		// route the console through cobra so tests and callers can capture it
		settings.Console = false
		extra = append(extra, alogger.WithAdapters(console.New(console.Options{
			Out:     cmd.ErrOrStderr(),
			NoColor: settings.NoColor,
		})))
	}

	l, err := settings.Build(extra...)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, l.Close()) }()

	message := o.message
	for range o.count {
		l.Log(o.level, func() string { return message }, nil)
	}
	return nil
}

// EmitCmd returns the command that writes messages through a configured logger.
func EmitCmd() *cobra.Command {
	flags := &emitFlags{}
	cmd := &cobra.Command{
		Use:     emitCmdUse,
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}
			if err := opts.run(cmd); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
