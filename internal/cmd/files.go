package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/trickstertwo/alogger/adapter/file"
)

const (
	filesCmdShort = "list the rotated log files of a directory"
	filesCmdLong  = `List the log files written by the file sink, newest first.
	Only names matching <prefix>_<date>[.<seq>].log are shown.`

	filesCmdExample = `alogger files --dir ./logs --prefix app`

	prefixFlagName  = "prefix"
	prefixFlagShort = "p"
)

type filesFlags struct {
	dir    string
	prefix string
}

func (f *filesFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.dir, dirFlagName, dirFlagShort, ".", "directory holding the log files")
	flags.StringVarP(&f.prefix, prefixFlagName, prefixFlagShort, file.DefaultPrefix, "file name prefix")
}

// FilesCmd returns the command that lists rotated log files.
func FilesCmd() *cobra.Command {
	flags := &filesFlags{}
	cmd := &cobra.Command{
		Use:     "files",
		Short:   heredoc.Doc(filesCmdShort),
		Long:    heredoc.Doc(filesCmdLong),
		Example: heredoc.Doc(filesCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := file.List(nil, flags.dir, flags.prefix)
			if err != nil {
				return handleError(cmd, err)
			}
			out := cmd.OutOrStdout()
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
