package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	internalcmd "github.com/trickstertwo/alogger/internal/cmd"
	"github.com/trickstertwo/alogger/internal/info"
)

var (
	// Version is injected at build time.
	Version = info.Version
	// BuildDate is injected at build time.
	BuildDate = info.BuildDate

	appName      = info.AppName
	versionShort = "Display the " + appName + " version"
)

const (
	appShort = "alogger writes tagged, leveled lines to the console and rotating files"

	versionCmdName = "version"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	cmd.AddCommand(
		internalcmd.EmitCmd(),
		internalcmd.FilesCmd(),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: heredoc.Doc(versionShort),

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString(Version, BuildDate, runtime.Version()))
		},
	}
}

// versionString renders "<version> (<date>), Go Version: <runtime>".
func versionString(version, buildDate, runtimeVersion string) string {
	out := version
	if buildDate != "" {
		out += " (" + buildDate + ")"
	}

	return out + ", Go Version: " + runtimeVersion
}
