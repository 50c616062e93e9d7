package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trickstertwo/alogger"
)

var errInvalidCount = errors.New("count must be at least 1")

// handleError prints err on the command's error stream and returns it so the
// process exits non-zero. Flag parsing problems also print the usage.
func handleError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err)
	if errors.Is(err, alogger.ErrUnknownLevel) ||
		errors.Is(err, alogger.ErrUnknownFormat) ||
		errors.Is(err, errInvalidCount) {
		_ = cmd.Usage()
	}
	return err
}

func levelNames() string {
	names := make([]string, 0, len(alogger.Levels))
	for _, l := range alogger.Levels {
		names = append(names, strings.ToLower(l.String()))
	}
	return strings.Join(names, ", ")
}
