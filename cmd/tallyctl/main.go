// Command tallyctl runs one-shot capture jobs and issues owner tokens.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tally/internal/logger"
)

// errNothingCaptured makes the process exit with status 2 so schedulers can
// tell a total outage from a partial run.
var errNothingCaptured = errors.New("nothing was captured")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tallyctl",
		Short:         "Operate a tally deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCaptureCmd(), newTokenCmd())
	return root
}

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tallyctl:", err)
		logger.Sync()
		if errors.Is(err, errNothingCaptured) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
