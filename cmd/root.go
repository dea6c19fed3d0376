package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitTypos   = 2
)

// exitError carries a non-zero exit status out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var rootOpts checkOptions

var rootCmd = &cobra.Command{
	Use:   "typocheck [paths...]",
	Short: "typocheck - Find misspelled words and identifiers in source code",
	Long: `Check files for commonly misspelled words and identifiers.

Paths default to the current directory; "-" reads standard input.
Exits with status 2 when typos are found and 1 on errors.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		SetupLogging("warn")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, &rootOpts, args)
	},
}

func init() {
	addCheckFlags(rootCmd, &rootOpts)
}

func SetVersion(v string) {
	rootCmd.Version = v
}

func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(exitFailure)
}
