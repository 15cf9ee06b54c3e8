package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Digni/xidle/internal/idle"
	"github.com/Digni/xidle/internal/logging"
	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	openDisplay = idle.OpenX11
	queryIdle   = idle.Query
)

var rootCmd = &cobra.Command{
	Use:     "xidle",
	Short:   "Print X11 idle time in milliseconds",
	Version: Version,
	Long: `xidle asks the X server's MIT-SCREEN-SAVER extension how long it has been
since the last keyboard or pointer input and prints that number of
milliseconds on a single line.

The display comes from $DISPLAY. Arguments are ignored.

Exit status is 0 on success and 1 when the display can not be opened or
the query fails.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE:               runQuery,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func runQuery(cmd *cobra.Command, _ []string) error {
	loadResult, err := queryLoadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using default config\n", err)
	}
	initializeCommandLogging(cmd.ErrOrStderr(), loadResult.Config.Logging, logging.RoleQuery)

	logger := slog.With("op_id", logging.NewOperationID())
	logger.Debug("config selected", "config_source", string(loadResult.Source.Type), "config_path", loadResult.Source.Path)

	idleTime, err := queryIdle(openDisplay, "")
	if err != nil {
		logger.Error("xidle failed", "error", err)
		return newDiagnosticError(err)
	}

	ms := idleTime.Milliseconds()
	fmt.Fprintf(cmd.OutOrStdout(), "%d\n", ms)
	logger.Info("idle time reported", "idle_ms", ms)
	return nil
}

// diagnosticError carries the fixed one-line message shown to the user.
// The underlying cause only goes to the log.
type diagnosticError struct {
	message string
	err     error
}

func (e *diagnosticError) Error() string {
	return e.message
}

func (e *diagnosticError) Unwrap() error {
	return e.err
}

func newDiagnosticError(err error) error {
	switch {
	case errors.Is(err, idle.ErrOpenDisplay):
		return &diagnosticError{message: "Unable to open X display", err: err}
	case errors.Is(err, idle.ErrAllocInfo):
		return &diagnosticError{message: "Unable to allocate XScreenSaverInfo", err: err}
	default:
		return &diagnosticError{message: "XScreenSaverQueryInfo failed", err: err}
	}
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
