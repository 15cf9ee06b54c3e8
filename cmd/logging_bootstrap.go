package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Digni/xidle/internal/config"
	"github.com/Digni/xidle/internal/logging"
	"github.com/spf13/cobra"
)

var queryLoadConfig = loadConfigForCommand

var commandLoggingBootstrap = func(cfg config.LoggingConfig, role logging.Role, warn io.Writer) error {
	logging.Bootstrap(cfg, role, warn)
	return nil
}

func initializeCommandLogging(errWriter io.Writer, cfg config.LoggingConfig, role logging.Role) {
	if err := commandLoggingBootstrap(cfg, role, errWriter); err != nil {
		fmt.Fprintf(errWriter, "warning: unable to initialize persistent logging for %s role: %v; continuing without file logging\n", role, err)
	}
}

func loadConfigForCommand() (config.LoadResult, error) {
	return config.LoadWithSource(config.ResolveOptions{EnvPath: os.Getenv(config.EnvConfigPath)})
}

func printConfigSourceDetails(cmd *cobra.Command, source config.SourceSelection) {
	fmt.Fprintf(cmd.ErrOrStderr(), "config source: %s (%s)\n", source.Type, source.Reason)
}
