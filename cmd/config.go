package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Digni/xidle/internal/config"
	"github.com/Digni/xidle/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configInit       = config.Init
	configLoadConfig = loadConfigForCommand
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage logging configuration",
	Long: `xidle reads an optional YAML file that only controls its own logging.
The file is taken from $XIDLE_CONFIG when set, otherwise from the user
config directory (for example ~/.config/xidle/config.yaml).`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configInit()
		if err != nil {
			return err
		}

		initializeCommandLogging(cmd.ErrOrStderr(), config.DefaultConfig().Logging, logging.RoleConfig)
		slog.Info("config created", "config_path", path)

		fmt.Fprintf(cmd.OutOrStdout(), "Config created at %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := config.ResolveConfigSource(config.ResolveOptions{EnvPath: os.Getenv(config.EnvConfigPath)})
		if err != nil {
			return err
		}

		path := source.Path
		if path == "" {
			path, err = config.ConfigPath()
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		printConfigSourceDetails(cmd, source)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadResult, err := configLoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		printConfigSourceDetails(cmd, loadResult.Source)

		data, err := config.Marshal(loadResult.Config)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
