package main

import (
	"github.com/spf13/cobra"

	"github.com/erazemk/camorent/internal/config"
)

// overrides are command-line values that take precedence over the environment.
type overrides struct {
	dbPath  string
	addr    string
	logPath string
}

func newRootCommand() *cobra.Command {
	var flags overrides

	rootCmd := &cobra.Command{
		Use:           "camorent",
		Short:         "Camera rental inventory backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.dbPath, "db", "d", "", "SQLite database path (default $CAMORENT_DB or camorent.db)")
	rootCmd.PersistentFlags().StringVarP(&flags.logPath, "log", "l", "", "log file path (default $CAMORENT_LOG, stdout/stderr only)")

	rootCmd.AddCommand(newServeCommand(&flags))
	rootCmd.AddCommand(newCheckCommand(&flags))

	return rootCmd
}

// loadConfig reads the environment and applies flags that were set.
func loadConfig(cmd *cobra.Command, flags *overrides) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = flags.addr
	}
	if cmd.Flags().Changed("log") {
		cfg.LogPath = flags.logPath
	}
	return cfg, cfg.Validate()
}
