package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dshills/electrabase/internal/config"
	"github.com/dshills/electrabase/internal/logging"
	"github.com/dshills/electrabase/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// app carries state shared by all subcommands
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg     *config.Configuration
	restore func()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "electrabase",
		Short:         "Electronic component inventory backed by SQLite",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.restore != nil {
				a.restore()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "config.json", "Path to the configuration file (JSON, YAML or TOML)")
	flags.StringVar(&a.dbPath, "db", "", "SQLite database path (overrides database.path)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log.level)")

	root.AddCommand(
		newServeCommand(a),
		newCategoriesCommand(a),
		newListCommand(a),
		newLowStockCommand(a),
		newSearchCommand(a),
		newSeedCommand(a),
		newVersionCommand(),
	)
	return root
}

// setup loads configuration and installs the global logger
func (a *app) setup(cmd *cobra.Command) error {
	v := viper.New()
	if cmd.Flags().Changed("db") {
		v.Set("database.path", a.dbPath)
	}
	if cmd.Flags().Changed("log-level") {
		v.Set("log.level", a.logLevel)
	}

	cfg, err := config.Load(v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	restore, err := logging.Install(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.restore = restore

	zap.S().Debugw("configuration loaded",
		"config", a.configPath,
		"database", cfg.Database.Path,
		"build_mode", storage.BuildMode,
		"driver", storage.DriverName,
	)
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		// No configuration or logger needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Electrabase\n")
			fmt.Fprintf(out, "Version: %s\n", version)
			fmt.Fprintf(out, "Build Time: %s\n", buildTime)
			fmt.Fprintf(out, "Build Mode: %s\n", storage.BuildMode)
			fmt.Fprintf(out, "SQLite Driver: %s\n", storage.DriverName)
		},
	}
}
