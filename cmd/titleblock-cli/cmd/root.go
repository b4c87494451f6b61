package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"titleblock/internal/config"
	"titleblock/internal/logging"
	"titleblock/internal/wire"
)

var (
	configPath string
	simulate   string
	verbose    bool
	env        *wire.Env
)

var rootCmd = &cobra.Command{
	Use:   "titleblock-cli",
	Short: "Batch update AutoCAD title block attributes",
	Long: `titleblock-cli updates the title block attributes of every drawing in a
folder from a reference table built out of one sample drawing.

A typical session extracts a sample, maps its tags, then runs a folder:
  titleblock-cli extract Sample.dwg
  titleblock-cli map
  titleblock-cli run ./drawings --increment`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "assignments" {
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		logger, err := logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}

		env, err = wire.Open(cfg, logger)
		if err != nil {
			return err
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if env != nil {
		if cerr := env.Close(); cerr != nil {
			env.Logger.Warn("failed to close session", zap.Error(cerr))
		}
		_ = env.Logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default $"+config.EnvConfigPath+" or "+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&simulate, "simulate", "", "drive a simulated CAD application loaded from this fixture")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log debug output")
}

// GetEnv returns the initialized environment
func GetEnv() *wire.Env {
	return env
}

// connect opens the CAD connection selected by --simulate
func connect() (*wire.CAD, error) {
	return GetEnv().Connect(simulate)
}
