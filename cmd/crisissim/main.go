// Command crisissim runs the interactive economic crisis simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/crisissim/internal/config"
)

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "crisissim",
	Short: "Turn-based economic crisis simulation",
	Long: `Steer Spain's economy through a series of random crises.

Each cycle a crisis hits every income group, you choose a policy response,
and six months of market drift play out before the outcome is judged.
When you stop, a report of every cycle is written to disk.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to YAML config (default crisissim.yaml or $CRISISSIM_CONFIG)")
	rootCmd.AddCommand(playCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads and validates configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Path(configFlag))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return cfg, nil
}
