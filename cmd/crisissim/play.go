package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/crisissim/internal/config"
	"github.com/talgya/crisissim/internal/console"
	"github.com/talgya/crisissim/internal/economy"
	"github.com/talgya/crisissim/internal/engine"
	"github.com/talgya/crisissim/internal/entropy"
	"github.com/talgya/crisissim/internal/persistence"
	"github.com/talgya/crisissim/internal/report"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the interactive simulation (default)",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := entropy.New(cfg.Random.Source, cfg.Random.Seed)
	if err != nil {
		return err
	}
	seed := cfg.Random.Seed
	if s, ok := src.(interface{ Seed() int64 }); ok {
		seed = s.Seed()
	}
	slog.Info("crisissim starting",
		"population", cfg.Population.Total,
		"random_source", cfg.Random.Source,
		"seed", seed,
		"apply_policy_effects", cfg.Policy.ApplyEffects,
	)

	// ── Run history ───────────────────────────────────────────────────
	recorder, closeDB := openRecorder(cfg, seed)
	defer closeDB()

	// ── Simulation ────────────────────────────────────────────────────
	out := cmd.OutOrStdout()
	display := console.NewDisplay(out)

	sim, err := engine.NewSimulation(
		economy.NewPopulation(cfg.Population.Total, economy.DefaultProfile()),
		engine.Deps{
			Source:   src,
			Operator: console.NewOperator(cmd.InOrStdin(), out),
			Display:  display,
			Effect:   engine.NewPolicyEffect(cfg.Policy.ApplyEffects),
			Recorder: recorder,
			Periods:  cfg.Simulation.PeriodsPerCycle,
		},
	)
	if err != nil {
		return err
	}

	runErr := sim.Run(ctx)
	history := sim.History()
	if runErr != nil {
		slog.Warn("simulation stopped early", "error", runErr, "cycles", history.Len())
		if history.Len() == 0 {
			return runErr
		}
	}

	// ── Report ────────────────────────────────────────────────────────
	if err := report.WriteFile(cfg.Report.Path, history.Records(), history.PeriodsPerCycle()); err != nil {
		slog.Error("failed to save report", "path", cfg.Report.Path, "cycles", history.Len(), "error", err)
		return err
	}
	display.Saved(cfg.Report.Path)
	display.Ended()

	if errors.Is(runErr, io.ErrUnexpectedEOF) {
		// Input ran out; the report still covers every finished cycle.
		return nil
	}
	return runErr
}

// openRecorder opens the run database when configured. Failures only disable history.
func openRecorder(cfg *config.Config, seed int64) (engine.Recorder, func()) {
	noop := func() {}
	if cfg.Database.Path == "" {
		return engine.NoopRecorder{}, noop
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Warn("run history disabled", "error", err)
			return engine.NoopRecorder{}, noop
		}
	}

	db, err := persistence.Open(cfg.Database.Path)
	if err != nil {
		slog.Warn("run history disabled", "path", cfg.Database.Path, "error", err)
		return engine.NoopRecorder{}, noop
	}

	run, err := db.CreateRun(seed, cfg.Random.Source, cfg.Population.Total, cfg.Simulation.PeriodsPerCycle)
	if err != nil {
		db.Close()
		slog.Warn("run history disabled", "error", fmt.Errorf("create run: %w", err))
		return engine.NoopRecorder{}, noop
	}
	slog.Info("recording run", "run_id", run.ID, "path", cfg.Database.Path)

	return persistence.RunRecorder{DB: db, RunID: run.ID}, func() { db.Close() }
}
