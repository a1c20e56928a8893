package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/crisissim/internal/economy"
	"github.com/talgya/crisissim/internal/entropy"
)

// Phase is the state of the simulation loop.
type Phase uint8

const (
	PhaseAwaitCycle    Phase = iota // Ready to run the next cycle
	PhaseRunningCycle               // Shock, policy, drift and evaluation in progress
	PhaseAwaitContinue              // Cycle recorded, waiting for the operator
	PhaseDone                       // Operator stopped; history is final
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitCycle:
		return "await_cycle"
	case PhaseRunningCycle:
		return "running_cycle"
	case PhaseAwaitContinue:
		return "await_continue"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Operator is the person steering the simulation.
type Operator interface {
	PolicyChooser
	// Continue reports whether another cycle should run.
	Continue(ctx context.Context) (bool, error)
}

// Display receives progress for presentation. It never affects the simulation.
type Display interface {
	Population(month int, pop economy.Population)
	Crisis(c economy.Crisis)
	Outcome(o Outcome)
}

// NopDisplay discards all output.
type NopDisplay struct{}

func (NopDisplay) Population(int, economy.Population) {}
func (NopDisplay) Crisis(economy.Crisis)              {}
func (NopDisplay) Outcome(Outcome)                    {}

// Deps wires the simulation's collaborators. Only Operator is required.
type Deps struct {
	Source   entropy.Source
	Operator Operator
	Display  Display
	Effect   PolicyEffect
	Recorder Recorder
	Drift    *DriftBounds
	Periods  int // Months per cycle (default 6)
}

// Simulation owns the population and history and runs cycles until the operator stops.
type Simulation struct {
	Population economy.Population

	deps    Deps
	drift   DriftBounds
	phase   Phase
	history *History
}

// NewSimulation creates a simulation over pop. Missing optional deps get defaults.
func NewSimulation(pop economy.Population, deps Deps) (*Simulation, error) {
	if deps.Operator == nil {
		return nil, errors.New("simulation requires an operator")
	}
	if deps.Source == nil {
		deps.Source = entropy.NewMathSource(0)
	}
	if deps.Display == nil {
		deps.Display = NopDisplay{}
	}
	if deps.Effect == nil {
		deps.Effect = RecordOnly{}
	}
	if deps.Recorder == nil {
		deps.Recorder = NoopRecorder{}
	}
	if deps.Periods <= 0 {
		deps.Periods = DefaultPeriods
	}
	drift := DefaultDrift()
	if deps.Drift != nil {
		drift = *deps.Drift
	}

	return &Simulation{
		Population: pop,
		deps:       deps,
		drift:      drift,
		phase:      PhaseAwaitCycle,
		history:    NewHistory(deps.Periods),
	}, nil
}

// Phase returns the current loop state.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// History returns the cycles recorded so far. It stays valid after Run fails.
func (s *Simulation) History() *History {
	return s.history
}

// Run loops cycle → continue prompt until the operator says no.
// On error the history gathered so far is kept.
func (s *Simulation) Run(ctx context.Context) error {
	slog.Info("simulation started",
		"population", s.Population.TotalCount(),
		"periods_per_cycle", s.deps.Periods,
	)

	for s.phase != PhaseDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch s.phase {
		case PhaseAwaitCycle:
			if _, err := s.Step(ctx); err != nil {
				return err
			}
		case PhaseAwaitContinue:
			more, err := s.deps.Operator.Continue(ctx)
			if err != nil {
				return fmt.Errorf("continue prompt: %w", err)
			}
			if more {
				s.phase = PhaseAwaitCycle
			} else {
				s.phase = PhaseDone
			}
		default:
			return fmt.Errorf("simulation in unexpected phase %s", s.phase)
		}
	}

	slog.Info("simulation ended",
		"cycles", s.history.Len(),
		"total_months", s.history.TotalMonths(),
	)
	return nil
}

// Step runs exactly one cycle and leaves the simulation waiting for the operator.
func (s *Simulation) Step(ctx context.Context) (CycleRecord, error) {
	if s.phase != PhaseAwaitCycle {
		return CycleRecord{}, fmt.Errorf("cannot start a cycle in phase %s", s.phase)
	}
	s.phase = PhaseRunningCycle

	rec, err := s.runCycle(ctx)
	if err != nil {
		s.phase = PhaseDone
		return CycleRecord{}, err
	}

	s.phase = PhaseAwaitContinue
	return rec, nil
}

func (s *Simulation) runCycle(ctx context.Context) (CycleRecord, error) {
	d := s.deps
	d.Display.Population(0, s.Population)

	crisis := ApplyCrisis(&s.Population, d.Source)
	d.Display.Crisis(crisis)

	policy, err := choosePolicy(ctx, d.Operator)
	if err != nil {
		return CycleRecord{}, err
	}
	d.Effect.Apply(&s.Population, policy)

	initial := s.Population
	SimulateBounds(&s.Population, d.Source, s.drift, d.Periods, d.Display.Population)

	outcome, err := Evaluate(initial, s.Population)
	if err != nil {
		return CycleRecord{}, fmt.Errorf("evaluate cycle %d: %w", s.history.Len()+1, err)
	}
	d.Display.Outcome(outcome)

	rec := s.history.Record(crisis.ID, policy.ID, outcome)
	seq := s.history.Len()

	if err := d.Recorder.RecordCycle(seq, rec); err != nil {
		slog.Warn("failed to persist cycle", "cycle", seq, "error", err)
	}

	slog.Info("cycle complete",
		"cycle", seq,
		"crisis", crisis.ID,
		"policy", policy.ID,
		"months_passed", rec.MonthsPassed,
		"classification", outcome.Classification,
		"mean_income_change", fmt.Sprintf("%.2f", outcome.MeanIncomeChange),
	)
	return rec, nil
}
