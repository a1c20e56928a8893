package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talgya/crisissim/internal/economy"
)

// PolicyChooser asks the operator which policy answers the current crisis.
// Implementations own input validation and retry; they only return a valid policy or an error.
type PolicyChooser interface {
	ChoosePolicy(ctx context.Context, catalog []economy.Policy) (economy.Policy, error)
}

// PolicyEffect is the step that runs after a policy is chosen and before drift.
type PolicyEffect interface {
	Apply(pop *economy.Population, p economy.Policy)
}

// RecordOnly leaves the population untouched; the chosen policy is only recorded.
// This is the default and matches the classic game, where policy factors
// never reach the economy.
type RecordOnly struct{}

func (RecordOnly) Apply(*economy.Population, economy.Policy) {}

// Multiplier applies the policy's income and expense factors like a crisis.
type Multiplier struct{}

func (Multiplier) Apply(pop *economy.Population, p economy.Policy) {
	ApplyEffect(pop, p.EffectSpec)
	slog.Debug("policy effect applied",
		"policy", p.ID,
		"income_factor", p.IncomeFactor,
		"expense_factor", p.ExpenseFactor,
	)
}

// NewPolicyEffect returns Multiplier when effects are enabled, RecordOnly otherwise.
func NewPolicyEffect(applyEffects bool) PolicyEffect {
	if applyEffects {
		return Multiplier{}
	}
	return RecordOnly{}
}

// choosePolicy calls the chooser and rejects anything outside the catalog.
func choosePolicy(ctx context.Context, c PolicyChooser) (economy.Policy, error) {
	p, err := c.ChoosePolicy(ctx, economy.Policies())
	if err != nil {
		return economy.Policy{}, fmt.Errorf("choose policy: %w", err)
	}
	if _, ok := economy.PolicyByID(p.ID); !ok {
		return economy.Policy{}, fmt.Errorf("choose policy: unknown policy %q", p.ID)
	}
	return p, nil
}
