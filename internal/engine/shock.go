// Package engine runs the crisis cycle: shock, policy, drift, evaluation and history.
package engine

import (
	"github.com/talgya/crisissim/internal/economy"
	"github.com/talgya/crisissim/internal/entropy"
)

// scale multiplies an average by a factor and truncates toward zero.
// Truncation, not rounding, is what every shock and drift step uses.
func scale(v int64, factor float64) int64 {
	return int64(float64(v) * factor)
}

// ApplyEffect multiplies every group's income and expenses by the effect's factors.
func ApplyEffect(pop *economy.Population, eff economy.EffectSpec) {
	for g := range pop {
		pop[g].AvgIncome = scale(pop[g].AvgIncome, eff.IncomeFactor)
		pop[g].AvgExpenses = scale(pop[g].AvgExpenses, eff.ExpenseFactor)
	}
}

// ApplyCrisis picks a crisis uniformly at random and applies it to every group.
func ApplyCrisis(pop *economy.Population, src entropy.Source) economy.Crisis {
	crises := economy.Crises()
	c := crises[src.Intn(len(crises))]
	ApplyEffect(pop, c.EffectSpec)
	return c
}
