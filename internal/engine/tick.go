package engine

import (
	"github.com/talgya/crisissim/internal/economy"
	"github.com/talgya/crisissim/internal/entropy"
)

// DefaultPeriods is the number of months simulated per cycle.
const DefaultPeriods = 6

// DriftBounds are the ranges of the monthly multipliers.
type DriftBounds struct {
	IncomeLo, IncomeHi   float64
	ExpenseLo, ExpenseHi float64
}

// DefaultDrift returns the standard monthly noise: income in [0.98, 1.03], expenses in [0.97, 1.02].
func DefaultDrift() DriftBounds {
	return DriftBounds{
		IncomeLo: 0.98, IncomeHi: 1.03,
		ExpenseLo: 0.97, ExpenseHi: 1.02,
	}
}

// Observer receives the population after each simulated month.
type Observer func(month int, pop economy.Population)

// Simulate advances the population by periods months using DefaultDrift.
func Simulate(pop *economy.Population, src entropy.Source, periods int, observe Observer) {
	SimulateBounds(pop, src, DefaultDrift(), periods, observe)
}

// SimulateBounds advances the population month by month. Each group draws an
// income multiplier then an expense multiplier, and the averages are truncated
// every month, so rounding loss compounds over the cycle.
func SimulateBounds(pop *economy.Population, src entropy.Source, b DriftBounds, periods int, observe Observer) {
	for month := 1; month <= periods; month++ {
		for g := range pop {
			im := src.Uniform(b.IncomeLo, b.IncomeHi)
			em := src.Uniform(b.ExpenseLo, b.ExpenseHi)
			pop[g].AvgIncome = scale(pop[g].AvgIncome, im)
			pop[g].AvgExpenses = scale(pop[g].AvgExpenses, em)
		}
		if observe != nil {
			observe(month, *pop)
		}
	}
}
