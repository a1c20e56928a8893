package economy

import "fmt"

// EffectSpec is a multiplicative effect on every group's income and expenses.
type EffectSpec struct {
	IncomeFactor  float64 `json:"income_factor"`
	ExpenseFactor float64 `json:"expense_factor"`
	Description   string  `json:"description"`
}

// Crisis is a named economic shock.
type Crisis struct {
	ID string `json:"id"`
	EffectSpec
}

// Policy is a named government response the operator can choose.
type Policy struct {
	ID string `json:"id"`
	EffectSpec

	// Suggestion is the report's hindsight advice for cycles run under this policy.
	Suggestion string `json:"suggestion"`
}

// Crisis and policy identifiers.
const (
	CrisisHousing      = "housing_crisis"
	CrisisUnemployment = "high_unemployment"
	CrisisInflation    = "high_inflation"

	PolicyAusterity    = "austerity_measures"
	PolicyStimulus     = "economic_stimulus"
	PolicyLaborReforms = "labor_market_reforms"
	PolicyHousingAid   = "housing_subsidies"
	PolicyDoNothing    = "do_nothing"
)

// Tables are never modified after package init; accessors hand out copies.
var crisisTable = [...]Crisis{
	{ID: CrisisHousing, EffectSpec: EffectSpec{
		IncomeFactor: 1.0, ExpenseFactor: 1.3,
		Description: "Rapid increase in housing prices, making housing less affordable.",
	}},
	{ID: CrisisUnemployment, EffectSpec: EffectSpec{
		IncomeFactor: 0.8, ExpenseFactor: 1.0,
		Description: "High unemployment rates, especially among the youth, reducing household incomes.",
	}},
	{ID: CrisisInflation, EffectSpec: EffectSpec{
		IncomeFactor: 1.0, ExpenseFactor: 1.2,
		Description: "General increase in prices, reducing purchasing power.",
	}},
}

var policyTable = [...]Policy{
	{
		ID: PolicyAusterity,
		EffectSpec: EffectSpec{
			IncomeFactor: 0.92, ExpenseFactor: 1.0,
			Description: "Reduction in public spending to control the budget deficit.",
		},
		Suggestion: "Austerity reduced expenses but slowed economic recovery. **Economic Stimulus** could have helped create jobs faster.",
	},
	{
		ID: PolicyStimulus,
		EffectSpec: EffectSpec{
			IncomeFactor: 1.12, ExpenseFactor: 1.05,
			Description: "Increase in public spending to stimulate economic growth.",
		},
		Suggestion: "Public spending increased incomes but also raised expenses. A combination with **Austerity Measures** may have controlled inflation better.",
	},
	{
		ID: PolicyLaborReforms,
		EffectSpec: EffectSpec{
			IncomeFactor: 1.05, ExpenseFactor: 1.0,
			Description: "Changes in labor laws to encourage hiring and reduce unemployment.",
		},
		Suggestion: "Labor reforms improved employment but had little impact on inflation. **Targeted subsidies** could have balanced economic growth.",
	},
	{
		ID: PolicyHousingAid,
		EffectSpec: EffectSpec{
			IncomeFactor: 1.0, ExpenseFactor: 0.95,
			Description: "Financial aid to make housing more affordable.",
		},
		Suggestion: "Housing subsidies eased the cost of living but didn't boost employment. **Investing in the labor market** could have been a better alternative.",
	},
	{
		ID: PolicyDoNothing,
		EffectSpec: EffectSpec{
			IncomeFactor: 1.0, ExpenseFactor: 1.0,
			Description: "No government intervention; the economy follows its natural course.",
		},
		Suggestion: "No intervention led to worsening economic conditions. Future crises should be met with **proactive measures rather than inaction**.",
	},
}

// Crises returns the crisis catalog in declaration order.
func Crises() []Crisis {
	out := make([]Crisis, len(crisisTable))
	copy(out, crisisTable[:])
	return out
}

// Policies returns the policy catalog in declaration order.
func Policies() []Policy {
	out := make([]Policy, len(policyTable))
	copy(out, policyTable[:])
	return out
}

// CrisisByID looks up a crisis by identifier.
func CrisisByID(id string) (Crisis, bool) {
	for _, c := range crisisTable {
		if c.ID == id {
			return c, true
		}
	}
	return Crisis{}, false
}

// PolicyByID looks up a policy by identifier.
func PolicyByID(id string) (Policy, bool) {
	for _, p := range policyTable {
		if p.ID == id {
			return p, true
		}
	}
	return Policy{}, false
}

// PolicyByChoice resolves a 1-based menu choice against catalog.
func PolicyByChoice(catalog []Policy, n int) (Policy, error) {
	if n < 1 || n > len(catalog) {
		return Policy{}, fmt.Errorf("policy choice %d out of range 1-%d", n, len(catalog))
	}
	return catalog[n-1], nil
}
