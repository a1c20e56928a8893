package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/crisissim/internal/economy"
)

// ErrZeroBaseline is returned when a starting average is zero and a percentage change is undefined.
var ErrZeroBaseline = errors.New("zero baseline average")

// Classification is the verdict on one cycle.
type Classification uint8

const (
	Unstable  Classification = iota // Mean income change within ±5%
	Improved                        // Mean income change above +5%
	Collapsed                       // Mean income change below -5%
)

// Classification thresholds, in percent of mean income change.
const (
	ImprovedThreshold  = 5.0
	CollapsedThreshold = -5.0
)

var classificationNames = map[Classification]string{
	Unstable:  "unstable",
	Improved:  "improved",
	Collapsed: "collapsed",
}

var classificationHeadlines = map[Classification]string{
	Unstable:  "The economy remains unstable but has not collapsed.",
	Improved:  "The economy has stabilized and improved.",
	Collapsed: "The economy has collapsed into a recession.",
}

func (c Classification) String() string {
	if s, ok := classificationNames[c]; ok {
		return s
	}
	return fmt.Sprintf("classification(%d)", uint8(c))
}

// Headline is the sentence shown to the operator and written to the report.
func (c Classification) Headline() string {
	return classificationHeadlines[c]
}

// ParseClassification maps a name such as "improved" back to its value.
func ParseClassification(s string) (Classification, error) {
	for c, name := range classificationNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown classification %q", s)
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Classification) UnmarshalText(b []byte) error {
	v, err := ParseClassification(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// GroupChange is the percentage change of one group over a cycle.
type GroupChange struct {
	IncomeChangePct  float64 `json:"income_change"`
	ExpenseChangePct float64 `json:"expense_change"`
}

// Outcome is the evaluation of one cycle.
type Outcome struct {
	Classification   Classification
	MeanIncomeChange float64
	Changes          [economy.NumGroups]GroupChange
}

// Classify maps a mean income change to a classification.
func Classify(meanIncomeChange float64) Classification {
	switch {
	case meanIncomeChange > ImprovedThreshold:
		return Improved
	case meanIncomeChange < CollapsedThreshold:
		return Collapsed
	default:
		return Unstable
	}
}

// Evaluate compares the population before and after a cycle.
func Evaluate(initial, final economy.Population) (Outcome, error) {
	var out Outcome
	var total float64

	for _, g := range economy.Groups() {
		before, after := initial[g], final[g]

		income, err := pctChange(before.AvgIncome, after.AvgIncome)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s avg_income: %w", g, err)
		}
		expense, err := pctChange(before.AvgExpenses, after.AvgExpenses)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s avg_expenses: %w", g, err)
		}

		out.Changes[g] = GroupChange{IncomeChangePct: income, ExpenseChangePct: expense}
		total += income
	}

	out.MeanIncomeChange = total / economy.NumGroups
	out.Classification = Classify(out.MeanIncomeChange)
	return out, nil
}

func pctChange(before, after int64) (float64, error) {
	if before == 0 {
		return 0, ErrZeroBaseline
	}
	return float64(after-before) / float64(before) * 100, nil
}
