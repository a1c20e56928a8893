// Package report renders a run's cycle history as a human-readable text report.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/talgya/crisissim/internal/economy"
	"github.com/talgya/crisissim/internal/engine"
)

// DefaultPath is where the interactive run writes its report.
const DefaultPath = "economic_report.txt"

var insights = []string{
	"- **Alternative Strategies That Could Have Been Used:**",
	"- In cases of **high unemployment**, **Economic Stimulus** or **Labor Market Reforms** would have been more effective than Austerity Measures.",
	"- If facing **rising housing prices**, **Housing Subsidies** would have reduced the burden on lower and middle-income groups.",
	"- **Doing nothing** was the worst option in most cases, as crises worsened without intervention.",
	"- When inflation surged, a mix of **Austerity Measures** and **targeted subsidies** would have worked better than only reducing spending.",
	"- Policies should have been **adapted based on economic trends**, rather than applying the same solution to every crisis.",
}

// Render writes the report for records. Cumulative months count each cycle's
// own months, unlike CycleRecord.MonthsPassed which stops before the cycle.
func Render(w io.Writer, records []engine.CycleRecord, periodsPerCycle int) error {
	if periodsPerCycle <= 0 {
		periodsPerCycle = engine.DefaultPeriods
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "📜 ECONOMIC SIMULATION REPORT")
	fmt.Fprintln(bw, "=================================")
	fmt.Fprintln(bw)

	totalMonths := 0
	for i, rec := range records {
		totalMonths += periodsPerCycle

		fmt.Fprintf(bw, "🔄 Cycle %d:\n", i+1)
		fmt.Fprintf(bw, "🌍 Crisis: %s\n", crisisDescription(rec.Crisis))
		fmt.Fprintf(bw, "🏛️ Policy Applied: %s\n", policyDescription(rec.Policy))
		fmt.Fprintf(bw, "📆 Months Passed (Cumulative): %d\n", totalMonths)
		fmt.Fprintf(bw, "📈 Outcome: %s\n\n", rec.FinalState.Headline())

		fmt.Fprintln(bw, "📊 Economic Performance:")
		for _, g := range economy.Groups() {
			ch := rec.Outcome[g]
			fmt.Fprintf(bw, "   - %s → Income: %.2f%%, Expenses: %.2f%%\n",
				g.Title(), ch.IncomeChangePct, ch.ExpenseChangePct)
		}

		fmt.Fprintln(bw, "\n📢 SUGGESTIONS & IMPROVEMENTS:")
		if p, ok := economy.PolicyByID(rec.Policy); ok {
			fmt.Fprintf(bw, "- %s\n", p.Suggestion)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, "📢 FINAL ECONOMIC INSIGHTS:")
	fmt.Fprintf(bw, "- The simulation lasted a total of %d months.\n", totalMonths)
	for _, line := range insights {
		fmt.Fprintln(bw, line)
	}

	return bw.Flush()
}

// WriteFile renders the report to path, replacing any existing file.
func WriteFile(path string, records []engine.CycleRecord, periodsPerCycle int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()

	if err := Render(f, records, periodsPerCycle); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func crisisDescription(id string) string {
	if c, ok := economy.CrisisByID(id); ok {
		return c.Description
	}
	return id
}

func policyDescription(id string) string {
	if p, ok := economy.PolicyByID(id); ok {
		return p.Description
	}
	return id
}
