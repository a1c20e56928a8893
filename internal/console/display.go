package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/talgya/crisissim/internal/economy"
	"github.com/talgya/crisissim/internal/engine"
)

// Display prints simulation progress to a terminal.
type Display struct {
	out io.Writer

	heading lipgloss.Style
	alert   lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	muted   lipgloss.Style
}

// NewDisplay writes to out. Colors are dropped automatically when out is not a terminal.
func NewDisplay(out io.Writer) *Display {
	r := lipgloss.NewRenderer(out)
	return &Display{
		out:     out,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
		alert:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC107")),
		good:    r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("#e53935")),
		muted:   r.NewStyle().Faint(true),
	}
}

var _ engine.Display = (*Display)(nil)

// Population prints each group's head count, income and expenses.
func (d *Display) Population(month int, pop economy.Population) {
	if month > 0 {
		d.section(d.muted, fmt.Sprintf("📅 Month %d: Economy Adjusting...", month))
	}
	d.section(d.heading, fmt.Sprintf("📅 Month %d: Economic Status", month))
	for _, g := range economy.Groups() {
		gs := pop[g]
		fmt.Fprintf(d.out, "%s - People: %s | Income: €%s | Expenses: €%s\n",
			g.Title(),
			humanize.Comma(gs.Count),
			humanize.Comma(gs.AvgIncome),
			humanize.Comma(gs.AvgExpenses),
		)
	}
}

// Crisis announces the shock that just hit.
func (d *Display) Crisis(c economy.Crisis) {
	d.section(d.alert, "📉 Crisis: "+c.Description)
}

// Outcome prints the verdict on the cycle.
func (d *Display) Outcome(o engine.Outcome) {
	d.section(d.heading, "🔎 Economic Outcome:")

	style := d.muted
	switch o.Classification {
	case engine.Improved:
		style = d.good
	case engine.Collapsed:
		style = d.bad
	}
	fmt.Fprintln(d.out, style.Render(o.Classification.Headline()))
}

// PolicyMenu lists the policies as a numbered menu.
func (d *Display) PolicyMenu(catalog []economy.Policy) {
	d.section(d.heading, "📊 Choose a policy to mitigate the crisis:")
	for i, p := range catalog {
		fmt.Fprintf(d.out, "%d. %s - %s\n", i+1, economy.Title(p.ID), p.Description)
	}
}

// Reject explains why an answer was refused.
func (d *Display) Reject(reason string) {
	fmt.Fprintln(d.out, d.bad.Render("⛔ "+reason))
}

// Saved confirms where the report was written.
func (d *Display) Saved(path string) {
	d.section(d.good, fmt.Sprintf("💾 Economic report saved as '%s'.", path))
}

// Ended prints the closing banner.
func (d *Display) Ended() {
	d.section(d.heading, "🏁 Simulation ended.")
}

// section prints a styled line preceded by a blank line.
func (d *Display) section(style lipgloss.Style, text string) {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, style.Render(text))
}
