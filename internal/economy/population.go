// Package economy provides the population groups and the crisis and policy tables.
package economy

import (
	"fmt"
	"strings"
)

// Group is a socio-economic population group.
type Group uint8

const (
	Rich        Group = iota // Top 10% by income
	MiddleClass              // Wage earners
	Poor                     // Low income households

	NumGroups = 3
)

var groupIDs = [NumGroups]string{"rich", "middle_class", "poor"}

// Groups returns every group in declaration order.
func Groups() [NumGroups]Group {
	return [NumGroups]Group{Rich, MiddleClass, Poor}
}

// String returns the group identifier ("rich", "middle_class", "poor").
func (g Group) String() string {
	if int(g) < len(groupIDs) {
		return groupIDs[g]
	}
	return fmt.Sprintf("group(%d)", uint8(g))
}

// Title returns the display name, e.g. "Middle Class".
func (g Group) Title() string {
	return Title(g.String())
}

// ParseGroup maps an identifier back to its Group.
func ParseGroup(id string) (Group, bool) {
	for i, s := range groupIDs {
		if s == id {
			return Group(i), true
		}
	}
	return 0, false
}

// GroupState is the economic condition of one group.
// Count is fixed at initialization; the averages are mutated by shocks and drift.
type GroupState struct {
	Count       int64 `json:"count"`
	AvgIncome   int64 `json:"avg_income"`   // Euros per year
	AvgExpenses int64 `json:"avg_expenses"` // Euros per year
}

// Population holds one GroupState per Group, indexed by Group.
// Assigning a Population copies it, which is how snapshots are taken.
type Population [NumGroups]GroupState

// TotalCount returns the number of people across all groups.
func (p *Population) TotalCount() int64 {
	var n int64
	for _, gs := range p {
		n += gs.Count
	}
	return n
}

// GroupProfile is the starting share and averages of one group.
type GroupProfile struct {
	Share       float64
	AvgIncome   int64
	AvgExpenses int64
}

// Profile describes how a total population is split into groups.
type Profile [NumGroups]GroupProfile

// SpainPopulation is Spain's population in 2023.
const SpainPopulation = 47_555_580

// DefaultProfile returns the 10/60/30 split used by the simulation.
func DefaultProfile() Profile {
	return Profile{
		Rich:        {Share: 0.10, AvgIncome: 60_000, AvgExpenses: 45_000},
		MiddleClass: {Share: 0.60, AvgIncome: 30_000, AvgExpenses: 24_000},
		Poor:        {Share: 0.30, AvgIncome: 15_000, AvgExpenses: 13_500},
	}
}

// NewPopulation splits total into groups. Counts are truncated, so they sum to at most total.
func NewPopulation(total int64, profile Profile) Population {
	var p Population
	for g, gp := range profile {
		p[g] = GroupState{
			Count:       int64(gp.Share * float64(total)),
			AvgIncome:   gp.AvgIncome,
			AvgExpenses: gp.AvgExpenses,
		}
	}
	return p
}

// Title turns a snake_case identifier into "Title Case".
func Title(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
