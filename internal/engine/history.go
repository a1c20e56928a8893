package engine

import (
	"github.com/talgya/crisissim/internal/economy"
)

// CycleRecord is the immutable record of one completed cycle.
type CycleRecord struct {
	Crisis       string                         `json:"crisis"`
	Policy       string                         `json:"policy"`
	MonthsPassed int                            `json:"months_passed"` // Months elapsed before this cycle
	FinalState   Classification                 `json:"final_state"`
	Outcome      [economy.NumGroups]GroupChange `json:"outcome"`
}

// History is the append-only sequence of cycles in a run.
type History struct {
	periods int
	records []CycleRecord
}

// NewHistory creates an empty history for cycles of periodsPerCycle months.
func NewHistory(periodsPerCycle int) *History {
	if periodsPerCycle <= 0 {
		periodsPerCycle = DefaultPeriods
	}
	return &History{periods: periodsPerCycle}
}

// Record appends a cycle. MonthsPassed counts the months before this cycle,
// so the first record is always 0 and the latest cycle's own months are not included.
func (h *History) Record(crisis, policy string, o Outcome) CycleRecord {
	rec := CycleRecord{
		Crisis:       crisis,
		Policy:       policy,
		MonthsPassed: len(h.records) * h.periods,
		FinalState:   o.Classification,
		Outcome:      o.Changes,
	}
	h.records = append(h.records, rec)
	return rec
}

// Len returns the number of recorded cycles.
func (h *History) Len() int {
	return len(h.records)
}

// PeriodsPerCycle returns the months in each cycle.
func (h *History) PeriodsPerCycle() int {
	return h.periods
}

// Records returns a copy of all cycles in order.
func (h *History) Records() []CycleRecord {
	out := make([]CycleRecord, len(h.records))
	copy(out, h.records)
	return out
}

// TotalMonths returns the months simulated across every recorded cycle.
func (h *History) TotalMonths() int {
	return len(h.records) * h.periods
}
