package models

import (
	"fmt"
	"math"
	"time"
)

// Table sizes covered by every generation run.
const (
	MinPlayers    = 2
	MaxPlayers    = 6
	NumTableSizes = MaxPlayers - MinPlayers + 1
)

// NumHandClasses mirrors the 169 canonical starting hands.
const NumHandClasses = 169

// EquityEstimate accumulates outcomes for one (hand class, table size) cell
// and derives the point estimate and its margin of error. Wins count 1.0
// toward the equity sum, a k-way tie counts 1/k, a loss 0.0.
type EquityEstimate struct {
	Trials    int
	EquitySum float64
	Wins      int
	Ties      int
	Losses    int
}

// Merge folds a partial sub-batch into the estimate. Addition is
// commutative and associative, so partial sums from independent workers
// combine in any order.
func (e *EquityEstimate) Merge(other EquityEstimate) {
	e.Trials += other.Trials
	e.EquitySum += other.EquitySum
	e.Wins += other.Wins
	e.Ties += other.Ties
	e.Losses += other.Losses
}

// Equity returns the mean equity over all trials.
func (e EquityEstimate) Equity() float64 {
	if e.Trials == 0 {
		return 0
	}
	return e.EquitySum / float64(e.Trials)
}

// WinRate returns the fraction of trials won outright.
func (e EquityEstimate) WinRate() float64 {
	if e.Trials == 0 {
		return 0
	}
	return float64(e.Wins) / float64(e.Trials)
}

// TieRate returns the fraction of trials ending in a tie for the subject.
func (e EquityEstimate) TieRate() float64 {
	if e.Trials == 0 {
		return 0
	}
	return float64(e.Ties) / float64(e.Trials)
}

// LossRate returns the fraction of trials lost.
func (e EquityEstimate) LossRate() float64 {
	if e.Trials == 0 {
		return 0
	}
	return float64(e.Losses) / float64(e.Trials)
}

// MarginOfError returns the 95% confidence half-width for the mean equity,
// using the normal approximation for a bounded variable on [0,1]:
// 1.96 * sqrt(p*(1-p)/T). At T = 100,000 and p near 0.5 this is ~0.3%.
func (e EquityEstimate) MarginOfError() float64 {
	if e.Trials == 0 {
		return 0
	}
	p := e.Equity()
	return 1.96 * math.Sqrt(p*(1-p)/float64(e.Trials))
}

// HandResult holds the five table-size cells for one starting-hand class.
type HandResult struct {
	Label string
	Cells [NumTableSizes]EquityEstimate
}

// Cell returns the estimate for the given table size (2 to 6 players).
func (h *HandResult) Cell(numPlayers int) EquityEstimate {
	return h.Cells[numPlayers-MinPlayers]
}

// ResultSet is the complete 169 x 5 result of one generation run plus its
// metadata. It is assembled once, validated, and immutable thereafter.
type ResultSet struct {
	GeneratedAt   time.Time
	TrialsPerCell int
	Hands         []HandResult
}

// TotalTrials returns the aggregate trial count across all cells.
func (rs *ResultSet) TotalTrials() int64 {
	var total int64
	for i := range rs.Hands {
		for j := range rs.Hands[i].Cells {
			total += int64(rs.Hands[i].Cells[j].Trials)
		}
	}
	return total
}

// Validate fails if any of the 169 x 5 cells is missing or was run with
// fewer trials than the configured budget, which would mean an incomplete
// generation run.
func (rs *ResultSet) Validate() error {
	if len(rs.Hands) != NumHandClasses {
		return fmt.Errorf("result set has %d hand classes, want %d", len(rs.Hands), NumHandClasses)
	}
	seen := make(map[string]bool, NumHandClasses)
	for i := range rs.Hands {
		h := &rs.Hands[i]
		if h.Label == "" {
			return fmt.Errorf("hand class %d has no label", i)
		}
		if seen[h.Label] {
			return fmt.Errorf("duplicate hand class %s", h.Label)
		}
		seen[h.Label] = true
		for j := range h.Cells {
			if h.Cells[j].Trials < rs.TrialsPerCell {
				return fmt.Errorf("cell %s players_%d ran %d of %d trials",
					h.Label, MinPlayers+j, h.Cells[j].Trials, rs.TrialsPerCell)
			}
		}
	}
	return nil
}
