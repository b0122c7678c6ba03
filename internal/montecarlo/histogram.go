package montecarlo

import (
	"errors"
	"fmt"
)

// ErrZeroOutcome is returned for a game that reported zero turns.
var ErrZeroOutcome = errors.New("game outcome must not be zero")

// initialBuckets covers every game length seen in practice, so the tables
// rarely grow during aggregation.
const initialBuckets = 64

// Histogram counts games by turn count. Index n of Wins holds the number of
// games won on turn n; Losses likewise for games lost.
type Histogram struct {
	Wins   []uint64 `json:"wins"`
	Losses []uint64 `json:"losses"`
}

// NewHistogram creates an empty histogram with pre-sized tables.
func NewHistogram() *Histogram {
	return &Histogram{
		Wins:   make([]uint64, initialBuckets),
		Losses: make([]uint64, initialBuckets),
	}
}

// Record tallies a signed outcome: positive for a win on that turn,
// negative for a loss.
func (h *Histogram) Record(outcome int) error {
	switch {
	case outcome > 0:
		h.Wins = increment(h.Wins, outcome)
	case outcome < 0:
		h.Losses = increment(h.Losses, -outcome)
	default:
		return ErrZeroOutcome
	}
	return nil
}

func increment(table []uint64, index int) []uint64 {
	if index >= len(table) {
		grown := make([]uint64, index+1)
		copy(grown, table)
		table = grown
	}
	table[index]++
	return table
}

// Total returns the number of games recorded.
func (h *Histogram) Total() uint64 {
	return sum(h.Wins) + sum(h.Losses)
}

// WinCount returns the number of games won.
func (h *Histogram) WinCount() uint64 {
	return sum(h.Wins)
}

// LossCount returns the number of games lost.
func (h *Histogram) LossCount() uint64 {
	return sum(h.Losses)
}

func sum(table []uint64) uint64 {
	var n uint64
	for _, v := range table {
		n += v
	}
	return n
}

// Clone returns a deep copy.
func (h *Histogram) Clone() Histogram {
	return Histogram{
		Wins:   append([]uint64(nil), h.Wins...),
		Losses: append([]uint64(nil), h.Losses...),
	}
}

// Merge adds other's counts into h.
func (h *Histogram) Merge(other Histogram) {
	for turn, n := range other.Wins {
		if n == 0 {
			continue
		}
		if turn >= len(h.Wins) {
			h.Wins = append(h.Wins, make([]uint64, turn+1-len(h.Wins))...)
		}
		h.Wins[turn] += n
	}
	for turn, n := range other.Losses {
		if n == 0 {
			continue
		}
		if turn >= len(h.Losses) {
			h.Losses = append(h.Losses, make([]uint64, turn+1-len(h.Losses))...)
		}
		h.Losses[turn] += n
	}
}

func (h *Histogram) String() string {
	return fmt.Sprintf("Histogram{wins=%d losses=%d}", h.WinCount(), h.LossCount())
}
