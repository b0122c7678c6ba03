// Package report renders finished histograms.
package report

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/montecarlo"
)

// WriteCSV prints one "turns,frequency" line per win bucket followed by one
// per loss bucket. Every bucket is printed, including empty ones, so the
// line number identifies the turn.
func WriteCSV(w io.Writer, hist *montecarlo.Histogram) error {
	bw := bufio.NewWriter(w)
	for _, table := range [][]uint64{hist.Wins, hist.Losses} {
		for turns, n := range table {
			if _, err := fmt.Fprintf(bw, "%d,%d\n", turns, n); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Summary condenses a histogram into headline numbers.
type Summary struct {
	Games           uint64
	Wins            uint64
	Losses          uint64
	WinRate         float64
	MeanTurnsToWin  float64
	MeanTurnsToLoss float64
}

// Summarize computes the summary of hist. Means are zero when there are no
// games of that kind.
func Summarize(hist *montecarlo.Histogram) Summary {
	s := Summary{
		Wins:   hist.WinCount(),
		Losses: hist.LossCount(),
	}
	s.Games = s.Wins + s.Losses
	if s.Games > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Games)
	}
	s.MeanTurnsToWin = mean(hist.Wins, s.Wins)
	s.MeanTurnsToLoss = mean(hist.Losses, s.Losses)
	return s
}

func mean(table []uint64, count uint64) float64 {
	if count == 0 {
		return 0
	}
	var weighted uint64
	for turns, n := range table {
		weighted += uint64(turns) * n
	}
	return float64(weighted) / float64(count)
}

func (s Summary) String() string {
	return fmt.Sprintf("%d games, %.2f%% won, mean win turn %.2f, mean loss turn %.2f",
		s.Games, s.WinRate*100, s.MeanTurnsToWin, s.MeanTurnsToLoss)
}

// Fields returns the summary as structured log fields.
func (s Summary) Fields() []zap.Field {
	return []zap.Field{
		zap.Uint64("games", s.Games),
		zap.Uint64("wins", s.Wins),
		zap.Uint64("losses", s.Losses),
		zap.Float64("win_rate", s.WinRate),
		zap.Float64("mean_turns_to_win", s.MeanTurnsToWin),
		zap.Float64("mean_turns_to_loss", s.MeanTurnsToLoss),
	}
}
