package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/goldfish-go/internal/montecarlo"
)

func TestWriteCSV(t *testing.T) {
	hist := &montecarlo.Histogram{
		Wins:   []uint64{0, 0, 3, 1},
		Losses: []uint64{0, 2},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, hist))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"0,0", "1,0", "2,3", "3,1", "0,0", "1,2"}, lines)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteCSVPropagatesErrors(t *testing.T) {
	hist := montecarlo.NewHistogram()
	err := WriteCSV(failingWriter{}, hist)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSummarize(t *testing.T) {
	hist := &montecarlo.Histogram{
		Wins:   []uint64{0, 0, 0, 0, 2, 2},
		Losses: []uint64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	}
	s := Summarize(hist)

	assert.Equal(t, uint64(5), s.Games)
	assert.Equal(t, uint64(4), s.Wins)
	assert.Equal(t, uint64(1), s.Losses)
	assert.InDelta(t, 0.8, s.WinRate, 1e-9)
	assert.InDelta(t, 4.5, s.MeanTurnsToWin, 1e-9)
	assert.InDelta(t, 10.0, s.MeanTurnsToLoss, 1e-9)
	assert.Contains(t, s.String(), "80.00% won")
	assert.Len(t, s.Fields(), 6)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(montecarlo.NewHistogram())
	assert.Zero(t, s.Games)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.MeanTurnsToWin)
}
