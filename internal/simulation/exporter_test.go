package simulation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pokerlab/equitysim/internal/poker"
	"github.com/pokerlab/equitysim/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticResultSet builds a complete 169 x 5 result set with fabricated
// counts, so exporter tests do not need a real simulation run.
func syntheticResultSet(trials int) *models.ResultSet {
	classes := poker.AllClasses()
	hands := make([]models.HandResult, len(classes))
	for i, class := range classes {
		hands[i].Label = class.Label()
		for j := range hands[i].Cells {
			wins := trials / 2
			ties := trials / 10
			hands[i].Cells[j] = models.EquityEstimate{
				Trials:    trials,
				Wins:      wins,
				Ties:      ties,
				Losses:    trials - wins - ties,
				EquitySum: float64(wins) + float64(ties)/2,
			}
		}
	}
	return &models.ResultSet{
		GeneratedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TrialsPerCell: trials,
		Hands:         hands,
	}
}

func TestExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "equity.json")

	rs := syntheticResultSet(1000)
	require.NoError(t, NewJSONExporter(path).Export(rs))

	artifact, err := LoadArtifact(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, artifact.Metadata.NumSimulations)
	assert.Equal(t, models.NumHandClasses, artifact.Metadata.NumHands)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, artifact.Metadata.TableSizes)
	assert.Equal(t, models.ArtifactVersion, artifact.Metadata.Version)
	assert.Equal(t, "2026-03-01T12:00:00Z", artifact.Metadata.GeneratedAt)

	require.Len(t, artifact.Hands, models.NumHandClasses)
	aa, ok := artifact.Hands["AA"]
	require.True(t, ok)
	require.Len(t, aa, models.NumTableSizes)
	for n := models.MinPlayers; n <= models.MaxPlayers; n++ {
		cell, ok := aa[keyFor(n)]
		require.True(t, ok, "missing players_%d", n)
		assert.InDelta(t, 0.55, cell.Equity, 1e-9)
		assert.InDelta(t, 0.5, cell.WinRate, 1e-9)
		assert.InDelta(t, 0.1, cell.TieRate, 1e-9)
		assert.InDelta(t, 0.4, cell.LossRate, 1e-9)
		assert.Greater(t, cell.MarginOfError, 0.0)
	}
}

func keyFor(n int) string {
	return map[int]string{2: "players_2", 3: "players_3", 4: "players_4", 5: "players_5", 6: "players_6"}[n]
}

// A failed or refused export must never leave a partial artifact behind.
func TestExportAtomicity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "equity.json")

	rs := syntheticResultSet(1000)
	require.NoError(t, NewJSONExporter(path).Export(rs))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files should remain")
	assert.Equal(t, "equity.json", entries[0].Name())
}

func TestExportRejectsIncompleteResultSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "equity.json")

	t.Run("missing hand", func(t *testing.T) {
		rs := syntheticResultSet(1000)
		rs.Hands = rs.Hands[:len(rs.Hands)-1]
		err := NewJSONExporter(path).Export(rs)
		require.Error(t, err)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "artifact must not be written")
	})

	t.Run("short cell", func(t *testing.T) {
		rs := syntheticResultSet(1000)
		rs.Hands[42].Cells[3].Trials = 999
		err := NewJSONExporter(path).Export(rs)
		require.Error(t, err)
	})

	t.Run("duplicate label", func(t *testing.T) {
		rs := syntheticResultSet(1000)
		rs.Hands[1].Label = rs.Hands[0].Label
		err := NewJSONExporter(path).Export(rs)
		require.Error(t, err)
	})
}

func TestRoundingToFourDecimals(t *testing.T) {
	rs := syntheticResultSet(3)
	artifact := BuildArtifact(rs)
	// 1/3-ish rates must come out rounded, not as long binary fractions.
	for _, cells := range artifact.Hands {
		for _, cell := range cells {
			assert.Equal(t, cell.Equity, round4(cell.Equity))
			assert.Equal(t, cell.WinRate, round4(cell.WinRate))
			assert.Equal(t, cell.TieRate, round4(cell.TieRate))
			assert.Equal(t, cell.LossRate, round4(cell.LossRate))
		}
	}
}

func TestLoadArtifactErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		_, err := LoadArtifact(path)
		assert.Error(t, err)
	})
}
