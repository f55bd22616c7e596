package simulation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pokerlab/equitysim/pkg/models"
)

// JSONExporter writes the result set as the single JSON artifact the
// presentation layer consumes.
type JSONExporter struct {
	path string
}

// NewJSONExporter creates an exporter targeting the given path.
func NewJSONExporter(path string) *JSONExporter {
	return &JSONExporter{path: path}
}

// Export serializes the result set. The artifact is written to a temporary
// file in the destination directory, synced, and renamed into place, so a
// failed run never leaves a partial or corrupt artifact behind.
func (e *JSONExporter) Export(rs *models.ResultSet) error {
	if err := rs.Validate(); err != nil {
		return fmt.Errorf("refusing to export incomplete result set: %w", err)
	}

	artifact := BuildArtifact(rs)
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	dir := filepath.Dir(e.path)
	tmp, err := os.CreateTemp(dir, ".equity-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Rename(tmpName, e.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to commit artifact: %w", err)
	}
	return nil
}

// BuildArtifact converts a validated result set into the persisted
// document shape, rounding rates to four decimals as the consumer expects.
func BuildArtifact(rs *models.ResultSet) *models.Artifact {
	tableSizes := make([]int, 0, models.NumTableSizes)
	for n := models.MinPlayers; n <= models.MaxPlayers; n++ {
		tableSizes = append(tableSizes, n)
	}

	hands := make(map[string]map[string]models.CellData, len(rs.Hands))
	for i := range rs.Hands {
		h := &rs.Hands[i]
		entry := make(map[string]models.CellData, models.NumTableSizes)
		for n := models.MinPlayers; n <= models.MaxPlayers; n++ {
			cell := h.Cell(n)
			entry[fmt.Sprintf("players_%d", n)] = models.CellData{
				Equity:        round4(cell.Equity()),
				WinRate:       round4(cell.WinRate()),
				TieRate:       round4(cell.TieRate()),
				LossRate:      round4(cell.LossRate()),
				MarginOfError: round4(cell.MarginOfError()),
			}
		}
		hands[h.Label] = entry
	}

	return &models.Artifact{
		Metadata: models.ArtifactMetadata{
			GeneratedAt:    rs.GeneratedAt.Format(time.RFC3339),
			NumSimulations: rs.TrialsPerCell,
			NumHands:       len(rs.Hands),
			TableSizes:     tableSizes,
			Version:        models.ArtifactVersion,
		},
		Hands: hands,
	}
}

// LoadArtifact reads a previously generated artifact, used both for cache
// reuse in the generator and by the artifact server.
func LoadArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact: %w", err)
	}
	return &artifact, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
