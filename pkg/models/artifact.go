package models

// ArtifactVersion labels the artifact schema for the presentation layer.
const ArtifactVersion = "1.0"

// CellData is one table-size entry in the persisted artifact.
type CellData struct {
	Equity        float64 `json:"equity"`
	WinRate       float64 `json:"win_rate"`
	TieRate       float64 `json:"tie_rate"`
	LossRate      float64 `json:"loss_rate"`
	MarginOfError float64 `json:"margin_of_error"`
}

// ArtifactMetadata records the generation parameters the presentation
// layer needs for its "based on N simulations" caption and cache checks.
type ArtifactMetadata struct {
	GeneratedAt    string `json:"generated_at"`
	NumSimulations int    `json:"num_simulations"`
	NumHands       int    `json:"num_hands"`
	TableSizes     []int  `json:"table_sizes"`
	Version        string `json:"version"`
}

// Artifact is the single persisted document consumed by the presentation
// layer: hand label -> "players_2".."players_6" -> cell data. It is written
// once per generation run and read-only afterwards.
type Artifact struct {
	Metadata ArtifactMetadata               `json:"metadata"`
	Hands    map[string]map[string]CellData `json:"hands"`
}
