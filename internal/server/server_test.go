package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pokerlab/equitysim/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, path string) *models.Artifact {
	t.Helper()
	artifact := &models.Artifact{
		Metadata: models.ArtifactMetadata{
			GeneratedAt:    "2026-03-01T12:00:00Z",
			NumSimulations: 1000,
			NumHands:       1,
			TableSizes:     []int{2, 3, 4, 5, 6},
			Version:        models.ArtifactVersion,
		},
		Hands: map[string]map[string]models.CellData{
			"AA": {
				"players_2": {Equity: 0.8520, WinRate: 0.8469, TieRate: 0.0102, LossRate: 0.1429},
				"players_6": {Equity: 0.4913, WinRate: 0.4871, TieRate: 0.0084, LossRate: 0.5045},
			},
		},
	}
	data, err := json.Marshal(artifact)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return artifact
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out))
	}
	return resp.StatusCode
}

func TestServeArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.json")
	want := writeArtifact(t, path)

	ts := httptest.NewServer(NewServer(path).Router())
	defer ts.Close()

	var got models.Artifact
	status := getJSON(t, ts.URL+"/api/equity", &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, want.Metadata, got.Metadata)
	assert.Equal(t, want.Hands, got.Hands)
}

func TestServeSingleHand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.json")
	writeArtifact(t, path)

	ts := httptest.NewServer(NewServer(path).Router())
	defer ts.Close()

	var cells map[string]models.CellData
	status := getJSON(t, ts.URL+"/api/equity/AA", &cells)
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 0.8520, cells["players_2"].Equity, 1e-9)

	var errBody map[string]string
	status = getJSON(t, ts.URL+"/api/equity/ZZ", &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, errBody["error"])
}

// A missing artifact is a degraded state, not a crash: requests get a
// distinct 503 with an error body.
func TestDegradedStateWithoutArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	ts := httptest.NewServer(NewServer(path).Router())
	defer ts.Close()

	var errBody map[string]string
	status := getJSON(t, ts.URL+"/api/equity", &errBody)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "equity data unavailable", errBody["error"])

	var health map[string]any
	status = getJSON(t, ts.URL+"/healthz", &health)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, health["data_loaded"])
}

func TestRecoveryAfterArtifactAppears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.json")
	s := NewServer(path)

	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	status := getJSON(t, ts.URL+"/api/equity", nil)
	require.Equal(t, http.StatusServiceUnavailable, status)

	writeArtifact(t, path)
	require.NoError(t, s.reload())

	status = getJSON(t, ts.URL+"/api/equity", nil)
	assert.Equal(t, http.StatusOK, status)

	var health map[string]any
	getJSON(t, ts.URL+"/healthz", &health)
	assert.Equal(t, true, health["data_loaded"])
}
