package simulation

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pokerlab/equitysim/internal/poker"
	"github.com/pokerlab/equitysim/pkg/models"
	"github.com/pterm/pterm"
)

// handUnit is one unit of work: a starting-hand class and its five
// table-size cells, matching the parallel granularity of the run.
type handUnit struct {
	index int
	class poker.HandClass
}

type handOutcome struct {
	index  int
	result models.HandResult
	err    error
}

// Manager coordinates the full generation run: 169 hand classes fanned out
// over a bounded worker pool, each worker with its own Simulator, results
// collected over a channel and assembled into the final ResultSet.
type Manager struct {
	config    *models.Config
	mu        sync.RWMutex
	completed int
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewManager creates a manager bound to the given parent context.
func NewManager(ctx context.Context, config *models.Config) *Manager {
	ctx, cancel := context.WithCancel(ctx)
	return &Manager{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Run executes the whole generation: every hand class at every table size
// with the configured trial budget. It returns a complete, validated
// ResultSet or an error; there is no partial success.
func (m *Manager) Run() (*models.ResultSet, error) {
	if m.config.Trials <= 0 {
		return nil, fmt.Errorf("trial count must be positive, got %d", m.config.Trials)
	}

	defer m.cancel()

	classes := poker.AllClasses()
	startTime := time.Now()

	if m.config.Verbose {
		log.Printf("Starting generation: %d hand classes x %d table sizes x %d trials (%d total)",
			len(classes), models.NumTableSizes, m.config.Trials,
			len(classes)*models.NumTableSizes*m.config.Trials)
	}

	var progress *pterm.ProgressbarPrinter
	if !m.config.NoProgress {
		progress, _ = pterm.DefaultProgressbar.
			WithTotal(len(classes)).
			WithTitle("Simulating hands").
			Start()
	}

	if m.config.Verbose {
		go m.reportProgress(len(classes))
	}

	units := make(chan handUnit, len(classes))
	for i, class := range classes {
		units <- handUnit{index: i, class: class}
	}
	close(units)

	outcomes := make(chan handOutcome, len(classes))
	seedBase := time.Now().UnixNano()

	var wg sync.WaitGroup
	for w := 0; w < m.config.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			// Each worker gets an independently seeded generator so no RNG
			// state is shared and sampling is uncorrelated across cells.
			sim := NewSimulator(seedBase + int64(uint64(worker)*0x9E3779B97F4A7C15))
			for unit := range units {
				result, err := m.runHand(sim, unit.class)
				outcomes <- handOutcome{index: unit.index, result: result, err: err}
				if err != nil {
					return
				}
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	hands := make([]models.HandResult, len(classes))
	var firstErr error
	for outcome := range outcomes {
		if outcome.err != nil {
			if firstErr == nil {
				firstErr = outcome.err
				m.cancel()
			}
			continue
		}
		hands[outcome.index] = outcome.result

		m.mu.Lock()
		m.completed++
		m.mu.Unlock()

		if progress != nil {
			progress.Increment()
		}
	}

	if progress != nil {
		progress.Stop()
	}

	if firstErr != nil {
		return nil, fmt.Errorf("generation failed: %w", firstErr)
	}

	rs := &models.ResultSet{
		GeneratedAt:   time.Now(),
		TrialsPerCell: m.config.Trials,
		Hands:         hands,
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("generation produced an incomplete result set: %w", err)
	}

	if m.config.Verbose {
		log.Printf("Generation completed: %d cells, %d trials, %s",
			len(hands)*models.NumTableSizes, rs.TotalTrials(), time.Since(startTime).Round(time.Second))
	}
	return rs, nil
}

// runHand runs one hand class across every table size on one worker.
func (m *Manager) runHand(sim *Simulator, class poker.HandClass) (models.HandResult, error) {
	result := models.HandResult{Label: class.Label()}
	for n := models.MinPlayers; n <= models.MaxPlayers; n++ {
		est, err := sim.RunCell(m.ctx, class, n, m.config.Trials)
		if err != nil {
			return models.HandResult{}, fmt.Errorf("hand %s at %d players: %w", class.Label(), n, err)
		}
		result.Cells[n-models.MinPlayers] = est
	}
	return result, nil
}

// Completed returns how many hand classes have finished.
func (m *Manager) Completed() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.completed
}

// Stop cancels the run. Workers stop at the next batch boundary and the
// run reports a cancellation error instead of writing anything.
func (m *Manager) Stop() {
	m.cancel()
}

// reportProgress logs completion counts periodically in verbose mode.
func (m *Manager) reportProgress(total int) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			completed := m.Completed()
			if completed < total {
				log.Printf("Generation progress: %d/%d hands completed (%.1f%%)",
					completed, total, float64(completed)/float64(total)*100)
			}
		}
	}
}
