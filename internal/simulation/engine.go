package simulation

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pokerlab/equitysim/internal/poker"
	"github.com/pokerlab/equitysim/pkg/models"
)

// trialBatch is how many trials run between context checks. Cancellation
// is cooperative at batch granularity, never mid-trial.
const trialBatch = 1024

// Simulator runs Monte Carlo showdown trials for one worker. Each worker
// owns its own Simulator and therefore its own independently seeded RNG
// and scratch buffers; nothing here is shared across goroutines.
type Simulator struct {
	rng      *rand.Rand
	resolver poker.Resolver
	deck     []poker.Card
	holes    [models.MaxPlayers][2]poker.Card
}

// NewSimulator creates a simulator with its own RNG seeded from seed.
func NewSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// RunCell runs the configured number of trials for one starting-hand class
// at one table size and returns the accumulated estimate. The context is
// checked between sub-batches; a canceled cell returns ctx.Err() and its
// partial counts are discarded by the caller.
func (s *Simulator) RunCell(ctx context.Context, class poker.HandClass, numPlayers, trials int) (models.EquityEstimate, error) {
	if numPlayers < models.MinPlayers || numPlayers > models.MaxPlayers {
		panic(fmt.Sprintf("table size %d out of range", numPlayers))
	}
	if trials <= 0 {
		return models.EquityEstimate{}, fmt.Errorf("trial count must be positive, got %d", trials)
	}
	return s.run(ctx, class.HoleCards(), numPlayers, trials)
}

// run is the hot loop: it deals, resolves and accumulates with no
// allocation per trial. The subject's hole cards stay fixed for the whole
// cell; opponents and board are drawn from the 50-card remainder.
func (s *Simulator) run(ctx context.Context, hole [2]poker.Card, numPlayers, trials int) (models.EquityEstimate, error) {
	s.deck = poker.DeckWithout(hole[0], hole[1])
	s.holes[0] = hole

	var est models.EquityEstimate

	for done := 0; done < trials; {
		select {
		case <-ctx.Done():
			return models.EquityEstimate{}, ctx.Err()
		default:
		}

		batch := trialBatch
		if remaining := trials - done; remaining < batch {
			batch = remaining
		}

		for t := 0; t < batch; t++ {
			board := s.deal(numPlayers)
			showdown := s.resolver.Resolve(board, s.holes[:numPlayers])
			switch showdown.Outcome(0) {
			case poker.Win:
				est.Wins++
			case poker.Tie:
				est.Ties++
			default:
				est.Losses++
			}
			est.EquitySum += showdown.Equity(0)
			est.Trials++
		}
		done += batch
	}

	return est, nil
}

// deal draws N-1 opponent hole pairs and the 5-card board from the 50-card
// remainder without replacement, by a partial Fisher-Yates shuffle. The
// prefix of a uniform permutation is uniform regardless of the deck's
// prior order, so the deck never needs resetting between trials.
func (s *Simulator) deal(numPlayers int) [5]poker.Card {
	need := 2*(numPlayers-1) + 5
	for i := 0; i < need; i++ {
		j := i + s.rng.Intn(len(s.deck)-i)
		s.deck[i], s.deck[j] = s.deck[j], s.deck[i]
	}
	for p := 1; p < numPlayers; p++ {
		s.holes[p][0] = s.deck[2*(p-1)]
		s.holes[p][1] = s.deck[2*(p-1)+1]
	}
	var board [5]poker.Card
	copy(board[:], s.deck[2*(numPlayers-1):need])
	return board
}
