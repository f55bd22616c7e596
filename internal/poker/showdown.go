package poker

// Outcome classifies one player's showdown result.
type Outcome int

const (
	Loss Outcome = iota
	Tie
	Win
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Tie:
		return "tie"
	default:
		return "loss"
	}
}

// Showdown holds the resolved result of one deal: every player's best
// 7-card HandRank, the table maximum, and how many players share it.
type Showdown struct {
	ranks     []HandRank
	best      HandRank
	bestCount int
}

// NumPlayers returns the number of players in the showdown.
func (s *Showdown) NumPlayers() int { return len(s.ranks) }

// RankOf returns the given player's best 7-card HandRank.
func (s *Showdown) RankOf(player int) HandRank { return s.ranks[player] }

// Outcome classifies the player as win (unique maximum), tie (shared
// maximum) or loss.
func (s *Showdown) Outcome(player int) Outcome {
	if s.ranks[player] < s.best {
		return Loss
	}
	if s.bestCount > 1 {
		return Tie
	}
	return Win
}

// Equity returns the player's equity share for the deal: 1.0 for a win,
// 1/k for a k-way tie, 0.0 for a loss.
func (s *Showdown) Equity(player int) float64 {
	switch s.Outcome(player) {
	case Win:
		return 1.0
	case Tie:
		return 1.0 / float64(s.bestCount)
	default:
		return 0.0
	}
}

// Resolver resolves showdowns for 2 to 6 players. It reuses internal
// scratch space between calls, so each worker owns its own Resolver; the
// zero value is ready to use.
type Resolver struct {
	showdown Showdown
	cards    [7]Card
}

// Resolve evaluates every player's best hand from their hole cards plus
// the shared board and classifies each as win, tie or loss. The returned
// Showdown is only valid until the next Resolve call.
func (r *Resolver) Resolve(board [5]Card, holes [][2]Card) *Showdown {
	s := &r.showdown
	if cap(s.ranks) < len(holes) {
		s.ranks = make([]HandRank, len(holes))
	}
	s.ranks = s.ranks[:len(holes)]

	copy(r.cards[:5], board[:])
	s.best = 0
	s.bestCount = 0
	for i, hole := range holes {
		r.cards[5] = hole[0]
		r.cards[6] = hole[1]
		rank := EvaluateBest(r.cards[:])
		s.ranks[i] = rank
		if rank > s.best {
			s.best = rank
			s.bestCount = 1
		} else if rank == s.best {
			s.bestCount++
		}
	}
	return s
}
