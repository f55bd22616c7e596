package poker

import "fmt"

// HandCategory is the standard poker hand category ordering, lowest first.
type HandCategory uint32

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	"High Card", "One Pair", "Two Pair", "Three of a Kind", "Straight",
	"Flush", "Full House", "Four of a Kind", "Straight Flush",
}

func (c HandCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// HandRank is a totally ordered hand-strength value: the category in the
// high bits followed by five 4-bit rank nibbles for kicker tie-breaking.
// Comparing two HandRank values as integers orders the hands per standard
// poker rules.
type HandRank uint32

// Category extracts the hand category from a rank.
func (h HandRank) Category() HandCategory {
	return HandCategory(h >> 20)
}

func packRank(cat HandCategory, t1, t2, t3, t4, t5 Rank) HandRank {
	return HandRank(uint32(cat)<<20 |
		uint32(t1)<<16 | uint32(t2)<<12 | uint32(t3)<<8 | uint32(t4)<<4 | uint32(t5))
}

// Evaluate5 scores exactly five cards. Duplicate cards are a programmer
// error and panic: a corrupted deal must never be absorbed into a trial.
func Evaluate5(cards [5]Card) HandRank {
	var seen uint64
	var counts [15]uint8
	for _, c := range cards {
		bit := uint64(1) << uint(c.Index())
		if seen&bit != 0 {
			panic(fmt.Sprintf("duplicate card %s in hand", c))
		}
		seen |= bit
		counts[c.Rank]++
	}

	flush := cards[0].Suit == cards[1].Suit && cards[0].Suit == cards[2].Suit &&
		cards[0].Suit == cards[3].Suit && cards[0].Suit == cards[4].Suit

	// Distinct ranks, descending.
	var distinct [5]Rank
	n := 0
	for r := Ace; r >= Two; r-- {
		if counts[r] > 0 {
			distinct[n] = r
			n++
		}
	}

	// A straight needs five distinct ranks spanning exactly four, with the
	// wheel (A-2-3-4-5) playing the ace low as a five-high straight.
	var straightHigh Rank
	if n == 5 {
		if distinct[0]-distinct[4] == 4 {
			straightHigh = distinct[0]
		} else if distinct[0] == Ace && distinct[1] == Five && distinct[4] == Two {
			straightHigh = Five
		}
	}

	if straightHigh != 0 && flush {
		return packRank(StraightFlush, straightHigh, 0, 0, 0, 0)
	}

	var quad, trips, pairHi, pairLo Rank
	for i := 0; i < n; i++ {
		switch counts[distinct[i]] {
		case 4:
			quad = distinct[i]
		case 3:
			trips = distinct[i]
		case 2:
			if pairHi == 0 {
				pairHi = distinct[i]
			} else {
				pairLo = distinct[i]
			}
		}
	}

	switch {
	case quad != 0:
		kicker := distinct[0]
		if kicker == quad {
			kicker = distinct[1]
		}
		return packRank(FourOfAKind, quad, kicker, 0, 0, 0)
	case trips != 0 && pairHi != 0:
		return packRank(FullHouse, trips, pairHi, 0, 0, 0)
	case flush:
		return packRank(Flush, distinct[0], distinct[1], distinct[2], distinct[3], distinct[4])
	case straightHigh != 0:
		return packRank(Straight, straightHigh, 0, 0, 0, 0)
	case trips != 0:
		k1, k2 := kickersExcluding(distinct[:n], trips, 0)
		return packRank(ThreeOfAKind, trips, k1, k2, 0, 0)
	case pairLo != 0:
		kicker, _ := kickersExcluding(distinct[:n], pairHi, pairLo)
		return packRank(TwoPair, pairHi, pairLo, kicker, 0, 0)
	case pairHi != 0:
		var kickers [3]Rank
		j := 0
		for i := 0; i < n; i++ {
			if distinct[i] != pairHi {
				kickers[j] = distinct[i]
				j++
			}
		}
		return packRank(OnePair, pairHi, kickers[0], kickers[1], kickers[2], 0)
	default:
		return packRank(HighCard, distinct[0], distinct[1], distinct[2], distinct[3], distinct[4])
	}
}

// kickersExcluding returns the two highest ranks not in {a, b}.
func kickersExcluding(distinct []Rank, a, b Rank) (Rank, Rank) {
	var out [2]Rank
	j := 0
	for _, r := range distinct {
		if r != a && r != b {
			out[j] = r
			j++
			if j == 2 {
				break
			}
		}
	}
	return out[0], out[1]
}

// EvaluateBest scores 5, 6 or 7 cards by taking the maximum HandRank over
// every 5-card subset. Exhaustive enumeration (21 subsets for 7 cards)
// guarantees the globally best category is found, e.g. a full house hiding
// alongside four suited cards. Any other card count or a duplicate card is
// a programmer error and panics.
func EvaluateBest(cards []Card) HandRank {
	var seen uint64
	for _, c := range cards {
		bit := uint64(1) << uint(c.Index())
		if seen&bit != 0 {
			panic(fmt.Sprintf("duplicate card %s in hand", c))
		}
		seen |= bit
	}

	switch len(cards) {
	case 5:
		return Evaluate5([5]Card{cards[0], cards[1], cards[2], cards[3], cards[4]})
	case 6:
		return bestExcludingOne(cards)
	case 7:
		return bestExcludingTwo(cards)
	default:
		panic(fmt.Sprintf("cannot evaluate %d cards", len(cards)))
	}
}

func bestExcludingOne(cards []Card) HandRank {
	var best HandRank
	var hand [5]Card
	for skip := 0; skip < 6; skip++ {
		j := 0
		for i := 0; i < 6; i++ {
			if i == skip {
				continue
			}
			hand[j] = cards[i]
			j++
		}
		if r := Evaluate5(hand); r > best {
			best = r
		}
	}
	return best
}

func bestExcludingTwo(cards []Card) HandRank {
	var best HandRank
	var hand [5]Card
	for skipA := 0; skipA < 7; skipA++ {
		for skipB := skipA + 1; skipB < 7; skipB++ {
			j := 0
			for i := 0; i < 7; i++ {
				if i == skipA || i == skipB {
					continue
				}
				hand[j] = cards[i]
				j++
			}
			if r := Evaluate5(hand); r > best {
				best = r
			}
		}
	}
	return best
}
