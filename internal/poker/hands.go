package poker

import "fmt"

// Suitedness tags a starting-hand class. Pairs carry no suitedness.
type Suitedness int

const (
	PocketPair Suitedness = iota
	Suited
	Offsuit
)

// NumHandClasses is the number of strategically distinct two-card starting
// hands: 13 pairs + 78 suited + 78 offsuit combinations.
const NumHandClasses = 169

// HandClass identifies one of the 169 canonical starting hands by its two
// ranks (high first) and suitedness.
type HandClass struct {
	High       Rank
	Low        Rank
	Suitedness Suitedness
}

// Label returns the class in standard notation: "AA", "AKs", "72o".
func (h HandClass) Label() string {
	switch h.Suitedness {
	case PocketPair:
		return h.High.String() + h.Low.String()
	case Suited:
		return h.High.String() + h.Low.String() + "s"
	default:
		return h.High.String() + h.Low.String() + "o"
	}
}

// HoleCards returns a fixed concrete realization of the class. The suit
// assignment is arbitrary beyond the suited/offsuit relationship and does
// not bias equity against random opponents.
func (h HandClass) HoleCards() [2]Card {
	switch h.Suitedness {
	case Suited:
		return [2]Card{{Rank: h.High, Suit: Clubs}, {Rank: h.Low, Suit: Clubs}}
	default:
		return [2]Card{{Rank: h.High, Suit: Clubs}, {Rank: h.Low, Suit: Diamonds}}
	}
}

// Realize returns the class dealt in specific suits, for checking that
// equity is independent of the concrete suit choice. Panics if the suits
// contradict the class: that is a programmer error, not a runtime state.
func (h HandClass) Realize(s1, s2 Suit) [2]Card {
	if h.Suitedness == Suited && s1 != s2 {
		panic(fmt.Sprintf("suited class %s realized with suits %s%s", h.Label(), s1, s2))
	}
	if h.Suitedness != Suited && s1 == s2 {
		panic(fmt.Sprintf("class %s realized with identical suits", h.Label()))
	}
	return [2]Card{{Rank: h.High, Suit: s1}, {Rank: h.Low, Suit: s2}}
}

// classes is the fixed 169-entry enumeration, built once at init. The hot
// path indexes into it rather than any dynamic map.
var classes [NumHandClasses]HandClass

func init() {
	i := 0
	for r := Ace; r >= Two; r-- {
		classes[i] = HandClass{High: r, Low: r, Suitedness: PocketPair}
		i++
	}
	for hi := Ace; hi >= Three; hi-- {
		for lo := hi - 1; lo >= Two; lo-- {
			classes[i] = HandClass{High: hi, Low: lo, Suitedness: Suited}
			i++
			classes[i] = HandClass{High: hi, Low: lo, Suitedness: Offsuit}
			i++
		}
	}
}

// AllClasses returns the 169 classes in canonical order: pairs from AA down
// to 22, then each non-pair rank combination suited before offsuit.
func AllClasses() []HandClass {
	return classes[:]
}

// ClassForCards maps two raw hole cards back to their canonical class.
func ClassForCards(a, b Card) HandClass {
	hi, lo := a, b
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	switch {
	case hi.Rank == lo.Rank:
		return HandClass{High: hi.Rank, Low: lo.Rank, Suitedness: PocketPair}
	case hi.Suit == lo.Suit:
		return HandClass{High: hi.Rank, Low: lo.Rank, Suitedness: Suited}
	default:
		return HandClass{High: hi.Rank, Low: lo.Rank, Suitedness: Offsuit}
	}
}

// ClassFromLabel parses notation like "AA", "AKs" or "72o".
func ClassFromLabel(label string) (HandClass, error) {
	if len(label) < 2 || len(label) > 3 {
		return HandClass{}, fmt.Errorf("invalid hand label %q", label)
	}
	hi, err := parseRankChar(label[0])
	if err != nil {
		return HandClass{}, fmt.Errorf("invalid hand label %q: %w", label, err)
	}
	lo, err := parseRankChar(label[1])
	if err != nil {
		return HandClass{}, fmt.Errorf("invalid hand label %q: %w", label, err)
	}
	if lo > hi {
		return HandClass{}, fmt.Errorf("invalid hand label %q: higher rank must come first", label)
	}
	if hi == lo {
		if len(label) != 2 {
			return HandClass{}, fmt.Errorf("invalid hand label %q: pairs carry no suffix", label)
		}
		return HandClass{High: hi, Low: lo, Suitedness: PocketPair}, nil
	}
	if len(label) != 3 {
		return HandClass{}, fmt.Errorf("invalid hand label %q: missing suitedness suffix", label)
	}
	switch label[2] {
	case 's':
		return HandClass{High: hi, Low: lo, Suitedness: Suited}, nil
	case 'o':
		return HandClass{High: hi, Low: lo, Suitedness: Offsuit}, nil
	default:
		return HandClass{}, fmt.Errorf("invalid hand label %q: suffix must be 's' or 'o'", label)
	}
}

func parseRankChar(ch byte) (Rank, error) {
	for r, s := range rankChars {
		if s[0] == ch {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", string(ch))
}
