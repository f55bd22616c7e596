package poker

import "fmt"

// Rank is a card rank from deuce (2) through ace (14). Kicker comparisons
// are by rank only; suit never breaks a tie.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankChars = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

func (r Rank) String() string {
	if s, ok := rankChars[r]; ok {
		return s
	}
	return "?"
}

// Suit is one of the four card suits.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitChars = [4]string{"c", "d", "h", "s"}

func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return "?"
	}
	return suitChars[s]
}

// Card is an immutable rank/suit pair.
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the card in two-character notation, e.g. "As" or "7c".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Index returns a unique position in [0, 52) for the card.
func (c Card) Index() int {
	return int(c.Suit)*13 + int(c.Rank) - 2
}

// ParseCard parses two-character notation like "As", "Td" or "7c".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	var rank Rank
	found := false
	for r, ch := range rankChars {
		if ch == string(s[0]) {
			rank = r
			found = true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("invalid card rank in %q", s)
	}
	for i, ch := range suitChars {
		if ch == string(s[1]) {
			return Card{Rank: rank, Suit: Suit(i)}, nil
		}
	}
	return Card{}, fmt.Errorf("invalid card suit in %q", s)
}

// MustParseCard is ParseCard for hardcoded cards; it panics on bad input.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NewDeck returns the 52 distinct cards in a fixed order. Callers shuffle.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// DeckWithout returns a deck with the given cards removed, for dealing the
// remainder once a subject hand is fixed.
func DeckWithout(excluded ...Card) []Card {
	var mask uint64
	for _, c := range excluded {
		mask |= 1 << uint(c.Index())
	}
	deck := make([]Card, 0, 52-len(excluded))
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := Card{Rank: rank, Suit: suit}
			if mask&(1<<uint(c.Index())) == 0 {
				deck = append(deck, c)
			}
		}
	}
	return deck
}
