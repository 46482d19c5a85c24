package poker

import (
	"encoding/json"
	"fmt"
)

// Suit is one of the four card suits.
type Suit string

const (
	Clubs    Suit = "♣"
	Diamonds Suit = "♦"
	Hearts   Suit = "♥"
	Spades   Suit = "♠"
)

// Rank is a card's face value, 2 through Ace.
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// allSuits and allRanks enumerate the 52-card universe in construction order.
var allSuits = [4]Suit{Clubs, Diamonds, Hearts, Spades}
var allRanks = [13]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Card is an immutable (rank, suit) pair.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard builds a Card from a rank and suit. It is used by the rigged deck
// and by tests to pin exact hands.
func NewCard(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

// Rank returns the card's rank.
func (c Card) Rank() Rank { return c.rank }

// Suit returns the card's suit.
func (c Card) Suit() Suit { return c.suit }

func (c Card) String() string {
	return string(c.rank) + string(c.suit)
}

// RankValue returns the card's rank as a comparable integer, 2..14 (Ace high).
func (c Card) RankValue() int {
	return rankToInt(c.rank)
}

func rankToInt(r Rank) int {
	switch r {
	case Two:
		return 2
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven:
		return 7
	case Eight:
		return 8
	case Nine:
		return 9
	case Ten:
		return 10
	case Jack:
		return 11
	case Queen:
		return 12
	case King:
		return 13
	case Ace:
		return 14
	default:
		return 0
	}
}

// cardJSON is the wire representation of a Card for outbound game-state
// events (spec.md §6: "JSON objects tagged by msg_type").
type cardJSON struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// MarshalJSON implements json.Marshaler.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Rank: string(c.rank), Suit: string(c.suit)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Card) UnmarshalJSON(data []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}

	rank, ok := parseRank(cj.Rank)
	if !ok {
		return fmt.Errorf("poker: invalid rank %q", cj.Rank)
	}
	suit, ok := parseSuit(cj.Suit)
	if !ok {
		return fmt.Errorf("poker: invalid suit %q", cj.Suit)
	}
	c.rank = rank
	c.suit = suit
	return nil
}

func parseRank(s string) (Rank, bool) {
	switch s {
	case "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A":
		return Rank(s), true
	case "T", "t":
		return Ten, true
	default:
		return "", false
	}
}

func parseSuit(s string) (Suit, bool) {
	switch s {
	case "♣", "c", "C", "clubs":
		return Clubs, true
	case "♦", "d", "D", "diamonds":
		return Diamonds, true
	case "♥", "h", "H", "hearts":
		return Hearts, true
	case "♠", "s", "S", "spades":
		return Spades, true
	default:
		return "", false
	}
}
