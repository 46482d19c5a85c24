package poker

import (
	"fmt"

	chehsunliu "github.com/chehsunliu/poker"
)

// HandCategory names the broad class of a ranked hand, for display only —
// ranking and tie-breaking is entirely carried by HandValue.Value.
type HandCategory int

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// HandValue is a totally ordered evaluation of a 5-7 card hand. Equal Value
// means an exact tie (split pot); a larger Value always beats a smaller one.
// Rank() isolates this ordering so the rest of the engine depends only on
// comparisons, never on the evaluation internals (spec.md §4.2).
type HandValue struct {
	Value       int64
	Category    HandCategory
	Description string
	Best        []Card
}

// Compare returns >0 if a beats b, <0 if b beats a, 0 on an exact tie.
func (a HandValue) Compare(b HandValue) int {
	switch {
	case a.Value > b.Value:
		return 1
	case a.Value < b.Value:
		return -1
	default:
		return 0
	}
}

// Rank evaluates 5 to 7 cards into a HandValue. It is a pure function: the
// rest of the engine is substitutable against any implementation with this
// signature (spec.md §4.2 rationale).
func Rank(cards []Card) (HandValue, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandValue{}, fmt.Errorf("poker: Rank needs 5-7 cards, got %d", len(cards))
	}

	converted := make([]chehsunliu.Card, 0, len(cards))
	for _, c := range cards {
		cc, err := toChehsunliu(c)
		if err != nil {
			return HandValue{}, err
		}
		converted = append(converted, cc)
	}

	raw := chehsunliu.Evaluate(converted)
	class := chehsunliu.RankClass(raw)
	desc := chehsunliu.RankString(raw)

	return HandValue{
		// chehsunliu.Evaluate is ascending-is-better (1 == royal/straight
		// flush); negate so our HandValue is descending-is-better, matching
		// the rest of the engine's "higher wins" convention.
		Value:       -int64(raw),
		Category:    categoryFromChehsunliu(class),
		Description: desc,
		Best:        bestFive(cards),
	}, nil
}

func toChehsunliu(c Card) (chehsunliu.Card, error) {
	var rankByte byte
	switch c.rank {
	case Two:
		rankByte = '2'
	case Three:
		rankByte = '3'
	case Four:
		rankByte = '4'
	case Five:
		rankByte = '5'
	case Six:
		rankByte = '6'
	case Seven:
		rankByte = '7'
	case Eight:
		rankByte = '8'
	case Nine:
		rankByte = '9'
	case Ten:
		rankByte = 'T'
	case Jack:
		rankByte = 'J'
	case Queen:
		rankByte = 'Q'
	case King:
		rankByte = 'K'
	case Ace:
		rankByte = 'A'
	default:
		return chehsunliu.Card(0), fmt.Errorf("poker: invalid rank %q", c.rank)
	}

	var suitByte byte
	switch c.suit {
	case Clubs:
		suitByte = 'c'
	case Diamonds:
		suitByte = 'd'
	case Hearts:
		suitByte = 'h'
	case Spades:
		suitByte = 's'
	default:
		return chehsunliu.Card(0), fmt.Errorf("poker: invalid suit %q", c.suit)
	}

	return chehsunliu.NewCard(string([]byte{rankByte, suitByte})), nil
}

func categoryFromChehsunliu(class int32) HandCategory {
	switch class {
	case 1:
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return Pair
	default:
		return HighCard
	}
}

// bestFive picks the 5-card combination, among the 5-7 given, with the
// highest Rank value, to fill HandValue.Best for display. finish_hand's
// hand_description comes from Description instead, and the settlement math
// itself only needs Rank's ordering.
func bestFive(cards []Card) []Card {
	if len(cards) <= 5 {
		return append([]Card{}, cards...)
	}

	best := append([]Card{}, cards[:5]...)
	bestVal, err := Rank(best)
	if err != nil {
		return best
	}

	var combo func(start int, chosen []Card)
	combo = func(start int, chosen []Card) {
		if len(chosen) == 5 {
			v, err := Rank(chosen)
			if err == nil && v.Compare(bestVal) > 0 {
				bestVal = v
				best = append([]Card{}, chosen...)
			}
			return
		}
		for i := start; i < len(cards); i++ {
			combo(i+1, append(chosen, cards[i]))
		}
	}
	combo(0, nil)

	return best
}
