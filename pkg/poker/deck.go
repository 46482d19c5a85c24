package poker

import "math/rand"

// Deck is the contract both Table and GameHand program against: shuffle
// uniformly permutes the 52 cards and resets the draw cursor; draw advances
// it. Drawing past the end reports ok=false, which the table engine treats
// as a fatal invariant violation (spec.md §4.1, §5).
type Deck interface {
	Shuffle()
	Draw() (Card, bool)
	Remaining() int
}

// StandardDeck is a PRNG-shuffled 52-card deck.
type StandardDeck struct {
	cards  [52]Card
	cursor int
	rng    *rand.Rand
}

// NewStandardDeck builds a freshly shuffled 52-card deck using rng. Pass a
// seeded *rand.Rand for deterministic games (spec.md §4.1).
func NewStandardDeck(rng *rand.Rand) *StandardDeck {
	d := &StandardDeck{rng: rng}
	i := 0
	for _, s := range allSuits {
		for _, r := range allRanks {
			d.cards[i] = Card{rank: r, suit: s}
			i++
		}
	}
	d.Shuffle()
	return d
}

// Shuffle uniformly permutes the deck and resets the cursor to 0.
func (d *StandardDeck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	d.cursor = 0
}

// Draw returns the next card and advances the cursor, or ok=false if the
// deck is exhausted.
func (d *StandardDeck) Draw() (Card, bool) {
	if d.cursor >= len(d.cards) {
		return Card{}, false
	}
	c := d.cards[d.cursor]
	d.cursor++
	return c, true
}

// Remaining reports how many cards are left to draw.
func (d *StandardDeck) Remaining() int {
	return len(d.cards) - d.cursor
}

// RiggedDeck is a test-only deck that deals a predetermined sequence of
// cards (spec.md §4.1). Shuffle is a no-op: the sequence is fixed by the
// test author, not randomized.
type RiggedDeck struct {
	sequence []Card
	cursor   int
}

// NewRiggedDeck builds a deck that deals exactly sequence, in order, then
// reports exhausted.
func NewRiggedDeck(sequence []Card) *RiggedDeck {
	return &RiggedDeck{sequence: sequence}
}

// Shuffle resets the cursor without reordering anything.
func (d *RiggedDeck) Shuffle() {
	d.cursor = 0
}

// Draw returns the next card in the rigged sequence.
func (d *RiggedDeck) Draw() (Card, bool) {
	if d.cursor >= len(d.sequence) {
		return Card{}, false
	}
	c := d.sequence[d.cursor]
	d.cursor++
	return c, true
}

// Remaining reports how many rigged cards are left.
func (d *RiggedDeck) Remaining() int {
	return len(d.sequence) - d.cursor
}
