package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardDeckHas52UniqueCards(t *testing.T) {
	d := NewStandardDeck(rand.New(rand.NewSource(1)))
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool, 52)
	for {
		c, ok := d.Draw()
		if !ok {
			break
		}
		require.False(t, seen[c], "duplicate card drawn: %v", c)
		seen[c] = true
	}
	require.Len(t, seen, 52)
	require.Equal(t, 0, d.Remaining())
}

func TestStandardDeckSameSeedSameOrder(t *testing.T) {
	a := NewStandardDeck(rand.New(rand.NewSource(7)))
	b := NewStandardDeck(rand.New(rand.NewSource(7)))

	for i := 0; i < 52; i++ {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		require.Equal(t, ca, cb)
	}
}

func TestStandardDeckReshuffleResetsCursor(t *testing.T) {
	d := NewStandardDeck(rand.New(rand.NewSource(3)))
	d.Draw()
	d.Draw()
	require.Equal(t, 50, d.Remaining())

	d.Shuffle()
	require.Equal(t, 52, d.Remaining())
}

func TestRiggedDeckDealsExactSequence(t *testing.T) {
	seq := []Card{NewCard(Ace, Spades), NewCard(King, Spades)}
	d := NewRiggedDeck(seq)

	c1, ok := d.Draw()
	require.True(t, ok)
	require.Equal(t, seq[0], c1)

	c2, ok := d.Draw()
	require.True(t, ok)
	require.Equal(t, seq[1], c2)

	_, ok = d.Draw()
	require.False(t, ok)
}
