package table

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deckhand/tablesrv/pkg/messages"
	"github.com/deckhand/tablesrv/pkg/poker"
)

func TestValidateActionUpgradesFoldToCheckWhenNothingToCall(t *testing.T) {
	tb := newTestTable(t)
	tb.seatHuman(t, 0, "a", 500)

	hand := poker.NewGameHand()
	hand.Street = poker.Flop // CurrentBet is 0, contribution is 0

	valid, final := tb.validateAction(hand, 0, messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionFold})
	require.True(t, valid)
	require.Equal(t, poker.ActionCheck, final.Action, "folding when there is nothing to call is treated as a check")
}

func TestValidateActionKeepsFoldWhenFacingABet(t *testing.T) {
	tb := newTestTable(t)
	tb.seatHuman(t, 0, "a", 500)

	hand := poker.NewGameHand()
	hand.Street = poker.Flop
	hand.Contribute(1, 50, false)
	hand.CurrentBet = 50

	valid, final := tb.validateAction(hand, 0, messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionFold})
	require.True(t, valid)
	require.Equal(t, poker.ActionFold, final.Action)
}

func TestValidateActionRejectsCheckFacingABet(t *testing.T) {
	tb := newTestTable(t)
	tb.seatHuman(t, 0, "a", 500)

	hand := poker.NewGameHand()
	hand.Street = poker.Flop
	hand.CurrentBet = 50

	valid, _ := tb.validateAction(hand, 0, messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionCheck})
	require.False(t, valid)
}

func TestValidateActionRejectsCallWithNothingToCall(t *testing.T) {
	tb := newTestTable(t)
	tb.seatHuman(t, 0, "a", 500)

	hand := poker.NewGameHand()
	hand.Street = poker.Flop

	valid, _ := tb.validateAction(hand, 0, messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionCall})
	require.False(t, valid)
}

func TestValidateActionRejectsBetBeyondStack(t *testing.T) {
	tb := newTestTable(t)
	tb.seatHuman(t, 0, "a", 100)

	hand := poker.NewGameHand()
	hand.Street = poker.Flop

	valid, _ := tb.validateAction(hand, 0, messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionBet, Amount: 101})
	require.False(t, valid)
}

func TestValidateActionRejectsBetNotRaisingCurrentBet(t *testing.T) {
	tb := newTestTable(t)
	tb.seatHuman(t, 0, "a", 500)

	hand := poker.NewGameHand()
	hand.Street = poker.Flop
	hand.CurrentBet = 50

	valid, _ := tb.validateAction(hand, 0, messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionBet, Amount: 50})
	require.False(t, valid, "a bet must strictly exceed the current bet to be a raise")
}

func TestValidateActionAcceptsValidRaise(t *testing.T) {
	tb := newTestTable(t)
	tb.seatHuman(t, 0, "a", 500)

	hand := poker.NewGameHand()
	hand.Street = poker.Flop
	hand.CurrentBet = 50

	valid, final := tb.validateAction(hand, 0, messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionBet, Amount: 100})
	require.True(t, valid)
	require.Equal(t, int64(100), final.Amount)
}

func TestBotBetSizeShovesAtOrBelowOneHundred(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	require.Equal(t, int64(100), botBetSize(rng, 100))
	require.Equal(t, int64(37), botBetSize(rng, 37))
	require.Equal(t, int64(0), botBetSize(rng, 0))
}

func TestBotBetSizeStaysWithinHalfStackAboveOneHundred(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		size := botBetSize(rng, 1000)
		require.Greater(t, size, int64(0))
		require.LessOrEqual(t, size, int64(500))
	}
}

func TestBotActionDistributionStaysWithinDeclaredBuckets(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := &poker.Player{ID: "bot", Money: 1000}

	counts := map[poker.Action]int{}
	const n = 2000
	for i := 0; i < n; i++ {
		counts[botAction(rng, p).Action]++
	}

	require.InDelta(t, 0.21*n, float64(counts[poker.ActionFold]), 0.05*n)
	require.InDelta(t, 0.35*n, float64(counts[poker.ActionCheck]), 0.05*n)
	require.InDelta(t, 0.15*n, float64(counts[poker.ActionBet]), 0.05*n)
	require.InDelta(t, 0.29*n, float64(counts[poker.ActionCall]), 0.05*n)
}
