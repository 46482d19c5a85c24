package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deckhand/tablesrv/pkg/poker"
)

func TestSeatPlayerFillsFirstFreeSlot(t *testing.T) {
	tb := newTestTable(t)
	idx, err := tb.SeatPlayer(poker.NewPlayer("a", 1000, true))
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	tb.seats[1] = poker.NewPlayer("occupied", 1000, true)
	idx, err = tb.SeatPlayer(poker.NewPlayer("b", 1000, true))
	require.NoError(t, err)
	require.Equal(t, 2, idx)

	require.Equal(t, 3, tb.OccupiedSeats())
	require.Equal(t, 0, tb.SeatIndex("a"))
	require.Equal(t, -1, tb.SeatIndex("nobody"))
}

func TestSeatPlayerRejectsWhenFull(t *testing.T) {
	tb := newTestTable(t)
	for i := 0; i < tb.MaxPlayers; i++ {
		tb.seats[i] = poker.NewPlayer("p", 1000, true)
	}
	_, err := tb.SeatPlayer(poker.NewPlayer("late", 1000, true))
	require.Error(t, err)
}

func TestConnectAssignsFreshIDWhenEmpty(t *testing.T) {
	tb := newTestTable(t)
	rec := &recorder{}

	id := tb.Connect("", rec)
	require.NotEmpty(t, id)

	cfg := tb.Config(id)
	require.NotNil(t, cfg)
	require.Same(t, rec, cfg.Recipient)
}

func TestConnectReattachKeepsExistingHeartBeat(t *testing.T) {
	tb := newTestTable(t)
	first := &recorder{}

	id := tb.Connect("", first)
	original := tb.Config(id).HeartBeat

	second := &recorder{}
	got := tb.Connect(id, second)

	require.Equal(t, id, got, "reattaching with a known id returns that same id")
	cfg := tb.Config(id)
	require.Same(t, second, cfg.Recipient, "reattach swaps in the new recipient")
	require.Equal(t, original, cfg.HeartBeat, "reattach does not reset the heart-beat clock")
}

func TestConnectWithUnknownIDCreatesConfig(t *testing.T) {
	tb := newTestTable(t)
	rec := &recorder{}

	got := tb.Connect("caller-supplied-id", rec)
	require.Equal(t, "caller-supplied-id", got)
	require.NotNil(t, tb.Config("caller-supplied-id"))
}
