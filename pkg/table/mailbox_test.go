package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deckhand/tablesrv/pkg/messages"
	"github.com/deckhand/tablesrv/pkg/poker"
)

func TestActionMailboxLastWriteWins(t *testing.T) {
	m := NewActionMailbox()
	m.Push(messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionCheck})
	m.Push(messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionFold})

	got, ok := m.Take("a")
	require.True(t, ok)
	require.Equal(t, poker.ActionFold, got.Action, "the later push replaces the earlier one")

	_, ok = m.Take("a")
	require.False(t, ok, "Take removes the entry")
}

func TestActionMailboxTakeMissingPlayer(t *testing.T) {
	m := NewActionMailbox()
	_, ok := m.Take("nobody")
	require.False(t, ok)
}

func TestActionMailboxClear(t *testing.T) {
	m := NewActionMailbox()
	m.Push(messages.PlayerActionMessage{PlayerID: "a", Action: poker.ActionCheck})
	m.Push(messages.PlayerActionMessage{PlayerID: "b", Action: poker.ActionCheck})
	m.Clear()

	_, ok := m.Take("a")
	require.False(t, ok)
	_, ok = m.Take("b")
	require.False(t, ok)
}

func TestMetaQueueFIFOOrder(t *testing.T) {
	q := NewMetaQueue()
	q.PushBack(messages.MetaAction{Kind: messages.MetaJoin, PlayerID: "a"})
	q.PushBack(messages.MetaAction{Kind: messages.MetaJoin, PlayerID: "b"})
	q.PushBack(messages.MetaAction{Kind: messages.MetaLeave, PlayerID: "a"})

	items := q.DrainSnapshot()
	require.Len(t, items, 3)
	require.Equal(t, "a", items[0].PlayerID)
	require.Equal(t, "b", items[1].PlayerID)
	require.Equal(t, messages.MetaLeave, items[2].Kind)
}

func TestMetaQueueDrainSnapshotDefersAppendsMidProcessing(t *testing.T) {
	q := NewMetaQueue()
	q.PushBack(messages.MetaAction{Kind: messages.MetaJoin, PlayerID: "a"})
	q.PushBack(messages.MetaAction{Kind: messages.MetaJoin, PlayerID: "b"})

	snap := q.DrainSnapshot()
	require.Len(t, snap, 2, "only the two items present at call time are drained")

	for range snap {
		q.PushBack(messages.MetaAction{Kind: messages.MetaLeave, PlayerID: "late"})
	}

	next := q.DrainSnapshot()
	require.Len(t, next, 2, "appends made while processing the first snapshot land in the next one")
	for _, a := range next {
		require.Equal(t, "late", a.PlayerID)
	}
}

func TestMetaQueueEmptyDrainReturnsNil(t *testing.T) {
	q := NewMetaQueue()
	require.Nil(t, q.DrainSnapshot())
}
