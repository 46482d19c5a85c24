package table

import (
	"sync"

	"github.com/deckhand/tablesrv/pkg/messages"
)

// ActionMailbox is the player-action inbox of spec.md §5: a mapping from
// player id to the latest pending action. Later writes overwrite earlier
// ones — the UI never enqueues more than one pending action per player.
type ActionMailbox struct {
	mu      sync.Mutex
	pending map[string]messages.PlayerActionMessage
}

// NewActionMailbox returns an empty mailbox.
func NewActionMailbox() *ActionMailbox {
	return &ActionMailbox{pending: make(map[string]messages.PlayerActionMessage)}
}

// Push records msg as playerID's latest pending action, replacing whatever
// was pending before.
func (m *ActionMailbox) Push(msg messages.PlayerActionMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[msg.PlayerID] = msg
}

// Take removes and returns playerID's pending action, if any.
func (m *ActionMailbox) Take(playerID string) (messages.PlayerActionMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.pending[playerID]
	if ok {
		delete(m.pending, playerID)
	}
	return msg, ok
}

// Clear drops every pending entry. Called between hands to discard stale
// mailbox entries left over from the previous hand (spec.md §4.5 step 3).
func (m *ActionMailbox) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = make(map[string]messages.PlayerActionMessage)
}

// MetaQueue is the ordered FIFO of spec.md §5: meta-actions preserve
// arrival order so join/leave/admin semantics stay causal.
type MetaQueue struct {
	mu    sync.Mutex
	items []messages.MetaAction
}

// NewMetaQueue returns an empty queue.
func NewMetaQueue() *MetaQueue {
	return &MetaQueue{}
}

// PushBack appends a to the tail of the queue. Used by external writers and
// by the driver itself for deferred admin commands and self-timeouts
// (spec.md §5).
func (q *MetaQueue) PushBack(a messages.MetaAction) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, a)
}

// DrainSnapshot removes and returns exactly the items present at the
// moment of the call (its length is captured before any processing runs),
// so items a handler appends while processing this snapshot are deferred
// to the next call (spec.md §4.8).
func (q *MetaQueue) DrainSnapshot() []messages.MetaAction {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items)
	if n == 0 {
		return nil
	}
	snap := make([]messages.MetaAction, n)
	copy(snap, q.items[:n])
	q.items = q.items[n:]
	return snap
}
