// Package table implements the per-table game engine: the hand/street
// state machine, pot settlement, the control-plane of meta-actions, and
// the session-liveness sweep (spec.md §1, component C4).
package table

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/coder/quartz"
	"github.com/decred/slog"
	"github.com/google/uuid"

	"github.com/deckhand/tablesrv/pkg/config"
	"github.com/deckhand/tablesrv/pkg/lobby"
	"github.com/deckhand/tablesrv/pkg/poker"
)

// nonHumanHandsLimit is NON_HUMAN_HANDS_LIMIT of spec.md §4.4: a table with
// no human seats for this many consecutive hands shuts itself down.
const nonHumanHandsLimit = 3

// Table is a fixed-size, 9-seat poker table and the single driver that
// owns it. Every field below is touched only by the driver goroutine
// running Run; the two inboxes (actions, metaActions) are the only
// concurrency surface (spec.md §5).
type Table struct {
	Name       string
	MaxPlayers int
	SmallBlind int64
	BigBlind   int64
	BuyIn      int64
	Password   string
	AdminID    string
	ButtonIdx  int
	HandNum    int

	seats   [poker.NumSeats]*poker.Player
	configs map[string]*poker.PlayerConfig

	deck poker.Deck
	hand *poker.GameHand

	actions     *ActionMailbox
	metaActions *MetaQueue

	timing config.Timing
	clock  quartz.Clock
	log    slog.Logger
	lobby  lobby.Sink

	rng *rand.Rand

	nonHumanHands int
	handLimit     int // 0 means unlimited (spec.md §4.4 play(hand_limit?))
}

// New builds a Table from cfg. log and sink may not be nil; clock defaults
// to quartz.NewReal() when nil.
func New(cfg config.TableConfig, timing config.Timing, log slog.Logger, sink lobby.Sink, clock quartz.Clock) *Table {
	if clock == nil {
		clock = quartz.NewReal()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	adminID := cfg.AdminID
	t := &Table{
		Name:        cfg.Name,
		MaxPlayers:  cfg.MaxPlayers,
		SmallBlind:  cfg.SmallBlind,
		BigBlind:    cfg.BigBlind,
		BuyIn:       cfg.BuyIn,
		Password:    cfg.Password,
		AdminID:     adminID,
		ButtonIdx:   0,
		HandNum:     1,
		configs:     make(map[string]*poker.PlayerConfig),
		deck:        poker.NewStandardDeck(rng),
		actions:     NewActionMailbox(),
		metaActions: NewMetaQueue(),
		timing:      timing,
		clock:       clock,
		log:         log,
		lobby:       sink,
		rng:         rng,
	}
	if cfg.HandLimit > 0 {
		t.handLimit = cfg.HandLimit
	}
	return t
}

// Actions returns the table's player-action mailbox, the inbox external
// writers push PlayerActionMessage into (spec.md §5).
func (t *Table) Actions() *ActionMailbox { return t.actions }

// MetaActions returns the table's meta-action FIFO (spec.md §5).
func (t *Table) MetaActions() *MetaQueue { return t.metaActions }

// SeatPlayer seats a new Player at the first free slot, returning its seat
// index. Used by the Join meta-action handler (spec.md §4.8).
func (t *Table) SeatPlayer(p *poker.Player) (int, error) {
	for i := 0; i < t.MaxPlayers && i < poker.NumSeats; i++ {
		if t.seats[i] == nil {
			t.seats[i] = p
			return i, nil
		}
	}
	return -1, fmt.Errorf("table: no free seat")
}

// SeatIndex returns the seat index occupied by playerID, or -1.
func (t *Table) SeatIndex(playerID string) int {
	for i, p := range t.seats {
		if p != nil && p.ID == playerID {
			return i
		}
	}
	return -1
}

// OccupiedSeats counts non-nil seats.
func (t *Table) OccupiedSeats() int {
	n := 0
	for _, p := range t.seats {
		if p != nil {
			n++
		}
	}
	return n
}

// PlayerAt returns the seated player at i, or nil.
func (t *Table) PlayerAt(i int) *poker.Player {
	if i < 0 || i >= poker.NumSeats {
		return nil
	}
	return t.seats[i]
}

// Config returns playerID's connection state, or nil if absent.
func (t *Table) Config(playerID string) *poker.PlayerConfig {
	return t.configs[playerID]
}

// SetConfig installs or replaces playerID's connection state.
func (t *Table) SetConfig(cfg *poker.PlayerConfig) {
	t.configs[cfg.ID] = cfg
}

// Connect attaches (or reattaches) id's outbound recipient, assigning a
// fresh id via uuid.NewString() when id is empty, and returns the id the
// caller should use for every subsequent command (spec.md §6
// `Connect{id, recipient}`). A reattach (id already known) keeps the
// existing heart-beat rather than resetting it, so a brief reconnect
// doesn't buy extra time against the player timeout.
func (t *Table) Connect(id string, recipient poker.Recipient) string {
	if id == "" {
		id = uuid.NewString()
	}

	if cfg := t.configs[id]; cfg != nil {
		cfg.Recipient = recipient
		return id
	}

	t.configs[id] = &poker.PlayerConfig{ID: id, Recipient: recipient, HeartBeat: t.clock.Now()}
	return id
}

// RemoveConfig removes playerID's connection state. The seated Player, if
// any, survives until the next sweep point — the two-phase removal
// spec.md §9 calls load-bearing.
func (t *Table) RemoveConfig(playerID string) {
	delete(t.configs, playerID)
}

// sweepAbsentConfigs drops every seated Player whose PlayerConfig has
// disappeared (left or heart-beat evicted). Called between hands
// (spec.md §4.4) and is the seat-array-mutating half of the two-phase
// removal described in spec.md §9.
func (t *Table) sweepAbsentConfigs() {
	for i, p := range t.seats {
		if p == nil {
			continue
		}
		if _, ok := t.configs[p.ID]; !ok {
			t.seats[i] = nil
		}
	}
}
