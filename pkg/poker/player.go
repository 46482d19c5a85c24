package poker

import "time"

// Action is a player's decision for the current turn (spec.md §6).
type Action int

const (
	ActionNone Action = iota
	ActionPostSmallBlind
	ActionPostBigBlind
	ActionFold
	ActionCheck
	ActionCall
	ActionBet
	ActionSitOut
)

func (a Action) String() string {
	switch a {
	case ActionPostSmallBlind:
		return "post_small_blind"
	case ActionPostBigBlind:
		return "post_big_blind"
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionSitOut:
		return "sit_out"
	default:
		return "none"
	}
}

// PlayerAction pairs an Action with its chip amount (meaningful only for
// blinds and bets).
type PlayerAction struct {
	Action Action
	Amount int64
}

// Player is seat-bound state (spec.md §3). Invariants: Money >= 0,
// IsAllIn() <=> IsActive && Money == 0, len(HoleCards) is 0 or 2.
type Player struct {
	ID              string
	HoleCards       []Card
	IsActive        bool
	IsSittingOut    bool
	Money           int64
	HumanControlled bool
	LastAction      PlayerAction
}

// NewPlayer creates a seated player with the given starting stack.
func NewPlayer(id string, money int64, humanControlled bool) *Player {
	return &Player{
		ID:              id,
		HoleCards:       make([]Card, 0, 2),
		IsActive:        true,
		Money:           money,
		HumanControlled: humanControlled,
	}
}

// IsAllIn reports whether the player is still in the hand with no chips
// left behind.
func (p *Player) IsAllIn() bool {
	return p.IsActive && p.Money == 0
}

// Deactivate marks the player as out of the current hand (folded or sat
// out mid-hand).
func (p *Player) Deactivate() {
	p.IsActive = false
}

// Pay adds chips won from a settlement to the player's stack.
func (p *Player) Pay(amount int64) {
	p.Money += amount
}

// ClearHoleCards removes the player's cards at the end of a hand. Hole
// cards are never broadcast to other seats (spec.md §4.9).
func (p *Player) ClearHoleCards() {
	p.HoleCards = p.HoleCards[:0]
}

// PlayerConfig is identity/connection state, independent of whether the
// player currently holds a seat (spec.md §3).
type PlayerConfig struct {
	ID        string
	Name      string
	Recipient Recipient
	HeartBeat time.Time // last observed command activity
	LastPing  time.Time // last observed transport ping
}

// Recipient is the send-only outbound channel for one connected client. A
// full or closed recipient is ignored, never surfaced as an error
// (spec.md §5).
type Recipient interface {
	Send(event any) bool
}
