// Package messages holds the typed inbound commands and outbound events
// that cross the boundary between the table engine and its external
// collaborators — the transport layer and the lobby/hub (spec.md §1, §6).
// Framing, ping/pong, and JSON parsing themselves stay out of scope; this
// package only fixes the vocabulary both sides agree on.
package messages

import "github.com/deckhand/tablesrv/pkg/poker"

// Connect attaches (or reattaches) id's outbound recipient. The engine
// returns the id it assigned, which is the same id unless none was
// supplied (spec.md §6).
type Connect struct {
	ID        string
	Recipient poker.Recipient
}

// PlayerActionMessage is a betting decision for the seat PlayerID owns.
// Amount is meaningful only for Bet.
type PlayerActionMessage struct {
	PlayerID string
	Action   poker.Action
	Amount   int64
}

// MetaActionKind distinguishes control-plane events (spec.md §4.8).
type MetaActionKind int

const (
	MetaChat MetaActionKind = iota
	MetaJoin
	MetaLeave
	MetaSetPlayerName
	MetaSendPlayerName
	MetaUpdateAddress
	MetaTableInfo
	MetaImBack
	MetaSitOut
	MetaAdmin
)

// AdminCommandKind enumerates the admin sub-commands of spec.md §4.8 / §6.
type AdminCommandKind int

const (
	AdminSmallBlind AdminCommandKind = iota
	AdminBigBlind
	AdminBuyIn
	AdminSetPassword
	AdminShowPassword
	AdminAddBot
	AdminRemoveBot
	AdminRestart
)

func (k AdminCommandKind) String() string {
	switch k {
	case AdminSmallBlind:
		return "small_blind"
	case AdminBigBlind:
		return "big_blind"
	case AdminBuyIn:
		return "buy_in"
	case AdminSetPassword:
		return "set_password"
	case AdminShowPassword:
		return "show_password"
	case AdminAddBot:
		return "add_bot"
	case AdminRemoveBot:
		return "remove_bot"
	case AdminRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// AdminCommand is one admin sub-command, mapped from the CLI-style textual
// commands of spec.md §6 (`/small_blind N`, `/set_password S`, ...).
type AdminCommand struct {
	Kind  AdminCommandKind
	Value int64
	Text  string
}

// MetaAction is one control-plane event accepted into the table's ordered
// FIFO (spec.md §4.8). Exactly the fields relevant to Kind are populated.
type MetaAction struct {
	Kind     MetaActionKind
	PlayerID string

	ChatText           string
	JoinConfig         *poker.PlayerConfig
	JoinPassword       string
	NewName            string
	NewRecipient       poker.Recipient
	TableInfoRecipient poker.Recipient
	Admin              AdminCommand
}
