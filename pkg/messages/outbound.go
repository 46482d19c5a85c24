package messages

import "github.com/deckhand/tablesrv/pkg/poker"

// MsgType tags every outbound event, per spec.md §6: "JSON objects tagged
// by msg_type".
type MsgType string

const (
	MsgGameState    MsgType = "game_state"
	MsgNewHand      MsgType = "new_hand"
	MsgPrompt       MsgType = "prompt"
	MsgChat         MsgType = "chat"
	MsgPlayerLeft   MsgType = "player_left"
	MsgFinishHand   MsgType = "finish_hand"
	MsgAdminSuccess MsgType = "admin_success"
	MsgError        MsgType = "error"
	MsgTableInfo    MsgType = "table_info"
	MsgHelpMessage  MsgType = "help_message"
)

// ErrorCode enumerates the typed error codes of spec.md §6/§7.
type ErrorCode string

const (
	ErrInvalidAction        ErrorCode = "invalid_action"
	ErrNotAdmin             ErrorCode = "not_admin"
	ErrNotPrivate           ErrorCode = "not_private"
	ErrInvalidAdminCommand  ErrorCode = "invalid_admin_command"
	ErrUnableToAddBot       ErrorCode = "unable_to_add_bot"
	ErrUnableToRemoveBot    ErrorCode = "unable_to_remove_bot"
	ErrUnableToCreate       ErrorCode = "unable_to_create"
)

// SeatView is one seat's broadcastable state within a GameStateEvent.
type SeatView struct {
	Occupied      bool             `json:"occupied"`
	PlayerID      string           `json:"player_id,omitempty"`
	Name          string           `json:"name,omitempty"`
	Money         int64            `json:"money"`
	IsActive      bool             `json:"is_active"`
	IsSittingOut  bool             `json:"is_sitting_out"`
	IsAllIn       bool             `json:"is_all_in"`
	LastAction    string           `json:"last_action,omitempty"`
	Contributions map[string]int64 `json:"contributions,omitempty"`
}

// PotView summarizes one pot for broadcast (main pot plus any side pots
// once they have been constructed).
type PotView struct {
	Amount        int64 `json:"amount"`
	EligibleSeats []int `json:"eligible_seats"`
	AllInSeats    []int `json:"all_in_seats,omitempty"`
}

// GameStateEvent is the full per-recipient snapshot of spec.md §4.9: table
// fields, per-seat array, optional in-hand fields, and the personalized
// your_index/hole_cards — hole cards are never broadcast to other seats.
type GameStateEvent struct {
	Type MsgType `json:"msg_type"`

	TableName         string `json:"table_name"`
	SmallBlind        int64  `json:"small_blind"`
	BigBlind          int64  `json:"big_blind"`
	BuyIn             int64  `json:"buy_in"`
	PasswordProtected bool   `json:"password_protected"`
	ButtonIndex       int    `json:"button_index"`
	HandNum           int    `json:"hand_num"`
	GameSuspended     bool   `json:"game_suspended"`

	Seats [9]SeatView `json:"seats"`

	HandActive     bool         `json:"hand_active"`
	Street         string       `json:"street,omitempty"`
	CurrentBet     int64        `json:"current_bet,omitempty"`
	CommunityCards []poker.Card `json:"community_cards,omitempty"`
	Pots           []PotView    `json:"pots,omitempty"`
	IndexToAct     int          `json:"index_to_act"`

	YourIndex int          `json:"your_index"`
	HoleCards []poker.Card `json:"hole_cards,omitempty"`
}

// NewHandEvent announces a freshly dealt hand (spec.md §6).
type NewHandEvent struct {
	Type        MsgType `json:"msg_type"`
	HandNum     int     `json:"hand_num"`
	ButtonIndex int     `json:"button_index"`
}

func NewNewHandEvent(handNum, buttonIndex int) NewHandEvent {
	return NewHandEvent{Type: MsgNewHand, HandNum: handNum, ButtonIndex: buttonIndex}
}

// PromptEvent asks the acting client for a decision (spec.md §4.7).
type PromptEvent struct {
	Type       MsgType `json:"msg_type"`
	Prompt     string  `json:"prompt"`
	CurrentBet int64   `json:"current_bet"`
}

func NewPromptEvent(prompt string, currentBet int64) PromptEvent {
	return PromptEvent{Type: MsgPrompt, Prompt: prompt, CurrentBet: currentBet}
}

// ChatEvent fans out a chat message to every seat (spec.md §4.8).
type ChatEvent struct {
	Type       MsgType `json:"msg_type"`
	PlayerName string  `json:"player_name"`
	Text       string  `json:"text"`
}

func NewChatEvent(playerName, text string) ChatEvent {
	return ChatEvent{Type: MsgChat, PlayerName: playerName, Text: text}
}

// PlayerLeftEvent notifies remaining seats that a player left (spec.md §4.8).
type PlayerLeftEvent struct {
	Type MsgType `json:"msg_type"`
	Name string  `json:"name"`
}

func NewPlayerLeftEvent(name string) PlayerLeftEvent {
	return PlayerLeftEvent{Type: MsgPlayerLeft, Name: name}
}

// SettlementPayload is one payout line in a FinishHandEvent.
type SettlementPayload struct {
	Seat            int    `json:"seat"`
	Name            string `json:"name"`
	Amount          int64  `json:"amount"`
	HandDescription string `json:"hand_desc"`
}

// FinishHandEvent reports the settlements computed at the end of a hand
// (spec.md §4.5, §4.9).
type FinishHandEvent struct {
	Type        MsgType             `json:"msg_type"`
	Settlements []SettlementPayload `json:"settlements"`
}

func NewFinishHandEvent(settlements []SettlementPayload) FinishHandEvent {
	return FinishHandEvent{Type: MsgFinishHand, Settlements: settlements}
}

// AdminSuccessEvent confirms an admin command took effect (spec.md §4.8, §8
// scenario 6).
type AdminSuccessEvent struct {
	Type    MsgType `json:"msg_type"`
	Updated string  `json:"updated"`
	Text    string  `json:"text"`
}

func NewAdminSuccessEvent(updated, text string) AdminSuccessEvent {
	return AdminSuccessEvent{Type: MsgAdminSuccess, Updated: updated, Text: text}
}

// ErrorEvent is a typed, user-visible error delivered to the acting player
// only (spec.md §7).
type ErrorEvent struct {
	Type   MsgType   `json:"msg_type"`
	Error  ErrorCode `json:"error"`
	Reason string    `json:"reason"`
}

func NewErrorEvent(code ErrorCode, reason string) ErrorEvent {
	return ErrorEvent{Type: MsgError, Error: code, Reason: reason}
}

// TableInfoEvent answers a TableInfo meta-action directly (spec.md §4.8).
type TableInfoEvent struct {
	Type        MsgType `json:"msg_type"`
	TableName   string  `json:"table_name"`
	SmallBlind  int64   `json:"small_blind"`
	BigBlind    int64   `json:"big_blind"`
	BuyIn       int64   `json:"buy_in"`
	MaxPlayers  int     `json:"max_players"`
	NumHumans   int     `json:"num_humans"`
	NumBots     int     `json:"num_bots"`
}

// HelpMessageEvent lists the recognized admin/CLI commands (spec.md §6).
type HelpMessageEvent struct {
	Type     MsgType  `json:"msg_type"`
	Commands []string `json:"commands"`
}

func NewHelpMessageEvent(commands []string) HelpMessageEvent {
	return HelpMessageEvent{Type: MsgHelpMessage, Commands: commands}
}
