package table

import (
	"github.com/google/uuid"

	"github.com/deckhand/tablesrv/pkg/lobby"
	"github.com/deckhand/tablesrv/pkg/messages"
	"github.com/deckhand/tablesrv/pkg/poker"
)

// handleMetaActions drains the meta-action FIFO's current snapshot and
// applies each one (spec.md §4.8). betweenHands selects whether admin
// commands may execute immediately or must be deferred to the next
// inter-hand boundary. hand is nil between hands.
func (t *Table) handleMetaActions(betweenHands bool, hand *poker.GameHand) {
	for _, action := range t.metaActions.DrainSnapshot() {
		switch action.Kind {
		case messages.MetaChat:
			t.handleChat(action)
		case messages.MetaJoin:
			t.handleJoin(action, hand)
		case messages.MetaLeave:
			t.handleLeave(action)
		case messages.MetaSetPlayerName:
			t.handleSetPlayerName(action)
		case messages.MetaSendPlayerName:
			t.handleSendPlayerName(action)
		case messages.MetaUpdateAddress:
			t.handleUpdateAddress(action, hand)
		case messages.MetaTableInfo:
			t.handleTableInfo(action)
		case messages.MetaImBack:
			t.handleImBack(action, hand)
		case messages.MetaSitOut:
			t.handleSitOut(action, hand)
		case messages.MetaAdmin:
			t.handleAdmin(action, betweenHands)
		}
	}
}

func (t *Table) playerName(id string) string {
	if cfg := t.configs[id]; cfg != nil && cfg.Name != "" {
		return cfg.Name
	}
	return id
}

func (t *Table) handleChat(action messages.MetaAction) {
	if cfg := t.configs[action.PlayerID]; cfg != nil {
		cfg.HeartBeat = t.clock.Now()
	}
	t.broadcast(messages.NewChatEvent(t.playerName(action.PlayerID), action.ChatText))
}

func (t *Table) handleJoin(action messages.MetaAction, hand *poker.GameHand) {
	cfg := action.JoinConfig
	if cfg == nil {
		return
	}

	if t.Password != "" && action.JoinPassword != t.Password {
		if t.lobby != nil {
			t.lobby.NotifyReturned(lobby.Returned{
				PlayerID: cfg.ID,
				Reason:   lobby.ReturnedJoinRejected,
				Detail:   "invalid or missing password",
			})
		}
		return
	}

	// Re-join is idempotent: re-insert the config and keep the existing
	// seat if one is still held.
	if cfg.HeartBeat.IsZero() {
		cfg.HeartBeat = t.clock.Now()
	}
	t.SetConfig(cfg)
	if t.SeatIndex(cfg.ID) == -1 {
		if _, err := t.SeatPlayer(poker.NewPlayer(cfg.ID, t.BuyIn, true)); err != nil {
			t.RemoveConfig(cfg.ID)
			if t.lobby != nil {
				t.lobby.NotifyReturned(lobby.Returned{
					PlayerID: cfg.ID,
					Reason:   lobby.ReturnedJoinRejected,
					Detail:   "table is full",
				})
			}
			return
		}
	}
	t.sendGameState(hand, hand == nil)
}

func (t *Table) handleLeave(action messages.MetaAction) {
	name := t.playerName(action.PlayerID)
	t.RemoveConfig(action.PlayerID)
	t.broadcast(messages.NewPlayerLeftEvent(name))
	if t.lobby != nil {
		t.lobby.NotifyReturned(lobby.Returned{PlayerID: action.PlayerID, Reason: lobby.ReturnedLeft})
	}
}

func (t *Table) handleSetPlayerName(action messages.MetaAction) {
	if cfg := t.configs[action.PlayerID]; cfg != nil {
		cfg.Name = action.NewName
	}
}

func (t *Table) handleSendPlayerName(action messages.MetaAction) {
	t.sendTo(action.PlayerID, playerNameEvent{
		Type:     "player_name",
		PlayerID: action.PlayerID,
		Name:     t.playerName(action.PlayerID),
	})
}

// playerNameEvent answers SendPlayerName; it has no separate home in
// spec.md's outbound-event table, which only requires that the name be
// "echoed via a personal event" (spec.md §4.8).
type playerNameEvent struct {
	Type     string `json:"msg_type"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

func (t *Table) handleUpdateAddress(action messages.MetaAction, hand *poker.GameHand) {
	cfg := t.configs[action.PlayerID]
	if cfg == nil {
		return
	}
	cfg.Recipient = action.NewRecipient
	t.sendGameState(hand, hand == nil)
}

func (t *Table) handleTableInfo(action messages.MetaAction) {
	if action.TableInfoRecipient == nil {
		return
	}
	humans, bots := 0, 0
	for _, p := range t.seats {
		if p == nil {
			continue
		}
		if p.HumanControlled {
			humans++
		} else {
			bots++
		}
	}
	action.TableInfoRecipient.Send(messages.TableInfoEvent{
		Type:       messages.MsgTableInfo,
		TableName:  t.Name,
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
		BuyIn:      t.BuyIn,
		MaxPlayers: t.MaxPlayers,
		NumHumans:  humans,
		NumBots:    bots,
	})
}

func (t *Table) handleImBack(action messages.MetaAction, hand *poker.GameHand) {
	idx := t.SeatIndex(action.PlayerID)
	if idx == -1 {
		return
	}
	t.seats[idx].IsSittingOut = false
	if cfg := t.configs[action.PlayerID]; cfg != nil {
		cfg.HeartBeat = t.clock.Now()
	}
	t.sendGameState(hand, hand == nil)
}

func (t *Table) handleSitOut(action messages.MetaAction, hand *poker.GameHand) {
	idx := t.SeatIndex(action.PlayerID)
	if idx == -1 {
		return
	}
	t.seats[idx].IsSittingOut = true
	t.sendGameState(hand, hand == nil)
}

// handleAdmin validates and applies an admin command (spec.md §4.8, §6, §8
// scenario 6). Admin commands received mid-hand are deferred to the next
// inter-hand boundary by re-enqueueing to the tail.
func (t *Table) handleAdmin(action messages.MetaAction, betweenHands bool) {
	if !betweenHands {
		t.metaActions.PushBack(action)
		return
	}

	if action.PlayerID != t.AdminID {
		t.sendTo(action.PlayerID, messages.NewErrorEvent(messages.ErrNotAdmin, "only the table admin may run this command"))
		return
	}
	if t.Password == "" {
		t.sendTo(action.PlayerID, messages.NewErrorEvent(messages.ErrNotPrivate, "admin commands require a private (password-protected) table"))
		return
	}

	cmd := action.Admin
	switch cmd.Kind {
	case messages.AdminSmallBlind:
		t.SmallBlind = cmd.Value
	case messages.AdminBigBlind:
		t.BigBlind = cmd.Value
	case messages.AdminBuyIn:
		t.BuyIn = cmd.Value
	case messages.AdminSetPassword:
		t.Password = cmd.Text
	case messages.AdminShowPassword:
		t.sendTo(action.PlayerID, messages.NewAdminSuccessEvent("password", t.Password))
		return
	case messages.AdminAddBot:
		bot := poker.NewPlayer(uuid.NewString(), t.BuyIn, false)
		if _, err := t.SeatPlayer(bot); err != nil {
			t.sendTo(action.PlayerID, messages.NewErrorEvent(messages.ErrUnableToAddBot, err.Error()))
			return
		}
	case messages.AdminRemoveBot:
		removed := false
		for i, p := range t.seats {
			if p != nil && !p.HumanControlled {
				t.seats[i] = nil
				removed = true
				break
			}
		}
		if !removed {
			t.sendTo(action.PlayerID, messages.NewErrorEvent(messages.ErrUnableToRemoveBot, "no bot seated at this table"))
			return
		}
	case messages.AdminRestart:
		for _, p := range t.seats {
			if p != nil {
				p.Money = t.BuyIn
			}
		}
	default:
		t.sendTo(action.PlayerID, messages.NewErrorEvent(messages.ErrInvalidAdminCommand, "unrecognized admin command"))
		return
	}

	t.sendTo(action.PlayerID, messages.NewAdminSuccessEvent(cmd.Kind.String(), "ok"))
	t.sendGameState(nil, false)
}
