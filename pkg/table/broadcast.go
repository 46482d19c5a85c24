package table

import (
	"github.com/deckhand/tablesrv/pkg/messages"
	"github.com/deckhand/tablesrv/pkg/poker"
)

// sendGameState assembles a per-recipient snapshot and sends it to every
// seat with a live recipient (spec.md §4.9). hand may be nil between
// hands, in which case suspended should be true if the table cannot
// currently play.
func (t *Table) sendGameState(hand *poker.GameHand, suspended bool) {
	var seatViews [poker.NumSeats]messages.SeatView
	for i, p := range t.seats {
		if p == nil {
			continue
		}
		cfg := t.configs[p.ID]
		name := p.ID
		if cfg != nil && cfg.Name != "" {
			name = cfg.Name
		}
		view := messages.SeatView{
			Occupied:     true,
			PlayerID:     p.ID,
			Name:         name,
			Money:        p.Money,
			IsActive:     p.IsActive,
			IsSittingOut: p.IsSittingOut,
			IsAllIn:      p.IsAllIn(),
			LastAction:   p.LastAction.Action.String(),
		}
		if hand != nil {
			contrib := make(map[string]int64, poker.ShowDown)
			for s := poker.Preflop; s <= poker.River; s++ {
				if amt := hand.StreetContributions[s][i]; amt != 0 {
					contrib[s.String()] = amt
				}
			}
			view.Contributions = contrib
		}
		seatViews[i] = view
	}

	ev := messages.GameStateEvent{
		Type:              messages.MsgGameState,
		TableName:         t.Name,
		SmallBlind:        t.SmallBlind,
		BigBlind:          t.BigBlind,
		BuyIn:             t.BuyIn,
		PasswordProtected: t.Password != "",
		ButtonIndex:       t.ButtonIdx,
		HandNum:           t.HandNum,
		GameSuspended:     suspended,
		Seats:             seatViews,
		IndexToAct:        -1,
	}

	if hand != nil {
		ev.HandActive = true
		ev.Street = hand.Street.String()
		ev.CurrentBet = hand.CurrentBet
		ev.CommunityCards = hand.CommunityCards()
		ev.IndexToAct = hand.IndexToAct

		for _, pot := range hand.PotBreakdown(t.seats) {
			ev.Pots = append(ev.Pots, messages.PotView{Amount: pot.Amount, EligibleSeats: pot.EligibleSeats, AllInSeats: pot.AllInSeats})
		}
	}

	for i, p := range t.seats {
		if p == nil {
			continue
		}
		cfg := t.configs[p.ID]
		if cfg == nil || cfg.Recipient == nil {
			continue
		}
		personal := ev
		personal.YourIndex = i
		// Hole cards are never broadcast to other seats (spec.md §4.9).
		personal.HoleCards = append([]poker.Card{}, p.HoleCards...)
		cfg.Recipient.Send(personal)
	}
}

// broadcast sends ev to every seat with a live recipient.
func (t *Table) broadcast(ev any) {
	for _, p := range t.seats {
		if p == nil {
			continue
		}
		cfg := t.configs[p.ID]
		if cfg == nil || cfg.Recipient == nil {
			continue
		}
		cfg.Recipient.Send(ev)
	}
}

// sendTo sends ev to a single player's recipient, if live.
func (t *Table) sendTo(playerID string, ev any) {
	cfg := t.configs[playerID]
	if cfg == nil || cfg.Recipient == nil {
		return
	}
	cfg.Recipient.Send(ev)
}
