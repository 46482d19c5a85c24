package table

import (
	"context"
	"time"

	"github.com/deckhand/tablesrv/pkg/messages"
	"github.com/deckhand/tablesrv/pkg/poker"
	"github.com/deckhand/tablesrv/pkg/statemachine"
)

// Run is the table's single driver loop (spec.md §4.4): between hands it
// drains meta-actions, sweeps dead sessions, checks the shutdown
// conditions, plays one hand, advances the button and hand number when a
// hand was dealt, and notifies the lobby
// once the table can no longer continue. It returns when ctx is cancelled
// or a shutdown condition is met; it is meant to run as the table's sole
// goroutine (spec.md §5).
func (t *Table) Run(ctx context.Context) {
	for ctx.Err() == nil {
		t.handleMetaActions(true, nil)
		t.sweepHeartBeats()
		t.sweepAbsentConfigs()

		if t.handLimit > 0 && t.HandNum > t.handLimit {
			break
		}

		if t.hasHumanSeat() {
			t.nonHumanHands = 0
		} else {
			t.nonHumanHands++
			if t.nonHumanHands >= nonHumanHandsLimit {
				break
			}
		}

		// playOneHand deals only when at least two seats hold chips; the
		// button and hand number advance only for a hand that was dealt.
		playable := 0
		for _, p := range t.seats {
			if p != nil && p.Money > 0 {
				playable++
			}
		}
		t.playOneHand(ctx)

		if playable >= 2 {
			if next, ok := t.findNextButton(); ok {
				t.ButtonIdx = next
			}
			t.HandNum++
		}
		t.sendGameState(nil, false)

		if ctx.Err() != nil {
			break
		}
		t.clock.Sleep(t.timing.InterHandPause)
	}

	if t.lobby != nil {
		t.lobby.NotifyGameOver(t.Name)
	}
}

func (t *Table) hasHumanSeat() bool {
	for _, p := range t.seats {
		if p != nil && p.HumanControlled && !p.IsSittingOut {
			return true
		}
	}
	return false
}

// findNextButton scans circularly from the current button for the next
// seat still able to play (spec.md §4.4). ok is false when no such seat
// exists, in which case the button does not move.
func (t *Table) findNextButton() (int, bool) {
	for i := 1; i <= poker.NumSeats; i++ {
		seat := (t.ButtonIdx + i) % poker.NumSeats
		p := t.seats[seat]
		if p != nil && !p.IsSittingOut && p.Money > 0 {
			return seat, true
		}
	}
	return t.ButtonIdx, false
}

// playOneHand runs a single hand end to end (spec.md §4.5): mark active
// seats, bail out (suspended) if fewer than two can play, deal, run each
// street, and settle. The street-by-street flow itself is driven by a
// statemachine.Machine over the hand, the same state-function pattern the
// teacher uses for its own game and player lifecycles.
func (t *Table) playOneHand(ctx context.Context) {
	for _, p := range t.seats {
		if p == nil {
			continue
		}
		// Sitting-out seats with chips are dealt in: they still post their
		// blinds, then sit out at their next turn.
		p.IsActive = p.Money > 0
	}

	if len(t.activeSeats()) < 2 {
		t.sendGameState(nil, true)
		return
	}

	t.actions.Clear()

	hand := poker.NewGameHand()
	t.hand = hand
	t.runHand(ctx, hand)
	t.hand = nil
}

// handStateFn is one state of a hand's progression through the streets.
type handStateFn = statemachine.StateFn[poker.GameHand]

// runHand drives hand from dealing through showdown, one street-state per
// Step, stopping early if ctx is cancelled between states.
func (t *Table) runHand(ctx context.Context, hand *poker.GameHand) {
	cb := func(state string, event statemachine.Event) {
		verb := "entering"
		if event == statemachine.Exited {
			verb = "leaving"
		}
		t.log.Debugf("table %s: %s street state %s", t.Name, verb, state)
	}

	m := statemachine.New(hand, t.stateDeal)
	for m.Alive() && ctx.Err() == nil {
		m.Step(cb)
	}
}

func (t *Table) stateDeal(hand *poker.GameHand, cb statemachine.Callback) handStateFn {
	cb("DEAL", statemachine.Entered)
	t.dealHoleCards()
	t.broadcast(messages.NewNewHandEvent(t.HandNum, t.ButtonIdx))
	cb("DEAL", statemachine.Exited)
	return t.statePreflop
}

func (t *Table) statePreflop(hand *poker.GameHand, cb statemachine.Callback) handStateFn {
	return t.runStreet(hand, cb, "PRE_FLOP", poker.Preflop, poker.Flop, t.stateFlop)
}

func (t *Table) stateFlop(hand *poker.GameHand, cb statemachine.Callback) handStateFn {
	return t.runStreet(hand, cb, "FLOP", poker.Flop, poker.Turn, t.stateTurn)
}

func (t *Table) stateTurn(hand *poker.GameHand, cb statemachine.Callback) handStateFn {
	return t.runStreet(hand, cb, "TURN", poker.Turn, poker.River, t.stateRiver)
}

func (t *Table) stateRiver(hand *poker.GameHand, cb statemachine.Callback) handStateFn {
	return t.runStreet(hand, cb, "RIVER", poker.River, poker.ShowDown, t.stateShowdown)
}

// runStreet plays one betting round, advances to the next street's
// community cards when more than one seat remains, and jumps straight to
// showdown the moment only one seat is left standing.
func (t *Table) runStreet(hand *poker.GameHand, cb statemachine.Callback, name string, street, next poker.Street, nextState handStateFn) handStateFn {
	cb(name, statemachine.Entered)
	hand.Street = street
	t.playStreet(hand)
	cb(name, statemachine.Exited)

	if len(t.activeSeats()) <= 1 {
		return t.stateShowdown
	}
	if next <= poker.River {
		t.dealCommunity(hand, next)
		t.sendGameState(hand, false)
		t.clock.Sleep(t.timing.InterStreetPause)
	}
	return nextState
}

func (t *Table) stateShowdown(hand *poker.GameHand, cb statemachine.Callback) handStateFn {
	cb("SHOWDOWN", statemachine.Entered)
	t.finishHand(hand)
	cb("SHOWDOWN", statemachine.Exited)
	return nil
}

// activeSeats returns every seat index still in the current hand (dealt
// in, not folded or sat out).
func (t *Table) activeSeats() []int {
	var out []int
	for i, p := range t.seats {
		if p != nil && p.IsActive {
			out = append(out, i)
		}
	}
	return out
}

// activeSeatsOrdered returns the active seats in circular order starting
// at start.
func (t *Table) activeSeatsOrdered(start int) []int {
	var out []int
	for i := 0; i < poker.NumSeats; i++ {
		seat := (start + i) % poker.NumSeats
		if p := t.seats[seat]; p != nil && p.IsActive {
			out = append(out, seat)
		}
	}
	return out
}

// dealHoleCards shuffles the deck and deals two cards to each active seat,
// one card per seat per pass starting left of the button (spec.md §4.5).
func (t *Table) dealHoleCards() {
	t.deck.Shuffle()
	order := t.activeSeatsOrdered((t.ButtonIdx + 1) % poker.NumSeats)
	for pass := 0; pass < 2; pass++ {
		for _, seat := range order {
			c, ok := t.deck.Draw()
			if !ok {
				t.log.Errorf("table %s: deck exhausted dealing hole cards", t.Name)
				return
			}
			t.seats[seat].HoleCards = append(t.seats[seat].HoleCards, c)
		}
	}
}

// dealCommunity draws the cards that open street next: three for the
// flop, one each for turn and river.
func (t *Table) dealCommunity(hand *poker.GameHand, next poker.Street) {
	n := 1
	if next == poker.Flop {
		n = 3
	}
	for i := 0; i < n; i++ {
		c, ok := t.deck.Draw()
		if !ok {
			t.log.Errorf("table %s: deck exhausted dealing %s", t.Name, next)
			return
		}
		switch next {
		case poker.Flop:
			hand.FlopCards = append(hand.FlopCards, c)
		case poker.Turn:
			card := c
			hand.TurnCard = &card
		case poker.River:
			card := c
			hand.RiverCard = &card
		}
	}
}

// playStreet runs one betting round to closure: every active, non-all-in
// seat has acted and matched the current bet, or at most one active seat
// remains (spec.md §4.6). Seats are visited in circular order starting
// left of the button; a bet or raise reopens the action for every other
// active, non-all-in seat.
func (t *Table) playStreet(hand *poker.GameHand) {
	order := t.activeSeatsOrdered((t.ButtonIdx + 1) % poker.NumSeats)
	if len(order) == 0 {
		return
	}

	needToAct := make(map[int]bool, len(order))
	for _, s := range order {
		if !t.seats[s].IsAllIn() {
			needToAct[s] = true
		}
	}

	pos := 0
	for len(needToAct) > 0 {
		if len(t.activeSeats()) <= 1 {
			break
		}

		seat := order[pos%len(order)]
		pos++

		p := t.seats[seat]
		if p == nil || !p.IsActive || p.IsAllIn() {
			delete(needToAct, seat)
			continue
		}
		if !needToAct[seat] {
			continue
		}

		hand.IndexToAct = seat
		t.sendGameState(hand, false)

		msg := t.getAndValidateAction(seat, hand)
		t.applyAction(seat, p, hand, msg, needToAct, order)
	}
	hand.IndexToAct = -1
}

// applyAction commits one validated decision to hand/seat state and
// updates which seats still owe an action (spec.md §4.6's action-effect
// table). A bet or raise clears the raiser and reopens every other active,
// non-all-in seat.
func (t *Table) applyAction(seat int, p *poker.Player, hand *poker.GameHand, msg messages.PlayerActionMessage, needToAct map[int]bool, order []int) {
	p.LastAction = poker.PlayerAction{Action: msg.Action, Amount: msg.Amount}

	switch msg.Action {
	case poker.ActionPostSmallBlind:
		amt := msg.Amount
		p.Money -= amt
		hand.Contribute(seat, amt, p.Money == 0)
		hand.CurrentBet = t.SmallBlind

	case poker.ActionPostBigBlind:
		amt := msg.Amount
		p.Money -= amt
		hand.Contribute(seat, amt, p.Money == 0)
		hand.CurrentBet = t.BigBlind

	case poker.ActionFold:
		p.Deactivate()
		delete(needToAct, seat)

	case poker.ActionSitOut:
		p.IsSittingOut = true
		p.Deactivate()
		delete(needToAct, seat)

	case poker.ActionCheck:
		delete(needToAct, seat)

	case poker.ActionCall:
		toCall := hand.CurrentBet - hand.ContributionThisStreet(seat)
		if toCall > p.Money {
			toCall = p.Money
		}
		if toCall > 0 {
			p.Money -= toCall
			hand.Contribute(seat, toCall, p.Money == 0)
		}
		delete(needToAct, seat)

	case poker.ActionBet:
		want := msg.Amount - hand.ContributionThisStreet(seat)
		if want > p.Money {
			want = p.Money
		}
		if want > 0 {
			p.Money -= want
			hand.Contribute(seat, want, p.Money == 0)
		}
		hand.CurrentBet = hand.ContributionThisStreet(seat)
		delete(needToAct, seat)
		for _, s := range order {
			if s == seat {
				continue
			}
			if other := t.seats[s]; other != nil && other.IsActive && !other.IsAllIn() {
				needToAct[s] = true
			}
		}
	}
}

// finishHand computes the showdown settlement, pays winners, broadcasts
// the result, and pauses so clients can display it (spec.md §4.5, §4.9).
func (t *Table) finishHand(hand *poker.GameHand) {
	hand.Street = poker.ShowDown

	settlements, err := hand.DivvyPots(t.seats, (t.ButtonIdx+1)%poker.NumSeats)
	if err != nil {
		t.log.Errorf("table %s: divvy pots: %v", t.Name, err)
		settlements = nil
	}

	payload := make([]messages.SettlementPayload, 0, len(settlements))
	for _, s := range settlements {
		if p := t.seats[s.Seat]; p != nil {
			p.Pay(s.Amount)
		}
		payload = append(payload, messages.SettlementPayload{
			Seat:            s.Seat,
			Name:            t.playerName(s.PlayerID),
			Amount:          s.Amount,
			HandDescription: s.HandDescription,
		})
	}
	t.broadcast(messages.NewFinishHandEvent(payload))

	if n := len(settlements); n > 0 {
		t.clock.Sleep(time.Duration(n) * t.timing.PostSettlementPerPot)
	}

	for _, p := range t.seats {
		if p != nil {
			p.ClearHoleCards()
		}
	}
}
