package table

import (
	"fmt"
	"math/rand"

	"github.com/deckhand/tablesrv/pkg/messages"
	"github.com/deckhand/tablesrv/pkg/poker"
)

// Bot action distribution (spec.md §4.7): fold 21%, check 35%, bet 15%,
// call 29%. These are cumulative thresholds against a single roll, not the
// bucket sizes themselves.
const (
	botFoldP  = 0.21
	botCheckP = 0.56 // 0.21 + 0.35
	botBetP   = 0.71 // 0.56 + 0.15
	// roll >= botBetP (0.29 of the range) is Call
)

// getAndValidateAction obtains one validated action for the seat currently
// owed an action (spec.md §4.6 "starting_idx" loop body, §4.7).
func (t *Table) getAndValidateAction(seat int, hand *poker.GameHand) messages.PlayerActionMessage {
	p := t.seats[seat]

	// Preflop blind injection: compulsory, including for sitting-out seats
	// (spec.md §4.6).
	if hand.Street == poker.Preflop {
		if hand.CurrentBet == 0 {
			return messages.PlayerActionMessage{PlayerID: p.ID, Action: poker.ActionPostSmallBlind, Amount: min64(t.SmallBlind, p.Money)}
		}
		if hand.CurrentBet == t.SmallBlind {
			return messages.PlayerActionMessage{PlayerID: p.ID, Action: poker.ActionPostBigBlind, Amount: min64(t.BigBlind, p.Money)}
		}
	}

	t.sendTo(p.ID, messages.NewPromptEvent(promptText(hand, seat), hand.CurrentBet))

	attempts := 0
	for {
		t.handleMetaActions(false, hand)

		if p.IsSittingOut {
			return messages.PlayerActionMessage{PlayerID: p.ID, Action: poker.ActionSitOut}
		}

		cfg := t.configs[p.ID]
		if cfg == nil {
			return messages.PlayerActionMessage{PlayerID: p.ID, Action: poker.ActionFold}
		}

		candidate, have := t.nextCandidate(p)
		if have {
			if valid, final := t.validateAction(hand, seat, candidate); valid {
				cfg.HeartBeat = t.clock.Now()
				return final
			}
			if p.HumanControlled {
				t.sendTo(p.ID, messages.NewErrorEvent(messages.ErrInvalidAction, "invalid action for the current state"))
				t.sendTo(p.ID, messages.NewPromptEvent(promptText(hand, seat), hand.CurrentBet))
			}
			// Invalid attempts — human or bot — never consume the timeout
			// budget (spec.md §4.7).
			t.clock.Sleep(t.timing.ActionPollInterval)
			continue
		}

		// Only humans incur the 45-attempt timeout; a bot always has a
		// candidate from nextCandidate (spec.md open question: bots are
		// re-rolled every poll rather than consuming the mailbox).
		if p.HumanControlled {
			attempts++
			if attempts >= t.timing.ActionPollAttempts {
				t.metaActions.PushBack(messages.MetaAction{Kind: messages.MetaSitOut, PlayerID: p.ID})
				return messages.PlayerActionMessage{PlayerID: p.ID, Action: poker.ActionSitOut}
			}
		}
		t.clock.Sleep(t.timing.ActionPollInterval)
	}
}

// nextCandidate returns the next action to validate for p: the human's
// mailbox entry (consumed on read), or a freshly rolled bot decision
// (never consumed — bots have no mailbox state).
func (t *Table) nextCandidate(p *poker.Player) (messages.PlayerActionMessage, bool) {
	if p.HumanControlled {
		return t.actions.Take(p.ID)
	}
	return botAction(t.rng, p), true
}

// validateAction applies spec.md §4.7's validation rules, upgrading a
// no-bet-to-face Fold into a Check rather than rejecting it.
func (t *Table) validateAction(hand *poker.GameHand, seat int, a messages.PlayerActionMessage) (bool, messages.PlayerActionMessage) {
	p := t.seats[seat]
	contrib := hand.ContributionThisStreet(seat)

	switch a.Action {
	case poker.ActionFold:
		if hand.CurrentBet <= contrib {
			return true, messages.PlayerActionMessage{PlayerID: a.PlayerID, Action: poker.ActionCheck}
		}
		return true, a
	case poker.ActionCheck:
		if hand.CurrentBet > contrib {
			return false, a
		}
		return true, a
	case poker.ActionCall:
		if hand.CurrentBet <= contrib {
			return false, a
		}
		return true, a
	case poker.ActionBet:
		if a.Amount > p.Money+contrib {
			return false, a
		}
		if a.Amount <= hand.CurrentBet {
			return false, a
		}
		return true, a
	case poker.ActionSitOut:
		return true, a
	default:
		return false, a
	}
}

func promptText(hand *poker.GameHand, seat int) string {
	toCall := hand.CurrentBet - hand.ContributionThisStreet(seat)
	if toCall > 0 {
		return fmt.Sprintf("%d to call", toCall)
	}
	return fmt.Sprintf("current bet = %d", hand.CurrentBet)
}

// botAction picks a decision from the fixed distribution of spec.md §4.7:
// fold 21%, check 35%, bet 15%, call 29%.
func botAction(rng *rand.Rand, p *poker.Player) messages.PlayerActionMessage {
	roll := rng.Float64()
	switch {
	case roll < botFoldP:
		return messages.PlayerActionMessage{PlayerID: p.ID, Action: poker.ActionFold}
	case roll < botCheckP:
		return messages.PlayerActionMessage{PlayerID: p.ID, Action: poker.ActionCheck}
	case roll < botBetP:
		return messages.PlayerActionMessage{PlayerID: p.ID, Action: poker.ActionBet, Amount: botBetSize(rng, p.Money)}
	default:
		return messages.PlayerActionMessage{PlayerID: p.ID, Action: poker.ActionCall}
	}
}

// botBetSize is min(money, uniform(1, money/2)), except a stack of 100 or
// less always shoves (spec.md §4.7).
func botBetSize(rng *rand.Rand, money int64) int64 {
	if money <= 0 {
		return 0
	}
	if money <= 100 {
		return money
	}
	half := money / 2
	if half < 1 {
		half = 1
	}
	return int64(rng.Int63n(half)) + 1
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
