package table

import (
	"os"
	"testing"
	"time"

	"github.com/decred/slog"

	"github.com/deckhand/tablesrv/pkg/config"
	"github.com/deckhand/tablesrv/pkg/lobby"
	"github.com/deckhand/tablesrv/pkg/messages"
	"github.com/deckhand/tablesrv/pkg/poker"
)

// recordingLobby captures every Returned notification and game-over signal
// it receives, for assertions in driver-level tests.
type recordingLobby struct {
	returned  []lobby.Returned
	gameOvers []string
}

func (l *recordingLobby) NotifyReturned(r lobby.Returned) { l.returned = append(l.returned, r) }
func (l *recordingLobby) NotifyGameOver(tableID string)   { l.gameOvers = append(l.gameOvers, tableID) }

// createTestLogger mirrors the teacher's test helper of the same name:
// a real slog.Logger with output suppressed.
func createTestLogger() slog.Logger {
	backend := slog.NewBackend(os.Stderr)
	log := backend.Logger("test")
	log.SetLevel(slog.LevelCritical)
	return log
}

// recorder is a Recipient that captures every event sent to it, for
// assertions against what the driver broadcasts.
type recorder struct {
	events []any
}

func (r *recorder) Send(ev any) bool {
	r.events = append(r.events, ev)
	return true
}

// testTiming zeroes every sleep so driver tests run synchronously, and
// trims the poll-attempt budget so timeout paths resolve fast.
func testTiming() config.Timing {
	return config.Timing{
		ActionPollInterval:   0,
		ActionPollAttempts:   3,
		InterStreetPause:     0,
		InterHandPause:       0,
		PostSettlementPerPot: 0,
		HeartBeatInterval:    0,
		HeartBeatTimeout:     time.Hour,
		PlayerTimeout:        time.Hour,
		CommandTimeoutSlack:  0,
	}
}

func newTestTable(t *testing.T) *Table {
	t.Helper()
	return New(config.TableConfig{
		Name:       "test-table",
		MaxPlayers: 9,
		SmallBlind: 5,
		BigBlind:   10,
		BuyIn:      1000,
		Seed:       1,
	}, testTiming(), createTestLogger(), lobby.Discard{}, nil)
}

// newTestTableWithLobby is newTestTable but wired to sink instead of
// lobby.Discard{}, for tests that assert on Returned/GameOver notifications.
func newTestTableWithLobby(t *testing.T, sink lobby.Sink) *Table {
	t.Helper()
	return New(config.TableConfig{
		Name:       "test-table",
		MaxPlayers: 9,
		SmallBlind: 5,
		BigBlind:   10,
		BuyIn:      1000,
		Seed:       1,
	}, testTiming(), createTestLogger(), sink, nil)
}

// seatHuman seats a human-controlled player at idx with a live recorder
// recipient and a config entry, so the driver treats it as connected.
func (tb *Table) seatHuman(t *testing.T, idx int, id string, money int64) *recorder {
	t.Helper()
	p := poker.NewPlayer(id, money, true)
	tb.seats[idx] = p
	rec := &recorder{}
	tb.SetConfig(&poker.PlayerConfig{ID: id, Recipient: rec, HeartBeat: time.Unix(0, 1)})
	return rec
}

// scriptedRecipient answers each PromptEvent it receives by immediately
// pushing the next scripted decision into the table's mailbox — reacting
// from inside Send(), which the driver calls synchronously, so tests stay
// single-goroutine and need no clock or channel coordination.
type scriptedRecipient struct {
	tb      *Table
	id      string
	actions []poker.Action
	amounts []int64
	idx     int
	events  []any
}

func (s *scriptedRecipient) Send(ev any) bool {
	s.events = append(s.events, ev)
	if _, ok := ev.(messages.PromptEvent); ok && s.idx < len(s.actions) {
		var amt int64
		if s.idx < len(s.amounts) {
			amt = s.amounts[s.idx]
		}
		action := s.actions[s.idx]
		s.idx++
		s.tb.Actions().Push(messages.PlayerActionMessage{PlayerID: s.id, Action: action, Amount: amt})
	}
	return true
}

// seatScripted seats a human-controlled player whose decisions are
// supplied in advance, one per prompt it receives.
func (tb *Table) seatScripted(t *testing.T, idx int, id string, money int64, actions []poker.Action, amounts []int64) *scriptedRecipient {
	t.Helper()
	p := poker.NewPlayer(id, money, true)
	tb.seats[idx] = p
	rec := &scriptedRecipient{tb: tb, id: id, actions: actions, amounts: amounts}
	tb.SetConfig(&poker.PlayerConfig{ID: id, Recipient: rec, HeartBeat: time.Unix(0, 1)})
	return rec
}
