package table

import "github.com/deckhand/tablesrv/pkg/lobby"

// sweepHeartBeats evicts any PlayerConfig whose command-activity
// heart-beat has exceeded PLAYER_TIMEOUT, notifying the lobby so it can
// tear down the originating session (spec.md §5 handle_player_heart_beats,
// §6 HeartBeatFailed).
//
// Removing only the config — not the seated Player — is the first half of
// the two-phase removal spec.md §9 calls load-bearing; the seat itself is
// dropped by sweepAbsentConfigs at the next hand boundary.
func (t *Table) sweepHeartBeats() {
	now := t.clock.Now()
	for id, cfg := range t.configs {
		if now.Sub(cfg.HeartBeat) <= t.timing.PlayerTimeout {
			continue
		}
		delete(t.configs, id)
		if t.lobby != nil {
			t.lobby.NotifyReturned(lobby.Returned{
				PlayerID: id,
				Reason:   lobby.ReturnedHeartBeatFailed,
				Detail:   "no command activity within the player timeout",
			})
		}
	}
}
