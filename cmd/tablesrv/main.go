// Command tablesrv runs a single poker table standalone: useful for local
// testing and for demonstrating the engine without a surrounding lobby or
// transport layer, both of which are out of this module's scope.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deckhand/tablesrv/internal/logging"
	"github.com/deckhand/tablesrv/pkg/config"
	"github.com/deckhand/tablesrv/pkg/lobby"
	"github.com/deckhand/tablesrv/pkg/table"
)

func main() {
	var (
		name       string
		maxPlayers int
		smallBlind int64
		bigBlind   int64
		buyIn      int64
		password   string
		adminID    string
		handLimit  int
		seed       int64
		debugLevel string
	)
	flag.StringVar(&name, "name", "Table", "table name")
	flag.IntVar(&maxPlayers, "maxplayers", 9, "maximum seated players (<=9)")
	flag.Int64Var(&smallBlind, "smallblind", 4, "small blind amount")
	flag.Int64Var(&bigBlind, "bigblind", 8, "big blind amount")
	flag.Int64Var(&buyIn, "buyin", 1000, "starting stack for new players")
	flag.StringVar(&password, "password", "", "table password; empty disables admin commands")
	flag.StringVar(&adminID, "admin", "", "player id allowed to run admin commands")
	flag.IntVar(&handLimit, "handlimit", 0, "stop after this many hands (0 = unlimited)")
	flag.Int64Var(&seed, "seed", 0, "deterministic RNG seed for the deck (0 = time-seeded)")
	flag.StringVar(&debugLevel, "debuglevel", "info", "logging level: trace, debug, info, warn, error, critical, off")
	flag.Parse()

	logBackend, err := logging.NewBackend(logging.Config{DebugLevel: debugLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logging: %v\n", err)
		os.Exit(1)
	}
	log := logBackend.Logger("TABLE")

	cfg := config.TableConfig{
		Name:       name,
		MaxPlayers: maxPlayers,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		BuyIn:      buyIn,
		Password:   password,
		AdminID:    adminID,
		HandLimit:  handLimit,
		Seed:       seed,
	}

	t := table.New(cfg, config.DefaultTiming(), log, lobby.Discard{}, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("starting table %q: blinds %d/%d, buy-in %d", name, smallBlind, bigBlind, buyIn)
	t.Run(ctx)
	log.Infof("table %q stopped", name)
}
