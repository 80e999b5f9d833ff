// cmd/simulate/main.go

// simulate runs all-bot games to exercise the engine end to end:
// seating, dealing, the full turn machine, scoring, and game end.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pjcolombo/onecard/internal/config"
	"github.com/pjcolombo/onecard/internal/models"
	"github.com/pjcolombo/onecard/internal/room"
)

type CLI struct {
	Games       int  `short:"g" help:"Number of games to simulate" default:"10"`
	Bots        int  `short:"b" help:"Bots per game" default:"4"`
	Parallel    int  `short:"p" help:"Games running concurrently" default:"4"`
	TargetScore int  `help:"Points needed to win; 0 uses the configured default" default:"0"`
	BotDelayMs  int  `help:"Delay before each bot move, in milliseconds" default:"1"`
	TimeoutSec  int  `help:"Per-game deadline in seconds" default:"120"`
	StackDraw2  bool `name:"stack-draw-2" help:"Allow stacking draw-two cards"`
	StackDraw4  bool `name:"stack-draw-4" help:"Allow stacking wild-draw-four cards"`
	Bluff       bool `help:"Allow challenging wild-draw-four bluffs"`
	ForcePlay   bool `help:"Force playing a legal card instead of drawing"`
	Verbose     bool `short:"v" help:"Debug logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	cfg, err := config.Load()
	if err != nil {
		kctx.FatalIfErrorf(err)
	}

	logger := logrus.New()
	if cli.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	targetScore := cfg.TargetScore
	if cli.TargetScore > 0 {
		targetScore = cli.TargetScore
	}

	start := time.Now()
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(cli.Parallel)

	for i := 0; i < cli.Games; i++ {
		n := i
		eg.Go(func() error {
			return runGame(ctx, n, &cli, cfg, targetScore, logger)
		})
	}

	if err := eg.Wait(); err != nil {
		logger.WithError(err).Error("simulation failed")
		kctx.Exit(1)
	}
	logger.WithFields(logrus.Fields{
		"games":   cli.Games,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("simulation complete")
}

func runGame(ctx context.Context, n int, cli *CLI, cfg *config.Config, targetScore int, logger *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cli.TimeoutSec)*time.Second)
	defer cancel()

	r := room.New(ctx, nil, logger)
	defer r.Close()

	g := r.Game
	g.HandSize = cfg.HandSize
	g.TargetScore = targetScore
	g.TurnTimeout = cfg.TurnTimeout()
	g.UnoCatchWindow = cfg.UnoWindow()
	g.BotDelay = time.Duration(cli.BotDelayMs) * time.Millisecond
	g.HouseRules = models.HouseRules{
		StackDrawTwo:   cli.StackDraw2,
		StackDrawFour:  cli.StackDraw4,
		BluffChallenge: cli.Bluff,
		ForcePlay:      cli.ForcePlay,
	}

	done := make(chan uuid.UUID, 1)
	g.OnGameEnd = func(winnerID uuid.UUID, scores map[uuid.UUID]int) {
		done <- winnerID
	}

	seats := make([]uuid.UUID, cli.Bots)
	for i := range seats {
		seats[i] = uuid.New()
		r.Enqueue(models.Command{
			Type:      models.CmdAddPlayer,
			PlayerID:  seats[i],
			Name:      fmt.Sprintf("bot-%d-%d", n, i),
			Automated: true,
		})
	}
	r.Enqueue(models.Command{Type: models.CmdStartGame, PlayerID: seats[0]})

	select {
	case winner := <-done:
		logger.WithFields(logrus.Fields{
			"game":   n,
			"winner": winner,
		}).Info("game finished")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("game %d did not finish: %w", n, ctx.Err())
	}
}
