package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/seabattle/internal/config"
	"github.com/rocketscienceinc/seabattle/internal/entity"
	"github.com/rocketscienceinc/seabattle/internal/pkg"
	"github.com/rocketscienceinc/seabattle/internal/repository"
	"github.com/rocketscienceinc/seabattle/internal/repository/storage"
	"github.com/rocketscienceinc/seabattle/internal/service"
	"github.com/rocketscienceinc/seabattle/internal/transport/console"
	"github.com/rocketscienceinc/seabattle/internal/usecase"
)

// RunApp - runs one match on the terminal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run builds both boards, plays the match over in/out and records the result when
// redis is enabled. Closing the input or canceling ctx ends the game without error.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	if err := conf.Validate(); err != nil {
		return err
	}

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint: gosec // it's a game

	placer := service.NewFleetPlacer(logger, rng, service.PlacerOptions{
		Size:          conf.Board.Size,
		Fleet:         entity.DefaultFleet,
		RetryBudget:   conf.Placement.RetryBudget,
		HeadSampleMin: conf.Placement.HeadSampleMin,
	})

	userBoard, err := placer.RandomBoard(ctx, false)
	if err != nil {
		return fmt.Errorf("could not build user board: %w", err)
	}

	botBoard, err := placer.RandomBoard(ctx, true)
	if err != nil {
		return fmt.Errorf("could not build AI board: %w", err)
	}

	display := console.NewDisplay(logger, out)
	display.Greet()

	results := openResults(ctx, log, conf)
	if results != nil {
		announceTally(ctx, log, display, results)
	}

	user := service.NewHumanActor(console.NewInput(in, out, console.DefaultPrompt))
	bot := service.NewBotActor(rng, conf.Board.Size)

	matchID := pkg.GenerateMatchID()
	match := usecase.NewMatch(logger, display, matchID, userBoard, botBoard, user, bot)

	if _, err = match.Run(ctx); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			log.Info("match abandoned", "matchID", matchID, "reason", err)
			return nil
		}

		return fmt.Errorf("match failed: %w", err)
	}

	if results != nil {
		if err = results.CreateOrUpdate(ctx, match.Result()); err != nil {
			log.Error("could not save match result", "matchID", matchID, "error", err)
		}
	}

	return nil
}

// openResults returns nil when results are disabled or redis is unreachable.
func openResults(ctx context.Context, log *slog.Logger, conf *config.Config) repository.ResultRepository {
	if !conf.Redis.Enabled {
		return nil
	}

	client, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		log.Error("results disabled, could not connect to redis", "error", err)
		return nil
	}

	context.AfterFunc(ctx, func() {
		if err := client.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	})

	return repository.NewResultRepository(client)
}

func announceTally(ctx context.Context, log *slog.Logger, display *console.Display, results repository.ResultRepository) {
	tally, err := results.Tally(ctx)
	if err != nil {
		log.Error("could not load tally", "error", err)
		return
	}

	display.Announce(fmt.Sprintf("Record: you %d - AI %d", tally[entity.WinnerUser], tally[entity.WinnerAutomated]))
}
