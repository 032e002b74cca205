package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rocketscienceinc/seabattle/internal/apperror"
	"github.com/rocketscienceinc/seabattle/internal/entity"
)

var ErrMatchFinished = errors.New("match is already finished")

type Actor interface {
	Name() string
	SelectTarget(ctx context.Context) (entity.Coordinate, error)
}

type Display interface {
	Render(board *entity.Board, concealed bool)
	Announce(message string)
}

const separatorWidth = 20

// Match runs the alternating turns between the user and the automated opponent.
// The user shoots at botBoard, the bot shoots at userBoard.
type Match struct {
	logger  *slog.Logger
	display Display

	id        string
	userBoard *entity.Board
	botBoard  *entity.Board
	user      Actor
	bot       Actor

	state     entity.MatchState
	turns     int
	userShots int
	botShots  int
}

func NewMatch(logger *slog.Logger, display Display, id string, userBoard, botBoard *entity.Board, user, bot Actor) *Match {
	return &Match{
		logger:    logger.With("component", "match", "matchID", id),
		display:   display,
		id:        id,
		userBoard: userBoard,
		botBoard:  botBoard,
		user:      user,
		bot:       bot,
		state:     entity.StateAwaitingUser,
	}
}

func (that *Match) State() entity.MatchState {
	return that.state
}

// Run plays turns until one fleet is destroyed and announces the result.
func (that *Match) Run(ctx context.Context) (entity.MatchState, error) {
	log := that.logger.With("method", "Run")
	log.Info("match started")

	for !that.state.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return that.state, fmt.Errorf("match interrupted: %w", err)
		}

		that.renderBoards()

		if _, err := that.PlayTurn(ctx); err != nil {
			return that.state, fmt.Errorf("failed to play turn: %w", err)
		}
	}

	that.renderBoards()

	if that.state == entity.StateUserWon {
		that.display.Announce(strings.Repeat("#", separatorWidth))
		that.display.Announce("You win!")
	} else {
		that.display.Announce(strings.Repeat("-", separatorWidth))
		that.display.Announce("AI wins!")
	}

	log.Info("match finished", "state", that.state, "turns", that.turns)

	return that.state, nil
}

// PlayTurn lets the active actor shoot until a shot resolves. Recoverable errors are
// announced and the same actor is asked again. A hit or sink keeps the turn.
func (that *Match) PlayTurn(ctx context.Context) (entity.ShotOutcome, error) {
	if that.state.IsTerminal() {
		return "", ErrMatchFinished
	}

	actor, target := that.user, that.botBoard
	if that.state == entity.StateAwaitingAutomated {
		actor, target = that.bot, that.userBoard
	}

	log := that.logger.With("method", "PlayTurn", "actor", actor.Name())

	var outcome entity.ShotOutcome
	for {
		cell, err := actor.SelectTarget(ctx)
		if err == nil {
			// the user already sees what they typed
			if actor == that.bot {
				that.display.Announce(fmt.Sprintf("%s shoots %s", actor.Name(), cell))
			}
			outcome, err = target.ResolveShot(cell)
		}

		if err == nil {
			log.Debug("shot resolved", "target", cell, "outcome", outcome)
			break
		}

		if !apperror.IsRecoverable(err) {
			return "", fmt.Errorf("%s failed to select target: %w", actor.Name(), err)
		}

		that.display.Announce(apperror.UserMessage(err))
	}

	that.turns++
	if actor == that.user {
		that.userShots++
	} else {
		that.botShots++
	}

	that.announceOutcome(outcome, target)
	that.advance(outcome)

	return outcome, nil
}

func (that *Match) advance(outcome entity.ShotOutcome) {
	switch {
	case that.botBoard.IsDefeated():
		that.state = entity.StateUserWon
	case that.userBoard.IsDefeated():
		that.state = entity.StateAutomatedWon
	case outcome != entity.OutcomeMiss:
		// hit and continue
	case that.state == entity.StateAwaitingUser:
		that.state = entity.StateAwaitingAutomated
	default:
		that.state = entity.StateAwaitingUser
	}
}

func (that *Match) announceOutcome(outcome entity.ShotOutcome, target *entity.Board) {
	switch outcome {
	case entity.OutcomeSunk:
		that.display.Announce(fmt.Sprintf("Ship destroyed! %d ships left!", target.FleetAlive))
	case entity.OutcomeHit:
		that.display.Announce("Ship damaged!")
	default:
		that.display.Announce("Shot missed!")
	}
}

func (that *Match) renderBoards() {
	that.display.Announce("User:")
	that.display.Render(that.userBoard, that.userBoard.Concealed)
	that.display.Announce(strings.Repeat("#", separatorWidth))
	that.display.Announce("AI:")
	that.display.Render(that.botBoard, that.botBoard.Concealed)

	switch that.state {
	case entity.StateAwaitingUser:
		that.display.Announce(strings.Repeat("#", separatorWidth))
		that.display.Announce("Make a turn")
	case entity.StateAwaitingAutomated:
		that.display.Announce(strings.Repeat("#", separatorWidth))
		that.display.Announce("AI makes a turn")
	}
}

// Result summarizes the match for storage.
func (that *Match) Result() *entity.MatchResult {
	return &entity.MatchResult{
		ID:            that.id,
		Winner:        that.state.Winner(),
		Turns:         that.turns,
		UserShots:     that.userShots,
		BotShots:      that.botShots,
		UserShipsLeft: that.userBoard.FleetAlive,
		BotShipsLeft:  that.botBoard.FleetAlive,
		FinishedAt:    time.Now().UTC(),
	}
}
