// Package console plays a single game of tic-tac-toe over a text stream.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/service"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

var ErrInputClosed = errors.New("input closed before the game ended")

type Game struct {
	logger *slog.Logger
	engine *tictactoe.Engine
	bot    service.BotService

	in  *bufio.Scanner
	out io.Writer
}

// New - prepares a game read from in and printed to out. bot may be nil for two humans.
func New(logger *slog.Logger, policy tictactoe.StartingPlayerPolicy, bot service.BotService, in io.Reader, out io.Writer) *Game {
	that := &Game{
		logger: logger.With("component", "console"),
		engine: tictactoe.NewEngine(policy),
		bot:    bot,
		in:     bufio.NewScanner(in),
		out:    out,
	}

	that.engine.SetPanicHandler(func(recovered any) {
		that.logger.Error("move listener panicked", "panic", recovered)
	})
	that.engine.OnMoveApplied(func(event tictactoe.MoveApplied) {
		that.logger.Debug("move applied", "player", event.Player.String(), "row", event.Row, "col", event.Col, "outcome", event.Outcome.String())
	})

	return that
}

// Run - plays until the game is decided and returns the outcome.
func (that *Game) Run(ctx context.Context) (entity.Outcome, error) {
	that.println("Welcome to TicTacToe")

	for that.engine.Outcome() == entity.InProgress {
		if err := ctx.Err(); err != nil {
			return that.engine.Outcome(), err
		}

		that.print(tictactoe.Render(that.engine.Board()))

		if that.botToMove() {
			that.println("It's the AI's turn!")

			if _, _, err := that.bot.MakeTurn(that.engine); err != nil {
				return that.engine.Outcome(), fmt.Errorf("bot turn: %w", err)
			}

			continue
		}

		if that.bot != nil {
			that.println("It's your turn!")
		} else {
			that.println(fmt.Sprintf("It's Player %s's turn!", that.engine.ActivePlayer()))
		}

		that.println("Please enter the coordinates you want to play (column and row separated by a space):")

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return that.engine.Outcome(), fmt.Errorf("failed to read input: %w", err)
			}

			return that.engine.Outcome(), ErrInputClosed
		}

		that.play(that.in.Text())
	}

	that.print(tictactoe.Render(that.engine.Board()))
	that.println(announce(that.engine.Outcome()))

	that.logger.Debug("game finished", "outcome", that.engine.Outcome().String())

	return that.engine.Outcome(), nil
}

func (that *Game) botToMove() bool {
	return that.bot != nil && that.bot.Symbol() == that.engine.ActivePlayer()
}

func (that *Game) play(line string) {
	row, col, err := tictactoe.ParseCoordinates(line)
	if err == nil {
		err = that.engine.Move(row, col)
	}

	if err != nil {
		that.logger.Debug("move rejected", "input", line, "error", err)
		that.println(describe(err))
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidInput), errors.Is(err, apperror.ErrOutOfRange):
		return "Invalid coordinates"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "This cell is already taken"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "It's not your turn!"
	case errors.Is(err, apperror.ErrGameFinished):
		return "The round is over, the next one starts soon"
	case errors.Is(err, apperror.ErrRoundInProgress):
		return "The round is still being played"
	case errors.Is(err, apperror.ErrSessionClosed):
		return "The session is closed"
	default:
		return err.Error()
	}
}

func announce(outcome entity.Outcome) string {
	if outcome == entity.Draw {
		return "It's a draw!"
	}

	return fmt.Sprintf("Winner: %s", outcome.Winner())
}

func (that *Game) print(text string) {
	_, _ = io.WriteString(that.out, text)
}

func (that *Game) println(text string) {
	that.print(text + "\n")
}
