package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/notify"
)

// MoveApplied is emitted after every successful move.
type MoveApplied struct {
	Row     int
	Col     int
	Player  entity.Cell
	Outcome entity.Outcome
}

// Engine is a single game of tic-tac-toe. It is not safe for concurrent use.
type Engine struct {
	board   entity.Board
	active  entity.Cell
	outcome entity.Outcome

	policy      StartingPlayerPolicy
	moveApplied notify.Registry[MoveApplied]
}

// NewEngine - creates a game with an empty board; the opening player comes from policy.
func NewEngine(policy StartingPlayerPolicy) *Engine {
	engine := &Engine{policy: policy}
	engine.Reset()

	return engine
}

// Reset - clears the board and asks the policy for a new opening player. Listeners are kept.
func (that *Engine) Reset() {
	that.board = entity.Board{}
	that.outcome = entity.InProgress
	that.active = startingPlayer(that.policy)
}

// Move - places the active player's symbol at (row, col).
func (that *Engine) Move(row, col int) error {
	if err := that.validateMove(row, col); err != nil {
		return fmt.Errorf("invalid move (%d, %d): %w", row, col, err)
	}

	player := that.active

	that.board.Set(row, col, player)
	that.active = player.Opponent()
	that.outcome = Evaluate(that.board)

	that.moveApplied.Notify(MoveApplied{
		Row:     row,
		Col:     col,
		Player:  player,
		Outcome: that.outcome,
	})

	return nil
}

// validateMove - checks if the move is valid.
func (that *Engine) validateMove(row, col int) error {
	if !entity.InBounds(row, col) {
		return apperror.ErrOutOfRange
	}

	if that.outcome.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if that.board.At(row, col) != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// Board - returns a copy of the board.
func (that *Engine) Board() entity.Board {
	return that.board
}

func (that *Engine) Outcome() entity.Outcome {
	return that.outcome
}

func (that *Engine) ActivePlayer() entity.Cell {
	return that.active
}

// OnMoveApplied - registers a listener for successful moves.
func (that *Engine) OnMoveApplied(listener func(MoveApplied)) notify.Handle {
	return that.moveApplied.Add(listener)
}

func (that *Engine) RemoveListener(handle notify.Handle) bool {
	return that.moveApplied.Remove(handle)
}

// SetPanicHandler - see notify.Registry.SetPanicHandler.
func (that *Engine) SetPanicHandler(handler func(recovered any)) {
	that.moveApplied.SetPanicHandler(handler)
}
