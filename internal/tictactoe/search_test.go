package tictactoe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

func TestGetBestMove(t *testing.T) {
	t.Run("Takes the immediate win", func(t *testing.T) {
		// Given: X can complete the top row
		board := entity.BoardFromRows([3][3]entity.Cell{
			{x, x, e},
			{o, o, e},
			{e, e, e},
		})

		// When: searching for X
		row, col := GetBestMove(board, x)

		// Then: X wins at (0, 2)
		assert.Equal(t, [2]int{0, 2}, [2]int{row, col})
	})

	t.Run("Blocks the forced loss", func(t *testing.T) {
		// Given: O threatens the top row
		board := entity.BoardFromRows([3][3]entity.Cell{
			{o, o, e},
			{e, e, e},
			{e, e, e},
		})

		// When: searching for X
		row, col := GetBestMove(board, x)

		// Then: X blocks at (0, 2)
		assert.Equal(t, [2]int{0, 2}, [2]int{row, col})
	})

	t.Run("Prefers winning over blocking", func(t *testing.T) {
		// Given: both sides threaten a line, O to move
		board := entity.BoardFromRows([3][3]entity.Cell{
			{x, x, e},
			{e, e, e},
			{o, o, e},
		})

		// When: searching for O
		row, col := GetBestMove(board, o)

		// Then: O completes the bottom row instead of blocking
		assert.Equal(t, [2]int{2, 2}, [2]int{row, col})
	})

	t.Run("Ties resolve to the first cell in row-major order", func(t *testing.T) {
		// Given: the empty board, where every opening is a draw
		board := entity.Board{}

		// When: searching for either symbol
		rowX, colX := GetBestMove(board, x)
		rowO, colO := GetBestMove(board, o)

		// Then: the top-left corner is chosen
		assert.Equal(t, [2]int{0, 0}, [2]int{rowX, colX})
		assert.Equal(t, [2]int{0, 0}, [2]int{rowO, colO})
	})

	t.Run("Leaves the caller's board untouched", func(t *testing.T) {
		// Given: a position in progress
		board := entity.BoardFromRows([3][3]entity.Cell{
			{x, e, e},
			{e, o, e},
			{e, e, e},
		})
		snapshot := board

		// When: searching
		GetBestMove(board, x)

		// Then: the board is unchanged
		assert.Equal(t, snapshot, board)
	})
}

func TestGetBestMove_ReturnsAnEmptyCell(t *testing.T) {
	rnd := rand.New(rand.NewSource(7)) //nolint: gosec // it's ok

	for range 40 {
		// Given: a random position reached by legal play
		engine := NewEngine(NewRandomStart(rnd.Int63()))
		plies := 2 + rnd.Intn(6)

		for i := 0; i < plies && engine.Outcome() == entity.InProgress; i++ {
			empties := emptyCells(engine.Board())
			cell := empties[rnd.Intn(len(empties))]
			require.NoError(t, engine.Move(cell/entity.BoardSize, cell%entity.BoardSize))
		}

		if engine.Outcome() != entity.InProgress {
			continue
		}

		board := engine.Board()

		// When: searching for the player to move
		row, col := GetBestMove(board, engine.ActivePlayer())

		// Then: the move targets an empty cell of the unchanged board
		require.True(t, entity.InBounds(row, col))
		assert.Equal(t, entity.EmptyCell, board.At(row, col))
		assert.Equal(t, engine.Board(), board)
	}
}

func TestGetBestMove_SelfPlayIsADraw(t *testing.T) {
	for _, first := range []entity.Cell{x, o} {
		t.Run("opening "+first.String(), func(t *testing.T) {
			// Given: a new game where both sides use the search
			engine := NewEngine(FixedStart(first))

			// When: playing until the game is decided
			for engine.Outcome() == entity.InProgress {
				row, col := GetBestMove(engine.Board(), engine.ActivePlayer())
				require.NoError(t, engine.Move(row, col))
			}

			// Then: perfect play ends in a draw
			assert.Equal(t, entity.Draw, engine.Outcome())
		})
	}
}

func TestGetBestMove_ProgrammerErrors(t *testing.T) {
	t.Run("Invalid symbol", func(t *testing.T) {
		assert.Panics(t, func() { GetBestMove(entity.Board{}, e) })
		assert.Panics(t, func() { GetBestMove(entity.Board{}, entity.Cell(9)) })
	})

	t.Run("Decided board", func(t *testing.T) {
		board := entity.Board{x, x, x, o, o, e, e, e, e}
		assert.Panics(t, func() { GetBestMove(board, o) })
	})

	t.Run("Full board", func(t *testing.T) {
		board := entity.Board{x, o, x, x, o, o, o, x, x}
		assert.Panics(t, func() { GetBestMove(board, x) })
	})
}

func emptyCells(board entity.Board) []int {
	var cells []int
	for i, cell := range board {
		if cell == entity.EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}
