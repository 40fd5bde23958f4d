package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_AtAndSet(t *testing.T) {
	t.Run("Set writes the row-major cell", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: O is placed at row 1, column 2
		board.Set(1, 2, PlayerO)

		// Then: the flat index 5 holds O and At reads it back
		assert.Equal(t, PlayerO, board[5])
		assert.Equal(t, PlayerO, board.At(1, 2))
		assert.Equal(t, 1, board.Occupied())
	})

	t.Run("Rows and BoardFromRows agree", func(t *testing.T) {
		// Given: a board described by rows
		rows := [BoardSize][BoardSize]Cell{
			{PlayerX, PlayerX, EmptyCell},
			{PlayerO, PlayerO, EmptyCell},
			{EmptyCell, EmptyCell, EmptyCell},
		}

		// When: converting to a board and back
		board := BoardFromRows(rows)

		// Then: the rows survive and the board is not full
		assert.Equal(t, rows, board.Rows())
		assert.False(t, board.IsFull())
		assert.Equal(t, 4, board.Occupied())
	})
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(0, 0))
	assert.True(t, InBounds(2, 2))
	assert.False(t, InBounds(3, 3))
	assert.False(t, InBounds(-1, 0))
	assert.False(t, InBounds(0, 3))
}

func TestCell_Opponent(t *testing.T) {
	t.Run("Flips the player symbols", func(t *testing.T) {
		assert.Equal(t, PlayerO, PlayerX.Opponent())
		assert.Equal(t, PlayerX, PlayerO.Opponent())
	})

	t.Run("Panics on the empty cell", func(t *testing.T) {
		assert.Panics(t, func() { EmptyCell.Opponent() })
	})
}

func TestParseCell(t *testing.T) {
	t.Run("Accepts both cases", func(t *testing.T) {
		cell, err := ParseCell("o")
		require.NoError(t, err)
		assert.Equal(t, PlayerO, cell)
	})

	t.Run("Rejects unknown symbols", func(t *testing.T) {
		_, err := ParseCell("Z")
		assert.ErrorIs(t, err, ErrUnknownCell)
	})
}

func TestOutcome_Winner(t *testing.T) {
	assert.Equal(t, PlayerX, WinX.Winner())
	assert.Equal(t, PlayerO, WinO.Winner())
	assert.Equal(t, EmptyCell, Draw.Winner())
	assert.False(t, InProgress.IsTerminal())
	assert.True(t, Draw.IsTerminal())
	assert.Equal(t, WinO, WinFor(PlayerO))
	assert.Panics(t, func() { WinFor(EmptyCell) })
}

func TestRoundResult_JSON(t *testing.T) {
	// Given: a finished round
	result := RoundResult{
		SessionID: "abc",
		Round:     3,
		Outcome:   WinO,
		Board:     Board{PlayerO, PlayerO, PlayerO, PlayerX, PlayerX, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
	}

	// When: encoding it
	data, err := json.Marshal(result)
	require.NoError(t, err)

	// Then: cells and outcome use their symbolic names
	assert.Contains(t, string(data), `"outcome":"win_o"`)
	assert.Contains(t, string(data), `"board":["O","O","O","X","X","","","",""]`)

	var decoded RoundResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.Board, decoded.Board)
	assert.Equal(t, result.Outcome, decoded.Outcome)
}
