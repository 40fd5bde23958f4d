package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// WinCombos lists the winning lines in scan order: rows, columns, then the
// top-left and top-right diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate - classifies the board. The first completed line in scan order decides the winner;
// a full board without one is a draw.
func Evaluate(board entity.Board) entity.Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a == entity.EmptyCell || a != b || b != c {
			continue
		}

		if !a.IsPlayer() {
			panic(fmt.Sprintf("evaluate: line %v holds %v, not a player symbol", combo, a))
		}

		return entity.WinFor(a)
	}

	// the game will continue until all the squares are full
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return entity.InProgress
		}
	}

	return entity.Draw
}
