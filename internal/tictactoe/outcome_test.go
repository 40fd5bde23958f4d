package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		board entity.Board
		want  entity.Outcome
	}{
		{
			name:  "Empty board is in progress",
			board: entity.Board{},
			want:  entity.InProgress,
		},
		{
			name:  "Row win for X",
			board: entity.Board{e, o, e, x, x, x, o, e, e},
			want:  entity.WinX,
		},
		{
			name:  "Column win for O",
			board: entity.Board{x, e, o, x, e, o, e, x, o},
			want:  entity.WinO,
		},
		{
			name:  "Top-left diagonal",
			board: entity.Board{o, x, e, x, o, e, e, x, o},
			want:  entity.WinO,
		},
		{
			name:  "Top-right diagonal",
			board: entity.Board{o, o, x, e, x, e, x, e, e},
			want:  entity.WinX,
		},
		{
			name:  "Draw",
			board: entity.Board{x, o, x, x, o, o, o, x, x},
			want:  entity.Draw,
		},
		{
			name:  "Win on a full board is not a draw",
			board: entity.Board{x, x, x, o, o, x, x, o, o},
			want:  entity.WinX,
		},
		{
			name:  "Ongoing game",
			board: entity.Board{x, o, x, e, o, e, x, e, e},
			want:  entity.InProgress,
		},
		{
			// impossible in play, reachable as a transient snapshot
			name:  "Columns are scanned left to right",
			board: entity.Board{o, x, e, o, x, e, o, x, e},
			want:  entity.WinO,
		},
		{
			name:  "Rows are scanned top to bottom",
			board: entity.Board{o, o, o, x, x, x, e, e, e},
			want:  entity.WinO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.board))
		})
	}
}

func TestEvaluate_IsPure(t *testing.T) {
	// Given: a board snapshot
	board := entity.Board{x, o, x, e, o, e, x, e, e}
	snapshot := board

	// When: evaluating twice
	first := Evaluate(board)
	second := Evaluate(board)

	// Then: the results agree and the board is untouched
	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, board)
}

func TestEvaluate_PanicsOnForeignSymbols(t *testing.T) {
	board := entity.Board{7, 7, 7, e, e, e, e, e, e}

	assert.Panics(t, func() { Evaluate(board) })
}
