package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

const winScore = 10

// GetBestMove - returns the move minimax rates best for aiSymbol. Among equally rated
// moves the first one in row-major order wins.
//
// The board is taken by value and explored in place, so the caller's board is never touched.
// Passing a symbol other than X or O, or a board that is full or already decided, is a
// programming error and panics.
func GetBestMove(board entity.Board, aiSymbol entity.Cell) (int, int) {
	if !aiSymbol.IsPlayer() {
		panic(fmt.Sprintf("get best move: ai symbol %v must be X or O", aiSymbol))
	}

	if outcome := Evaluate(board); outcome.IsTerminal() {
		panic(fmt.Sprintf("get best move: board is already decided (%v)", outcome))
	}

	bestScore := math.MinInt
	bestRow, bestCol := -1, -1

	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			if board.At(row, col) != entity.EmptyCell {
				continue
			}

			board.Set(row, col, aiSymbol)
			score := minimax(&board, aiSymbol, 0, false)
			board.Set(row, col, entity.EmptyCell)

			if score > bestScore {
				bestScore = score
				bestRow, bestCol = row, col
			}
		}
	}

	return bestRow, bestCol
}

// minimax - scores the position from the AI's point of view. Quicker wins score higher,
// quicker losses lower.
func minimax(board *entity.Board, aiSymbol entity.Cell, depth int, maximizing bool) int {
	switch outcome := Evaluate(*board); outcome {
	case entity.InProgress:
	case entity.Draw:
		return 0
	case entity.WinFor(aiSymbol):
		return winScore - depth
	default:
		return depth - winScore
	}

	player := aiSymbol.Opponent()
	best := math.MaxInt
	if maximizing {
		player = aiSymbol
		best = math.MinInt
	}

	for i, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		board[i] = player
		score := minimax(board, aiSymbol, depth+1, !maximizing)
		board[i] = entity.EmptyCell

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
