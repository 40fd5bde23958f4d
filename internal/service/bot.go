package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

type BotService interface {
	Symbol() entity.Cell
	MakeTurn(game *tictactoe.Engine) (row, col int, err error)
}

type botService struct {
	symbol entity.Cell
}

// NewBotService - creates the automated player for symbol. Panics if symbol is not X or O.
func NewBotService(symbol entity.Cell) BotService {
	if !symbol.IsPlayer() {
		panic(fmt.Sprintf("bot symbol must be a player, got %d", symbol))
	}

	return &botService{symbol: symbol}
}

func (that *botService) Symbol() entity.Cell {
	return that.symbol
}

// MakeTurn - plays the best move for the bot's symbol and returns the chosen cell.
func (that *botService) MakeTurn(game *tictactoe.Engine) (int, int, error) {
	if game.Outcome().IsTerminal() {
		return 0, 0, apperror.ErrGameFinished
	}

	if game.ActivePlayer() != that.symbol {
		return 0, 0, apperror.ErrNotYourTurn
	}

	row, col := tictactoe.GetBestMove(game.Board(), that.symbol)

	if err := game.Move(row, col); err != nil {
		return 0, 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return row, col, nil
}
