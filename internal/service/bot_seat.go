package service

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/notify"
	"github.com/rocketscienceinc/tictactoe-session/internal/session"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

type table interface {
	Snapshot() session.Snapshot
	Move(player entity.Cell, row, col int) error
	OnMoveApplied(listener func(session.MoveApplied)) notify.Handle
	OnSessionReset(listener func(session.SessionReset)) notify.Handle
	Unsubscribe(handle notify.Handle) bool
}

// BotSeat occupies one symbol of a session and answers as soon as it is that symbol's turn.
type BotSeat struct {
	logger *slog.Logger
	table  table
	symbol entity.Cell

	mu      sync.Mutex
	handles []notify.Handle
}

func NewBotSeat(logger *slog.Logger, table table, symbol entity.Cell) *BotSeat {
	return &BotSeat{
		logger: logger.With("component", "bot_seat", "symbol", symbol.String()),
		table:  table,
		symbol: symbol,
	}
}

// Start - subscribes to the session and plays right away if the bot opens the round.
func (that *BotSeat) Start() {
	that.mu.Lock()
	that.handles = append(that.handles,
		that.table.OnMoveApplied(func(session.MoveApplied) { that.play() }),
		that.table.OnSessionReset(func(session.SessionReset) { that.play() }),
	)
	that.mu.Unlock()

	that.play()
}

func (that *BotSeat) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, handle := range that.handles {
		that.table.Unsubscribe(handle)
	}

	that.handles = nil
}

func (that *BotSeat) play() {
	snapshot := that.table.Snapshot()

	if snapshot.State != session.Active || snapshot.Outcome.IsTerminal() || snapshot.ActivePlayer != that.symbol {
		return
	}

	row, col := tictactoe.GetBestMove(snapshot.Board, that.symbol)

	if err := that.table.Move(that.symbol, row, col); err != nil {
		that.logger.Warn("bot move rejected", "round", snapshot.Round, "row", row, "col", col, "error", err)
		return
	}

	that.logger.Debug("bot moved", "round", snapshot.Round, "row", row, "col", col)
}
