package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/session"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

const seatsHelp = `Enter "<player> <column> <row>" to move, e.g. "x 1 3".
"board" prints the board, "again" starts the next round right away.`

type table interface {
	Snapshot() session.Snapshot
	Move(player entity.Cell, row, col int) error
	PlayAgainNow() error
}

// Seats lets both players of a session share one text stream.
type Seats struct {
	logger *slog.Logger
	table  table

	in  *bufio.Scanner
	out io.Writer
}

func NewSeats(logger *slog.Logger, table table, in io.Reader, out io.Writer) *Seats {
	return &Seats{
		logger: logger.With("component", "seats"),
		table:  table,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run - executes commands until the input ends or ctx is done.
func (that *Seats) Run(ctx context.Context) error {
	that.println(seatsHelp)

	for that.in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		that.execute(strings.TrimSpace(that.in.Text()))
	}

	if err := that.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *Seats) execute(line string) {
	switch strings.ToLower(line) {
	case "":
		return
	case "board":
		that.printBoard()
		return
	case "again":
		if err := that.table.PlayAgainNow(); err != nil {
			that.println(describe(err))
		}

		return
	}

	symbol, coordinates, _ := strings.Cut(line, " ")

	player, err := entity.ParseCell(symbol)
	if err != nil || !player.IsPlayer() {
		that.println(fmt.Sprintf("Unknown player %q, use x or o", symbol))
		return
	}

	row, col, err := tictactoe.ParseCoordinates(coordinates)
	if err == nil {
		err = that.table.Move(player, row, col)
	}

	if err != nil {
		that.logger.Debug("move rejected", "player", player.String(), "input", coordinates, "error", err)
		that.println(describe(err))

		return
	}

	that.printBoard()
}

func (that *Seats) printBoard() {
	snapshot := that.table.Snapshot()

	that.print(tictactoe.Render(snapshot.Board))

	switch {
	case snapshot.Outcome.IsTerminal():
		that.println(fmt.Sprintf("%s Next round in %d.", announce(snapshot.Outcome), snapshot.Remaining))
	default:
		that.println(fmt.Sprintf("Round %d: it's Player %s's turn!", snapshot.Round, snapshot.ActivePlayer))
	}
}

func (that *Seats) print(text string) {
	_, _ = io.WriteString(that.out, text)
}

func (that *Seats) println(text string) {
	that.print(text + "\n")
}
