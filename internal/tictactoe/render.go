package tictactoe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

const boardHeader = "  1 2 3"

// Render - draws the board as text: a column header, then one line per row prefixed with
// its 1-indexed number. Every cell takes two characters.
func Render(board entity.Board) string {
	var sb strings.Builder

	sb.WriteString(boardHeader)
	sb.WriteString("\n")

	for row, cells := range board.Rows() {
		sb.WriteString(strconv.Itoa(row + 1))
		sb.WriteString(" ")

		for _, cell := range cells {
			sb.WriteString(renderCell(cell))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

func renderCell(cell entity.Cell) string {
	switch cell {
	case entity.PlayerX:
		return "X "
	case entity.PlayerO:
		return "O "
	default:
		return "  "
	}
}

// ParseCoordinates - reads "<column> <row>" as printed by Render (1-indexed, column first)
// and returns the internal zero-based row and column. Range checks are left to the engine.
func ParseCoordinates(input string) (int, int, error) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: want \"<column> <row>\", got %q", apperror.ErrInvalidInput, input)
	}

	col, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: column %q", apperror.ErrInvalidInput, fields[0])
	}

	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: row %q", apperror.ErrInvalidInput, fields[1])
	}

	return row - 1, col - 1, nil
}
