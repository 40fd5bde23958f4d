package entity

import (
	"errors"
	"fmt"
	"strings"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

var ErrUnknownCell = errors.New("unknown cell value")

// Cell is the content of a single board square.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	case EmptyCell:
		return " "
	default:
		return fmt.Sprintf("Cell(%d)", uint8(that))
	}
}

// IsPlayer reports whether the cell holds one of the two player symbols.
func (that Cell) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent - returns the other player's symbol. Panics for anything but X or O.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		panic(fmt.Sprintf("opponent of %v: symbol must be X or O", that))
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	switch that {
	case PlayerX, PlayerO:
		return []byte(that.String()), nil
	case EmptyCell:
		return []byte{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCell, uint8(that))
	}
}

func (that *Cell) UnmarshalText(text []byte) error {
	cell, err := ParseCell(string(text))
	if err != nil {
		return err
	}

	*that = cell

	return nil
}

// ParseCell - parses "X", "O" (any case) or an empty string.
func ParseCell(value string) (Cell, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	case "":
		return EmptyCell, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", ErrUnknownCell, value)
	}
}

// Board is the 3x3 grid stored row-major.
type Board [CellCount]Cell

// InBounds reports whether (row, col) addresses a cell of the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// At - returns the cell at (row, col). The coordinates must be in bounds.
func (that Board) At(row, col int) Cell {
	return that[row*BoardSize+col]
}

// Set - writes the cell at (row, col). The coordinates must be in bounds.
func (that *Board) Set(row, col int, cell Cell) {
	that[row*BoardSize+col] = cell
}

// Occupied - counts the non-empty cells.
func (that Board) Occupied() int {
	count := 0
	for _, cell := range that {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

func (that Board) IsFull() bool {
	return that.Occupied() == CellCount
}

// Rows - returns the board as a row-major 3x3 array.
func (that Board) Rows() [BoardSize][BoardSize]Cell {
	var rows [BoardSize][BoardSize]Cell
	for row := range BoardSize {
		for col := range BoardSize {
			rows[row][col] = that.At(row, col)
		}
	}

	return rows
}

// BoardFromRows - builds a board from a row-major 3x3 array.
func BoardFromRows(rows [BoardSize][BoardSize]Cell) Board {
	var board Board
	for row := range BoardSize {
		for col := range BoardSize {
			board.Set(row, col, rows[row][col])
		}
	}

	return board
}
