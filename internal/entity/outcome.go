package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownOutcome = errors.New("unknown outcome")

// Outcome is the classification of a game position.
type Outcome uint8

const (
	InProgress Outcome = iota
	WinX
	WinO
	Draw
)

func (that Outcome) String() string {
	switch that {
	case InProgress:
		return "in_progress"
	case WinX:
		return "win_x"
	case WinO:
		return "win_o"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(that))
	}
}

func (that Outcome) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Outcome) UnmarshalText(text []byte) error {
	for _, outcome := range []Outcome{InProgress, WinX, WinO, Draw} {
		if outcome.String() == string(text) {
			*that = outcome
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownOutcome, text)
}

func (that Outcome) IsTerminal() bool {
	return that != InProgress
}

// Winner - returns the winning symbol, or EmptyCell for a draw or a game in progress.
func (that Outcome) Winner() Cell {
	switch that {
	case WinX:
		return PlayerX
	case WinO:
		return PlayerO
	default:
		return EmptyCell
	}
}

// WinFor - returns the winning outcome of the given symbol. Panics for anything but X or O.
func WinFor(player Cell) Outcome {
	switch player {
	case PlayerX:
		return WinX
	case PlayerO:
		return WinO
	default:
		panic(fmt.Sprintf("win for %v: symbol must be X or O", player))
	}
}
