package apperror

import "errors"

var (
	ErrOutOfRange   = errors.New("row and column are out of range")
	ErrCellOccupied = errors.New("cell is already occupied")

	ErrGameFinished    = errors.New("game has ended")
	ErrRoundInProgress = errors.New("round is still in progress")
	ErrSessionClosed   = errors.New("session is closed")

	ErrNotYourTurn = errors.New("it's not your turn")

	ErrInvalidInput = errors.New("invalid coordinates")
)

// Kind groups errors by how a caller is expected to react to them.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindState
	KindTurn
)

func (that Kind) String() string {
	switch that {
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindTurn:
		return "turn"
	default:
		return "unknown"
	}
}

// KindOf - classifies err, following wrapped errors.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrOutOfRange), errors.Is(err, ErrCellOccupied), errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrGameFinished), errors.Is(err, ErrRoundInProgress), errors.Is(err, ErrSessionClosed):
		return KindState
	case errors.Is(err, ErrNotYourTurn):
		return KindTurn
	default:
		return KindUnknown
	}
}
