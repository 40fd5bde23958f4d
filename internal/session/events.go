package session

import "github.com/rocketscienceinc/tictactoe-session/internal/entity"

// State of the session lifecycle.
type State int

const (
	Active State = iota
	EndedCounting
)

func (that State) String() string {
	if that == EndedCounting {
		return "ended_counting"
	}

	return "active"
}

func (that State) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

type MoveApplied struct {
	Round   int
	Row     int
	Col     int
	Player  entity.Cell
	Outcome entity.Outcome
}

// RoundEnded is emitted once per round, when its outcome becomes terminal.
type RoundEnded struct {
	Round     int
	Outcome   entity.Outcome
	Board     entity.Board
	Remaining int
}

type CountdownTick struct {
	Round     int
	Remaining int
}

// SessionReset is emitted after a fresh engine replaced the finished one.
type SessionReset struct {
	Round          int
	StartingPlayer entity.Cell
}

// Snapshot is a consistent view of the session taken under a single lock.
type Snapshot struct {
	Round        int            `json:"round"`
	State        State          `json:"state"`
	Board        entity.Board   `json:"board"`
	Outcome      entity.Outcome `json:"outcome"`
	ActivePlayer entity.Cell    `json:"active_player"`
	Remaining    int            `json:"remaining"`
}
