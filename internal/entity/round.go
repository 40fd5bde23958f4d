package entity

import "time"

// RoundResult is a finished round of a multiplayer session.
type RoundResult struct {
	SessionID  string    `json:"session_id"`
	Round      int       `json:"round"`
	Outcome    Outcome   `json:"outcome"`
	Board      Board     `json:"board"`
	FinishedAt time.Time `json:"finished_at"`
}

// Tally counts finished rounds of a session by outcome.
type Tally struct {
	WinsX int `json:"wins_x"`
	WinsO int `json:"wins_o"`
	Draws int `json:"draws"`
}

func (that Tally) Rounds() int {
	return that.WinsX + that.WinsO + that.Draws
}
