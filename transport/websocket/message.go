package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/session"
)

const (
	actionState    = "session:state"
	actionMove     = "move:applied"
	actionRoundEnd = "round:ended"
	actionTick     = "countdown:tick"
	actionReset    = "session:reset"
)

// Message is a single frame of the feed: an action and its payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type statePayload struct {
	SessionID string `json:"session_id"`
	session.Snapshot
}

type movePayload struct {
	Round   int            `json:"round"`
	Row     int            `json:"row"`
	Col     int            `json:"col"`
	Player  entity.Cell    `json:"player"`
	Outcome entity.Outcome `json:"outcome"`
}

type roundEndedPayload struct {
	Round     int            `json:"round"`
	Outcome   entity.Outcome `json:"outcome"`
	Winner    entity.Cell    `json:"winner"`
	Board     entity.Board   `json:"board"`
	Remaining int            `json:"remaining"`
}

type tickPayload struct {
	Round     int `json:"round"`
	Remaining int `json:"remaining"`
}

type resetPayload struct {
	Round          int         `json:"round"`
	StartingPlayer entity.Cell `json:"starting_player"`
}

func encode(action string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{Action: action, Payload: raw})
}
