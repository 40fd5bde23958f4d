package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/session"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

const defaultRecent = 10

type sessionTable interface {
	Snapshot() session.Snapshot
	PlayAgainNow() error
}

type scoreboard interface {
	SessionID() string
	Scoreboard(ctx context.Context, limit int) (entity.Tally, []*entity.RoundResult, error)
}

type handlers struct {
	logger *slog.Logger
	table  sessionTable
	scores scoreboard
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	session.Snapshot
}

type scoreboardResponse struct {
	SessionID string                `json:"session_id"`
	Tally     entity.Tally          `json:"tally"`
	Rounds    int                   `json:"rounds"`
	Recent    []*entity.RoundResult `json:"recent"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *handlers) getSession(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: that.scores.SessionID(),
		Snapshot:  that.table.Snapshot(),
	})
}

func (that *handlers) getBoard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(tictactoe.Render(that.table.Snapshot().Board))); err != nil {
		that.logger.Error("failed to write board", "error", err)
	}
}

func (that *handlers) restart(w http.ResponseWriter, _ *http.Request) {
	if err := that.table.PlayAgainNow(); err != nil {
		that.writeError(w, err)
		return
	}

	that.logger.Info("round restarted on request")

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) getScoreboard(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "getScoreboard")

	limit := defaultRecent
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			that.writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "limit must be a positive integer",
				Kind:  apperror.KindValidation.String(),
			})

			return
		}

		limit = parsed
	}

	tally, recent, err := that.scores.Scoreboard(req.Context(), limit)
	if err != nil {
		log.Error("failed to get scoreboard", "error", err)
		that.writeError(w, err)

		return
	}

	if recent == nil {
		recent = []*entity.RoundResult{}
	}

	that.writeJSON(w, http.StatusOK, scoreboardResponse{
		SessionID: that.scores.SessionID(),
		Tally:     tally,
		Rounds:    tally.Rounds(),
		Recent:    recent,
	})
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	switch kind {
	case apperror.KindValidation:
		status, message = http.StatusBadRequest, err.Error()
	case apperror.KindState, apperror.KindTurn:
		status, message = http.StatusConflict, err.Error()
	case apperror.KindUnknown:
	}

	that.writeJSON(w, status, errorResponse{Error: message, Kind: kind.String()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
