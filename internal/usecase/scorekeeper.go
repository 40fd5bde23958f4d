package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/notify"
	"github.com/rocketscienceinc/tictactoe-session/internal/session"
)

const (
	pendingResults = 32
	drainTimeout   = 2 * time.Second
)

type scoreboardRepo interface {
	Record(ctx context.Context, result *entity.RoundResult) error
	Tally(ctx context.Context, sessionID string) (entity.Tally, error)
	Recent(ctx context.Context, sessionID string, limit int) ([]*entity.RoundResult, error)
}

type roundSource interface {
	OnRoundEnded(listener func(session.RoundEnded)) notify.Handle
	Unsubscribe(handle notify.Handle) bool
}

// ScoreKeeper stores the result of every finished round of one session.
// Results are written from Run's goroutine, never from the session's.
type ScoreKeeper struct {
	logger    *slog.Logger
	sessionID string
	repo      scoreboardRepo

	results chan *entity.RoundResult
	now     func() time.Time
}

func NewScoreKeeper(logger *slog.Logger, sessionID string, repo scoreboardRepo) *ScoreKeeper {
	return &ScoreKeeper{
		logger:    logger.With("component", "score_keeper", "session_id", sessionID),
		sessionID: sessionID,
		repo:      repo,

		results: make(chan *entity.RoundResult, pendingResults),
		now:     time.Now,
	}
}

func (that *ScoreKeeper) SessionID() string {
	return that.sessionID
}

// Watch - queues every round ended in source until the returned function is called.
func (that *ScoreKeeper) Watch(source roundSource) (stop func()) {
	handle := source.OnRoundEnded(that.enqueue)

	return func() {
		source.Unsubscribe(handle)
	}
}

// Run - records queued rounds until ctx is done, then flushes what is left.
func (that *ScoreKeeper) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			that.drain(ctx)
			return
		case result := <-that.results:
			that.record(ctx, result)
		}
	}
}

func (that *ScoreKeeper) enqueue(event session.RoundEnded) {
	result := &entity.RoundResult{
		SessionID:  that.sessionID,
		Round:      event.Round,
		Outcome:    event.Outcome,
		Board:      event.Board,
		FinishedAt: that.now().UTC(),
	}

	select {
	case that.results <- result:
	default:
		that.logger.Warn("scoreboard is lagging, round dropped", "round", event.Round, "outcome", event.Outcome.String())
	}
}

func (that *ScoreKeeper) drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()

	for {
		select {
		case result := <-that.results:
			that.record(ctx, result)
		default:
			return
		}
	}
}

func (that *ScoreKeeper) record(ctx context.Context, result *entity.RoundResult) {
	log := that.logger.With("method", "record", "round", result.Round)

	if err := that.repo.Record(ctx, result); err != nil {
		log.Error("failed to record round", "error", err)
		return
	}

	log.Info("round recorded", "outcome", result.Outcome.String())
}

// Scoreboard - returns the session's tally and its latest rounds, newest first.
func (that *ScoreKeeper) Scoreboard(ctx context.Context, limit int) (entity.Tally, []*entity.RoundResult, error) {
	tally, err := that.repo.Tally(ctx, that.sessionID)
	if err != nil {
		return entity.Tally{}, nil, fmt.Errorf("failed to get tally: %w", err)
	}

	recent, err := that.repo.Recent(ctx, that.sessionID, limit)
	if err != nil {
		return entity.Tally{}, nil, fmt.Errorf("failed to get recent rounds: %w", err)
	}

	return tally, recent, nil
}
