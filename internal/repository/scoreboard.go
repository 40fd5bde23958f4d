package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// RecentLimit is the number of finished rounds kept per session.
const RecentLimit = 100

var ErrEmptySessionID = errors.New("session id is empty")

const (
	fieldWinsX = "wins_x"
	fieldWinsO = "wins_o"
	fieldDraws = "draws"
)

type ScoreboardRepository interface {
	Record(ctx context.Context, result *entity.RoundResult) error
	Tally(ctx context.Context, sessionID string) (entity.Tally, error)
	Recent(ctx context.Context, sessionID string, limit int) ([]*entity.RoundResult, error)
}

type dbScoreboard struct {
	client *redis.Client
}

func NewScoreboardRepository(client *redis.Client) ScoreboardRepository {
	return &dbScoreboard{
		client: client,
	}
}

func tallyKey(sessionID string) string {
	return "scoreboard:" + sessionID
}

func roundsKey(sessionID string) string {
	return "rounds:" + sessionID
}

// Record - counts a finished round and prepends it to the session's recent rounds.
func (that *dbScoreboard) Record(ctx context.Context, result *entity.RoundResult) error {
	if result.SessionID == "" {
		return ErrEmptySessionID
	}

	field, err := tallyField(result.Outcome)
	if err != nil {
		return err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal round result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, tallyKey(result.SessionID), field, 1)
		pipe.LPush(ctx, roundsKey(result.SessionID), resultJSON)
		pipe.LTrim(ctx, roundsKey(result.SessionID), 0, RecentLimit-1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record round: %w", err)
	}

	return nil
}

func tallyField(outcome entity.Outcome) (string, error) {
	switch outcome {
	case entity.WinX:
		return fieldWinsX, nil
	case entity.WinO:
		return fieldWinsO, nil
	case entity.Draw:
		return fieldDraws, nil
	default:
		return "", fmt.Errorf("round is not finished: %s", outcome)
	}
}

// Tally - returns the session's totals. An unknown session has an empty tally.
func (that *dbScoreboard) Tally(ctx context.Context, sessionID string) (entity.Tally, error) {
	values, err := that.client.HGetAll(ctx, tallyKey(sessionID)).Result()
	if err != nil {
		return entity.Tally{}, fmt.Errorf("failed to get tally: %w", err)
	}

	var tally entity.Tally

	for field, target := range map[string]*int{
		fieldWinsX: &tally.WinsX,
		fieldWinsO: &tally.WinsO,
		fieldDraws: &tally.Draws,
	} {
		raw, ok := values[field]
		if !ok {
			continue
		}

		if *target, err = strconv.Atoi(raw); err != nil {
			return entity.Tally{}, fmt.Errorf("corrupted tally field %s: %w", field, err)
		}
	}

	return tally, nil
}

// Recent - returns up to limit finished rounds, newest first.
func (that *dbScoreboard) Recent(ctx context.Context, sessionID string, limit int) ([]*entity.RoundResult, error) {
	if limit <= 0 || limit > RecentLimit {
		limit = RecentLimit
	}

	response, err := that.client.LRange(ctx, roundsKey(sessionID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent rounds: %w", err)
	}

	results := make([]*entity.RoundResult, 0, len(response))
	for _, raw := range response {
		var result entity.RoundResult
		if err = json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round result: %w", err)
		}

		results = append(results, &result)
	}

	return results, nil
}
