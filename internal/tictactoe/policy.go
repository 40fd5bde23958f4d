package tictactoe

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

var ErrUnknownPolicy = errors.New("unknown starting player policy")

// StartingPlayerPolicy picks the player who opens a new game.
type StartingPlayerPolicy interface {
	StartingPlayer() entity.Cell
}

// PolicyFunc adapts a plain function to StartingPlayerPolicy.
type PolicyFunc func() entity.Cell

func (that PolicyFunc) StartingPlayer() entity.Cell {
	return that()
}

// FixedStart always opens with the same player.
type FixedStart entity.Cell

func (that FixedStart) StartingPlayer() entity.Cell {
	return entity.Cell(that)
}

// RandomStart draws the opening player from a seeded source, so a seed reproduces the sequence.
type RandomStart struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomStart(seed int64) *RandomStart {
	return &RandomStart{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
	}
}

func (that *RandomStart) StartingPlayer() entity.Cell {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.rnd.Intn(2) == 0 {
		return entity.PlayerX
	}

	return entity.PlayerO
}

// ParsePolicy - builds a policy from its configuration name: "x", "o" or "random".
func ParsePolicy(name string, seed int64) (StartingPlayerPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "x":
		return FixedStart(entity.PlayerX), nil
	case "o":
		return FixedStart(entity.PlayerO), nil
	case "random", "":
		return NewRandomStart(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

func startingPlayer(policy StartingPlayerPolicy) entity.Cell {
	player := policy.StartingPlayer()
	if !player.IsPlayer() {
		panic(fmt.Sprintf("starting player policy returned %v, want X or O", player))
	}

	return player
}
