// Package session runs consecutive rounds of one tic-tac-toe table: it guards turns,
// counts down after a finished round and swaps in a fresh engine.
//
// Events are queued while the state lock is held and delivered after it is released,
// in the order the state changes happened. Move and PlayAgainNow return only after
// their events reached every listener, even when another goroutine is delivering.
// A listener may call back into the coordinator; the events it causes are delivered
// once the current listener returns.
package session

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/notify"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

const (
	DefaultCountdown    = 5
	DefaultTickInterval = time.Second
)

type Options struct {
	Policy tictactoe.StartingPlayerPolicy

	// Countdown is the number of ticks between the end of a round and the next one.
	Countdown    int
	TickInterval time.Duration
}

type Coordinator struct {
	mu sync.RWMutex

	engine    *tictactoe.Engine
	round     int
	state     State
	remaining int
	closed    bool

	generation uint64
	cancel     context.CancelFunc

	pending []tictactoe.MoveApplied
	queue   []func()

	// queued and delivered count events, delivery is signalled on each increment
	queued    uint64
	delivered uint64
	delivery  *sync.Cond
	flushing  bool
	flusher   uint64

	policy    tictactoe.StartingPlayerPolicy
	countdown int
	interval  time.Duration

	moveApplied notify.Registry[MoveApplied]
	roundEnded  notify.Registry[RoundEnded]
	ticks       notify.Registry[CountdownTick]
	resets      notify.Registry[SessionReset]
}

// New - starts round 1. A nil policy means X always opens.
func New(opts Options) *Coordinator {
	that := &Coordinator{
		policy:    opts.Policy,
		countdown: opts.Countdown,
		interval:  opts.TickInterval,
		round:     1,
		state:     Active,
	}

	if that.policy == nil {
		that.policy = tictactoe.FixedStart(entity.PlayerX)
	}

	if that.countdown <= 0 {
		that.countdown = DefaultCountdown
	}

	if that.interval <= 0 {
		that.interval = DefaultTickInterval
	}

	that.delivery = sync.NewCond(&that.mu)
	that.engine = that.newEngine()

	return that
}

func (that *Coordinator) newEngine() *tictactoe.Engine {
	engine := tictactoe.NewEngine(that.policy)

	// runs inside Move, with that.mu held
	engine.OnMoveApplied(func(event tictactoe.MoveApplied) {
		that.pending = append(that.pending, event)
	})

	return engine
}

// Move - plays (row, col) for player. Only the engine's active player may move.
func (that *Coordinator) Move(player entity.Cell, row, col int) error {
	that.mu.Lock()
	round := that.round

	err := that.checkMove(player)
	if err == nil {
		err = that.engine.Move(row, col)
	}

	if err != nil {
		that.mu.Unlock()

		return fmt.Errorf("round %d: %w", round, err)
	}

	for _, event := range that.pending {
		that.enqueueMove(event)
	}
	that.pending = nil

	if outcome := that.engine.Outcome(); outcome.IsTerminal() {
		that.startCountdown()

		event := RoundEnded{
			Round:     that.round,
			Outcome:   outcome,
			Board:     that.engine.Board(),
			Remaining: that.remaining,
		}
		that.enqueue(func() { that.roundEnded.Notify(event) })
	}

	seq := that.queued
	that.mu.Unlock()
	that.flush(seq)

	return nil
}

func (that *Coordinator) checkMove(player entity.Cell) error {
	switch {
	case that.closed:
		return apperror.ErrSessionClosed
	case that.engine.Outcome().IsTerminal():
		return apperror.ErrGameFinished
	case player != that.engine.ActivePlayer():
		return apperror.ErrNotYourTurn
	default:
		return nil
	}
}

func (that *Coordinator) enqueueMove(event tictactoe.MoveApplied) {
	moved := MoveApplied{
		Round:   that.round,
		Row:     event.Row,
		Col:     event.Col,
		Player:  event.Player,
		Outcome: event.Outcome,
	}

	that.enqueue(func() { that.moveApplied.Notify(moved) })
}

// enqueue - must be called with that.mu held.
func (that *Coordinator) enqueue(deliver func()) {
	that.queue = append(that.queue, deliver)
	that.queued++
}

// PlayAgainNow - skips the rest of the countdown and starts the next round.
func (that *Coordinator) PlayAgainNow() error {
	that.mu.Lock()

	switch {
	case that.closed:
		that.mu.Unlock()
		return apperror.ErrSessionClosed
	case that.state != EndedCounting:
		round := that.round
		that.mu.Unlock()

		return fmt.Errorf("round %d: %w", round, apperror.ErrRoundInProgress)
	}

	that.reset()
	seq := that.queued
	that.mu.Unlock()
	that.flush(seq)

	return nil
}

// Close - stops a pending countdown. Moves are refused afterwards, reads keep working.
func (that *Coordinator) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	that.stopCountdown()
}

// startCountdown - must be called with that.mu held.
func (that *Coordinator) startCountdown() {
	that.state = EndedCounting
	that.remaining = that.countdown
	that.generation++

	ctx, cancel := context.WithCancel(context.Background())
	that.cancel = cancel

	go that.runCountdown(ctx, that.generation)
}

func (that *Coordinator) stopCountdown() {
	if that.cancel != nil {
		that.cancel()
		that.cancel = nil
	}

	that.generation++
}

func (that *Coordinator) runCountdown(ctx context.Context, generation uint64) {
	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		done, seq := that.tick(generation)
		that.flush(seq)

		if done {
			return
		}
	}
}

// tick - reports whether the countdown is over and the number of events queued so far.
func (that *Coordinator) tick(generation uint64) (bool, uint64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	// a tick that raced with PlayAgainNow or Close
	if generation != that.generation || that.state != EndedCounting {
		return true, that.queued
	}

	that.remaining--

	event := CountdownTick{Round: that.round, Remaining: that.remaining}
	that.enqueue(func() { that.ticks.Notify(event) })

	if that.remaining > 0 {
		return false, that.queued
	}

	that.reset()

	return true, that.queued
}

// reset - must be called with that.mu held.
func (that *Coordinator) reset() {
	that.stopCountdown()

	that.engine = that.newEngine()
	that.round++
	that.state = Active
	that.remaining = 0

	event := SessionReset{Round: that.round, StartingPlayer: that.engine.ActivePlayer()}
	that.enqueue(func() { that.resets.Notify(event) })
}

// flush - returns once the first seq events have been delivered. Called from a listener,
// it returns at once and the running delivery loop picks the new events up.
func (that *Coordinator) flush(seq uint64) {
	self := goroutineID()

	that.mu.Lock()
	defer that.mu.Unlock()

	for that.delivered < seq {
		switch {
		case !that.flushing:
			that.drain(self)
		case that.flusher == self:
			return
		default:
			that.delivery.Wait()
		}
	}
}

// drain - must be called with that.mu held. Listeners run with the lock released.
func (that *Coordinator) drain(self uint64) {
	that.flushing = true
	that.flusher = self

	for len(that.queue) > 0 {
		next := that.queue[0]
		that.queue = that.queue[1:]

		that.mu.Unlock()
		next()
		that.mu.Lock()

		that.delivered++
		that.delivery.Broadcast()
	}

	that.flushing = false
	that.flusher = 0
	that.delivery.Broadcast()
}

// goroutineID - reads the id from the "goroutine N [running]:" header of the current stack.
func goroutineID() uint64 {
	var buf [64]byte

	fields := bytes.Fields(buf[:runtime.Stack(buf[:], false)])
	if len(fields) < 2 {
		return 0
	}

	id, _ := strconv.ParseUint(string(fields[1]), 10, 64)

	return id
}

// CurrentBoard - returns a copy of the board of the current round.
func (that *Coordinator) CurrentBoard() entity.Board {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.engine.Board()
}

func (that *Coordinator) CurrentOutcome() entity.Outcome {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.engine.Outcome()
}

func (that *Coordinator) ActivePlayer() entity.Cell {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.engine.ActivePlayer()
}

func (that *Coordinator) State() State {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.state
}

// Remaining - ticks left before the next round, zero while a round is active.
func (that *Coordinator) Remaining() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.remaining
}

func (that *Coordinator) Round() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.round
}

func (that *Coordinator) Snapshot() Snapshot {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return Snapshot{
		Round:        that.round,
		State:        that.state,
		Board:        that.engine.Board(),
		Outcome:      that.engine.Outcome(),
		ActivePlayer: that.engine.ActivePlayer(),
		Remaining:    that.remaining,
	}
}

func (that *Coordinator) OnMoveApplied(listener func(MoveApplied)) notify.Handle {
	return that.moveApplied.Add(listener)
}

func (that *Coordinator) OnRoundEnded(listener func(RoundEnded)) notify.Handle {
	return that.roundEnded.Add(listener)
}

func (that *Coordinator) OnCountdownTick(listener func(CountdownTick)) notify.Handle {
	return that.ticks.Add(listener)
}

func (that *Coordinator) OnSessionReset(listener func(SessionReset)) notify.Handle {
	return that.resets.Add(listener)
}

// Unsubscribe - removes a listener registered with any of the On* methods.
func (that *Coordinator) Unsubscribe(handle notify.Handle) bool {
	return that.moveApplied.Remove(handle) ||
		that.roundEnded.Remove(handle) ||
		that.ticks.Remove(handle) ||
		that.resets.Remove(handle)
}

// SetPanicHandler - receives values recovered from panicking listeners.
func (that *Coordinator) SetPanicHandler(handler func(recovered any)) {
	that.moveApplied.SetPanicHandler(handler)
	that.roundEnded.SetPanicHandler(handler)
	that.ticks.SetPanicHandler(handler)
	that.resets.SetPanicHandler(handler)
}
