package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-session/internal/config"
	"github.com/rocketscienceinc/tictactoe-session/internal/console"
	"github.com/rocketscienceinc/tictactoe-session/internal/repository"
	"github.com/rocketscienceinc/tictactoe-session/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-session/internal/service"
	"github.com/rocketscienceinc/tictactoe-session/internal/session"
	"github.com/rocketscienceinc/tictactoe-session/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-session/transport/rest"
	"github.com/rocketscienceinc/tictactoe-session/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs a multiplayer session until it is interrupted.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	sessionID := uuid.NewString()
	log := logger.With("component", "app", "session_id", sessionID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	policy, err := conf.Game.Policy()
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	botSymbol, withBot, err := conf.Game.Bot()
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	table := session.New(session.Options{
		Policy:       policy,
		Countdown:    conf.Session.CountdownSeconds,
		TickInterval: conf.Session.TickInterval,
	})
	defer table.Close()

	table.SetPanicHandler(func(recovered any) {
		log.Error("session listener panicked", "panic", recovered)
	})

	watchSession(log, table)

	scoreboardRepo := repository.NewScoreboardRepository(redisStorage)
	scoreKeeper := usecase.NewScoreKeeper(logger, sessionID, scoreboardRepo)

	stopKeeper := scoreKeeper.Watch(table)
	defer stopKeeper()

	keeperDone := make(chan struct{})
	go func() {
		defer close(keeperDone)
		scoreKeeper.Run(ctx)
	}()

	// wait for pending results before the storage is closed
	defer func() {
		cancel()
		<-keeperDone
	}()

	if withBot {
		seat := service.NewBotSeat(logger, table, botSymbol)
		seat.Start()
		defer seat.Stop()

		log.Info("bot seated", "symbol", botSymbol.String())
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, table, scoreKeeper)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		feed := websocket.New(logger, table, sessionID)
		feed.Attach()
		if wsErr := feed.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	// the reader stays blocked on input after shutdown, so nobody waits for it
	go func() {
		if seatsErr := console.NewSeats(logger, table, in, out).Run(ctx); seatsErr != nil && !errors.Is(seatsErr, context.Canceled) {
			log.Error("console input failed", "error", seatsErr)
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// watchSession - logs the lifecycle of the session.
func watchSession(log *slog.Logger, table *session.Coordinator) {
	table.OnMoveApplied(func(event session.MoveApplied) {
		log.Debug("move applied", "round", event.Round, "player", event.Player.String(), "row", event.Row, "col", event.Col)
	})
	table.OnRoundEnded(func(event session.RoundEnded) {
		log.Info("round ended", "round", event.Round, "outcome", event.Outcome.String())
	})
	table.OnSessionReset(func(event session.SessionReset) {
		log.Info("round started", "round", event.Round, "starting_player", event.StartingPlayer.String())
	})
}
