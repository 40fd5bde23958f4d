// Package websocket streams the lifecycle of a session to spectators.
// The feed is outbound only: anything a client sends is discarded.
package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-session/internal/notify"
	"github.com/rocketscienceinc/tictactoe-session/internal/session"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// messages buffered per client before it is considered too slow and dropped
	sendBuffer = 64
)

type table interface {
	Snapshot() session.Snapshot
	OnMoveApplied(listener func(session.MoveApplied)) notify.Handle
	OnRoundEnded(listener func(session.RoundEnded)) notify.Handle
	OnCountdownTick(listener func(session.CountdownTick)) notify.Handle
	OnSessionReset(listener func(session.SessionReset)) notify.Handle
	Unsubscribe(handle notify.Handle) bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (that *client) close() {
	that.once.Do(func() { close(that.send) })
}

type Server struct {
	logger    *slog.Logger
	table     table
	sessionID string
	upgrader  websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	handles []notify.Handle
}

func New(logger *slog.Logger, table table, sessionID string) *Server {
	return &Server{
		logger:    logger.With("component", "spectator_feed"),
		table:     table,
		sessionID: sessionID,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Attach - starts forwarding session events to connected clients.
func (that *Server) Attach() {
	handles := []notify.Handle{
		that.table.OnMoveApplied(func(event session.MoveApplied) {
			that.broadcast(actionMove, movePayload{
				Round:   event.Round,
				Row:     event.Row,
				Col:     event.Col,
				Player:  event.Player,
				Outcome: event.Outcome,
			})
			that.broadcastState()
		}),
		that.table.OnRoundEnded(func(event session.RoundEnded) {
			that.broadcast(actionRoundEnd, roundEndedPayload{
				Round:     event.Round,
				Outcome:   event.Outcome,
				Winner:    event.Outcome.Winner(),
				Board:     event.Board,
				Remaining: event.Remaining,
			})
		}),
		that.table.OnCountdownTick(func(event session.CountdownTick) {
			that.broadcast(actionTick, tickPayload(event))
		}),
		that.table.OnSessionReset(func(event session.SessionReset) {
			that.broadcast(actionReset, resetPayload(event))
			that.broadcastState()
		}),
	}

	that.mu.Lock()
	that.handles = append(that.handles, handles...)
	that.mu.Unlock()
}

// Handler - returns the HTTP handler serving the feed on /ws.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", that.serveWS)

	return mux
}

// Start - serves the feed on port until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeWait)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
		that.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Close - detaches from the session and disconnects every client.
func (that *Server) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, handle := range that.handles {
		that.table.Unsubscribe(handle)
	}
	that.handles = nil

	for c := range that.clients {
		c.close()
		delete(that.clients, c)
	}
}

// Clients - number of connected spectators.
func (that *Server) Clients() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.clients)
}

func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS", "remote", req.RemoteAddr)

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	if err = that.register(c); err != nil {
		log.Error("failed to encode state", "error", err)
		_ = conn.Close()

		return
	}

	log.Info("spectator connected", "clients", that.Clients())

	go that.writePump(c)
	that.readPump(c)

	that.remove(c)
	log.Info("spectator disconnected", "clients", that.Clients())
}

// register - queues the current state and adds c to the broadcast set in one step,
// so every later event reaches c after its state.
func (that *Server) register(c *client) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	state, err := that.stateMessage()
	if err != nil {
		return err
	}

	c.send <- state
	that.clients[c] = struct{}{}

	return nil
}

// readPump - consumes control frames until the client goes away.
func (that *Server) readPump(c *client) {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.logger.Debug("spectator read failed", "error", err)
			}

			return
		}
	}
}

func (that *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (that *Server) remove(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.clients[c]; ok {
		delete(that.clients, c)
		c.close()
	}
}

func (that *Server) stateMessage() ([]byte, error) {
	return encode(actionState, statePayload{SessionID: that.sessionID, Snapshot: that.table.Snapshot()})
}

func (that *Server) broadcastState() {
	message, err := that.stateMessage()
	if err != nil {
		that.logger.Error("failed to encode state", "error", err)
		return
	}

	that.send(message)
}

func (that *Server) broadcast(action string, payload any) {
	message, err := encode(action, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "action", action, "error", err)
		return
	}

	that.send(message)
}

// send - never blocks the session: a client whose buffer is full is disconnected.
func (that *Server) send(message []byte) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.clients {
		select {
		case c.send <- message:
		default:
			that.logger.Warn("spectator too slow, disconnecting")
			delete(that.clients, c)
			c.close()
		}
	}
}
