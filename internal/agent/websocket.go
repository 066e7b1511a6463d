package agent

import (
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WebSocketAgent plays over a websocket connection. Each text frame from
// the engine carries one line; frames from the agent may carry several
// newline separated lines.
type WebSocketAgent struct {
	*line

	conn *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
}

// NewWebSocketAgent takes ownership of conn and starts its read and ping
// loops.
func NewWebSocketAgent(conn *websocket.Conn, name string, cfg Config) *WebSocketAgent {
	a := &WebSocketAgent{
		conn: conn,
		done: make(chan struct{}),
	}
	logger := cfg.Logger.With().
		Str("component", "agent").
		Str("agent", name).
		Str("remote", conn.RemoteAddr().String()).
		Logger()
	a.line = newLine(cfg, logger, a.writeLine, a.shutdownConn)

	go a.readPump()
	go a.pingPump()
	return a
}

func (a *WebSocketAgent) writeLine(text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	select {
	case <-a.done:
		return ErrClosed
	default:
	}
	_ = a.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return a.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

func (a *WebSocketAgent) readPump() {
	defer a.readerDone()

	_ = a.conn.SetReadDeadline(time.Now().Add(pongWait))
	a.conn.SetPongHandler(func(string) error {
		return a.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, message, err := a.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				a.logger.Error().Err(err).Msg("Unexpected WebSocket close error")
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		for _, text := range strings.Split(string(message), "\n") {
			if text = strings.TrimSpace(text); text != "" {
				a.accept(text)
			}
		}
	}
}

func (a *WebSocketAgent) pingPump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-a.done:
			return
		case <-ticker.C:
			a.mu.Lock()
			_ = a.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := a.conn.WriteMessage(websocket.PingMessage, nil)
			a.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (a *WebSocketAgent) shutdownConn() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	close(a.done)
	_ = a.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = a.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match over"))
	return a.conn.Close()
}

// Closed is closed once the agent has been released.
func (a *WebSocketAgent) Closed() <-chan struct{} {
	return a.done
}
