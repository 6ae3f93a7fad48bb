package web

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/keywordmaster/keywordmaster/internal/logging"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// Live event types.
const (
	EventState   = "state"
	EventResults = "results"
)

// LiveEvent is one message on the /ws stream.
type LiveEvent struct {
	Type    string       `json:"type"`
	Version string       `json:"version,omitempty"`
	Session *sessionView `json:"session,omitempty"`
}

// liveHub fans the results-ready signal out to open connections. State
// changes reach each connection through its own controller subscription.
type liveHub struct {
	mu      sync.Mutex
	clients map[chan struct{}]struct{}
	closed  bool
}

func newLiveHub() *liveHub {
	return &liveHub{clients: make(map[chan struct{}]struct{})}
}

func (h *liveHub) add() (chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan struct{}, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.clients[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.clients[ch]; ok {
			delete(h.clients, ch)
			close(ch)
		}
	}
}

func (h *liveHub) broadcastResults() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *liveHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

// handleLive upgrades to a websocket and streams the session: the current
// state on connect, a state event after every change and a results event
// once new results are ready to be shown.
func (s *Server) handleLive(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed", zap.String("remote_addr", c.ClientIP()), zap.Error(err))
		return
	}
	remoteAddr := c.ClientIP()
	logging.Debug("Live connection opened", zap.String("remote_addr", remoteAddr))

	updates, unsubscribe := s.ctrl.Subscribe()
	results, leave := s.live.add()
	defer func() {
		leave()
		unsubscribe()
		_ = conn.Close()
		logging.Debug("Live connection closed", zap.String("remote_addr", remoteAddr))
	}()

	done := make(chan struct{})
	go readPump(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := s.writeState(conn); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			if err := s.writeState(conn); err != nil {
				return
			}
		case _, ok := <-results:
			if !ok {
				return
			}
			if err := writeEvent(conn, LiveEvent{Type: EventResults}); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeState(conn *websocket.Conn) error {
	view := newSessionView(s.ctrl.Snapshot())
	return writeEvent(conn, LiveEvent{
		Type:    EventState,
		Version: stateVersion(view.Snapshot),
		Session: &view,
	})
}

func writeEvent(conn *websocket.Conn, event LiveEvent) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(event); err != nil {
		logging.Debug("Live write failed", zap.String("type", event.Type), zap.Error(err))
		return err
	}
	return nil
}

// readPump discards client messages and closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
