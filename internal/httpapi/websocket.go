package httpapi

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/five82/flipclock/internal/logger"
	"github.com/five82/flipclock/internal/state"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// message is the envelope for every WebSocket frame.
type message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// sameOrigin accepts requests without an Origin header and requests whose
// Origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// hub tracks WebSocket clients. Each client has its own store and log
// subscriptions and a writer goroutine.
type hub struct {
	store    *state.Store
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newHub(store *state.Store) *hub {
	return &hub{
		store:    store,
		upgrader: websocket.Upgrader{CheckOrigin: sameOrigin},
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

func (h *hub) handleConnection(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[ws] = struct{}{}
	logger.Debugf("WebSocket client connected (Total: %d)", len(h.clients))
	h.mu.Unlock()

	updates, unsubscribe := h.store.Subscribe()
	done := make(chan struct{})
	go h.writeLoop(ws, updates, done)

	defer func() {
		unsubscribe()
		<-done
		h.remove(ws)
		logger.Debugf("WebSocket client disconnected")
	}()

	if err := ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Debugf("Failed to set initial read deadline: %v", err)
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Clients never send anything meaningful; reading drives pong and close
	// handling until the connection goes away.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *hub) writeLoop(ws *websocket.Conn, updates <-chan state.Snapshot, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	logs := logger.Subscribe()
	defer logger.Unsubscribe(logs)

	if snap, ok := h.store.Snapshot(); ok {
		if err := writeJSON(ws, message{Type: "snapshot", Data: snap}); err != nil {
			logger.Debugf("WebSocket initial write error: %v", err)
			_ = ws.Close()
			return
		}
	}

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := writeJSON(ws, message{Type: "snapshot", Data: snap}); err != nil {
				logger.Debugf("WebSocket write error: %v", err)
				_ = ws.Close()
				return
			}
		case entry := <-logs:
			if err := writeJSON(ws, message{Type: "log", Data: entry}); err != nil {
				_ = ws.Close()
				return
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.Debugf("WebSocket ping error: %v", err)
				_ = ws.Close()
				return
			}
		}
	}
}

func writeJSON(ws *websocket.Conn, v interface{}) error {
	if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return ws.WriteJSON(v)
}

func (h *hub) remove(ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ws]; ok {
		delete(h.clients, ws)
		if err := ws.Close(); err != nil {
			logger.Debugf("WebSocket close error: %v", err)
		}
	}
}

// closeAll drops every client. Hijacked connections are not closed by
// http.Server.Shutdown.
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ws := range h.clients {
		_ = ws.Close()
	}
}

func (h *hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
