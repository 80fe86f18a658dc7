package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/purva252/study-connect-hub/internal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard may be served from another origin
	},
}

// Event is a pushed notification.
type Event struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// Hub tracks connected clients by user id and pushes best-effort
// notifications to them. A user may hold several connections (multiple tabs).
type Hub struct {
	mu      sync.RWMutex
	clients map[string][]*websocket.Conn
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string][]*websocket.Conn),
		log:     log,
	}
}

// Handle upgrades the request after validating the token query param.
func (h *Hub) Handle(validate func(token string) (*utils.Claims, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(401, gin.H{"error": "token missing"})
			return
		}

		claims, err := validate(token)
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn("ws upgrade failed", zap.Error(err))
			return
		}

		h.register(claims.UserID, conn)
		h.log.Debug("client connected", zap.String("userId", claims.UserID))

		go h.readLoop(claims.UserID, conn)
	}
}

// readLoop drains incoming frames so pings and close frames are processed;
// the channel is push-only.
func (h *Hub) readLoop(userID string, conn *websocket.Conn) {
	defer func() {
		h.unregister(userID, conn)
		conn.Close()
		h.log.Debug("client disconnected", zap.String("userId", userID))
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = append(h.clients[userID], conn)
}

func (h *Hub) unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[userID]
	for i, c := range conns {
		if c == conn {
			h.clients[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// Notify sends the event to every connection of the user. Missing or dead
// clients are skipped; delivery is never guaranteed. The hub lock serializes
// writers on a connection.
func (h *Hub) Notify(userID string, event string, data map[string]interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conn := range h.clients[userID] {
		if err := conn.WriteJSON(Event{Event: event, Data: data}); err != nil {
			h.log.Debug("ws write failed", zap.String("userId", userID), zap.Error(err))
		}
	}
}
