package ws

import (
	"net/http"
	"sync"
	"time"

	"restropos-services/internal/auth"
	"restropos-services/internal/config"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server pushes order lifecycle events to connected back-office dashboards
// so an open dashboard can refetch without polling. Clients authenticate
// with the same bearer token as the REST API, passed as a query parameter
// since browsers cannot set headers on websocket upgrades.
type Server struct {
	logger *zap.Logger
	cfg    config.Config

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func New(logger *zap.Logger, cfg config.Config) *Server {
	return &Server{
		logger:  logger,
		cfg:     cfg,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// AdminOrdersWS upgrades the connection and keeps it registered until the
// peer goes away. The read loop only drains control frames; this feed is
// one-way.
func (s *Server) AdminOrdersWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if _, err := auth.VerifyToken(token, s.cfg.JWTSecret); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends an event to every connected dashboard. Slow or dead
// connections are dropped rather than blocking the caller.
func (s *Server) Broadcast(event any) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WSWriteTimeout))
		if err := conn.WriteJSON(event); err != nil {
			s.drop(conn)
		}
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		_ = conn.Close()
	}
	s.mu.Unlock()
}
