package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pokerlab/equitysim/internal/simulation"
	"github.com/pokerlab/equitysim/pkg/models"
)

// Server serves the persisted equity artifact read-only. A missing or
// unreadable artifact is surfaced as a distinct degraded state rather than
// a crash, so the front-end can show "data unavailable".
type Server struct {
	path string

	mu       sync.RWMutex
	artifact *models.Artifact
	modTime  time.Time

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
	upgrader  websocket.Upgrader
}

// NewServer creates a server for the artifact at the given path and
// attempts an initial load. A load failure is not fatal; the server starts
// degraded and recovers once the artifact appears.
func NewServer(artifactPath string) *Server {
	s := &Server{
		path:    artifactPath,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in development
			},
		},
	}
	if err := s.reload(); err != nil {
		log.Printf("Warning: equity artifact not loaded: %v", err)
	}
	return s
}

// Router returns the HTTP handler with all endpoints registered.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/equity", s.handleEquity)
	mux.HandleFunc("GET /api/equity/{hand}", s.handleHand)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)

	return mux
}

// Watch reloads the artifact whenever its mtime changes and pushes the
// fresh copy to every websocket client, until the context is canceled.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(s.path)
			if err != nil {
				continue
			}
			s.mu.RLock()
			stale := info.ModTime().After(s.modTime)
			s.mu.RUnlock()
			if !stale {
				continue
			}
			if err := s.reload(); err != nil {
				log.Printf("Error reloading artifact: %v", err)
				continue
			}
			log.Printf("Artifact reloaded from %s", s.path)
			s.broadcast()
		}
	}
}

// reload reads the artifact from disk under the write lock.
func (s *Server) reload() error {
	artifact, err := simulation.LoadArtifact(s.path)
	if err != nil {
		return err
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.artifact = artifact
	s.modTime = info.ModTime()
	s.mu.Unlock()
	return nil
}

func (s *Server) current() *models.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artifact
}

// handleEquity returns the whole artifact verbatim, or 503 when the data
// is unavailable so the consumer can degrade visibly.
func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	artifact := s.current()
	if artifact == nil {
		writeError(w, http.StatusServiceUnavailable, "equity data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

// handleHand returns the five table-size entries for one hand label.
func (s *Server) handleHand(w http.ResponseWriter, r *http.Request) {
	artifact := s.current()
	if artifact == nil {
		writeError(w, http.StatusServiceUnavailable, "equity data unavailable")
		return
	}
	hand := r.PathValue("hand")
	cells, ok := artifact.Hands[hand]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown hand "+hand)
		return
	}
	writeJSON(w, http.StatusOK, cells)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"data_loaded": s.current() != nil,
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()
	log.Println("Client connected")

	// Send the current artifact immediately so the client renders without
	// waiting for the next regeneration.
	if artifact := s.current(); artifact != nil {
		if err := conn.WriteJSON(artifact); err != nil {
			log.Printf("Error sending artifact: %v", err)
			s.dropClient(conn)
			return
		}
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.dropClient(conn)
			break
		}
	}
}

// broadcast pushes the current artifact to every connected client.
func (s *Server) broadcast() {
	artifact := s.current()
	if artifact == nil {
		return
	}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for client := range s.clients {
		if err := client.WriteJSON(artifact); err != nil {
			log.Printf("Error broadcasting to client: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
