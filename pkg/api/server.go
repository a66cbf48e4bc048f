// Package api serves generated frames to displays on the local network.
package api

import (
	"context"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/dixieflatline76/photoframe/pkg"
	"github.com/dixieflatline76/photoframe/pkg/googlephotos"
	"github.com/dixieflatline76/photoframe/pkg/render"
	"github.com/dixieflatline76/photoframe/util/log"
	"github.com/gorilla/websocket"
)

// AlbumSource is the album backend the server draws from.
type AlbumSource interface {
	FetchAlbum(ctx context.Context, albumURL string) (*googlephotos.Album, error)
	GenerateImage(ctx context.Context, settings pkg.Settings, device pkg.DeviceConfig) (image.Image, error)
}

// Server represents the local REST/WebSocket server.
type Server struct {
	addr       string
	httpServer *http.Server
	mux        *http.ServeMux
	upgrader   websocket.Upgrader

	source   AlbumSource
	settings pkg.Settings
	device   pkg.DeviceConfig
	fitter   *render.Fitter

	// WebSocket management
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
}

// NewServer creates a server listening on addr that renders frames for device
// from the album in settings.
func NewServer(addr string, source AlbumSource, settings pkg.Settings, device pkg.DeviceConfig) *Server {
	s := &Server{
		addr: addr,
		mux:  http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		source:   source,
		settings: settings,
		device:   device,
		fitter:   render.NewFitter(),
		clients:  make(map[*websocket.Conn]bool),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/album", s.enableCORS(s.handleAlbum))
	s.mux.HandleFunc("/image", s.enableCORS(s.handleImage))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
}

// enableCORS adds CORS headers to the handler.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		next(w, r)
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the server. It blocks until the server stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Serving frames on http://%s", s.addr)
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// ClientCount returns the number of connected displays.
func (s *Server) ClientCount() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// BroadcastImage pushes an encoded frame to every connected display. Clients
// that fail to receive it are dropped.
func (s *Server) BroadcastImage(data []byte) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for client := range s.clients {
		if err := client.WriteMessage(websocket.BinaryMessage, data); err != nil {
			log.Printf("Failed to broadcast to client: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}
}
