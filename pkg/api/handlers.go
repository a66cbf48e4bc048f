package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dixieflatline76/photoframe/config"
	"github.com/dixieflatline76/photoframe/pkg"
	"github.com/dixieflatline76/photoframe/pkg/googlephotos"
	"github.com/dixieflatline76/photoframe/pkg/render"
	"github.com/dixieflatline76/photoframe/util/log"
)

// userFacingError is all a display is told when a frame cannot be produced.
const userFacingError = "could not retrieve image"

type imageJSON struct {
	UID             string `json:"uid"`
	URL             string `json:"url"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	ImageUpdateDate int64  `json:"image_update_date"`
	AlbumAddDate    int64  `json:"album_add_date"`
	DisplayURL      string `json:"display_url,omitempty"`
}

type albumJSON struct {
	URL      string      `json:"url"`
	Title    string      `json:"title,omitempty"`
	CoverURL string      `json:"cover_url,omitempty"`
	Skipped  int         `json:"skipped"`
	Images   []imageJSON `json:"images"`
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "running",
		"version": config.AppVersion,
	})
}

// handleAlbum lists the records of the configured album.
func (s *Server) handleAlbum(w http.ResponseWriter, r *http.Request) {
	albumURL := s.settings[pkg.SettingURL]
	if albumURL == "" {
		http.Error(w, "No album configured", http.StatusServiceUnavailable)
		return
	}

	album, err := s.source.FetchAlbum(r.Context(), albumURL)
	if err != nil {
		log.Printf("Album request failed: %v", err)
		http.Error(w, userFacingError, http.StatusBadGateway)
		return
	}

	resp := albumJSON{
		URL:      album.URL,
		Title:    album.Title,
		CoverURL: album.CoverURL,
		Skipped:  album.Skipped,
		Images:   make([]imageJSON, 0, len(album.Records)),
	}
	ra, _ := s.source.(pkg.ResolutionAware)
	width, height := pkg.TargetDimensions(s.device)
	for _, rec := range album.Records {
		img := imageJSON{
			UID:             rec.UID,
			URL:             rec.URL,
			Width:           rec.Width,
			Height:          rec.Height,
			ImageUpdateDate: rec.ImageUpdateDate,
			AlbumAddDate:    rec.AlbumAddDate,
		}
		if ra != nil {
			img.DisplayURL = ra.WithResolution(rec.URL, width, height)
		}
		resp.Images = append(resp.Images, img)
	}
	writeJSON(w, resp)
}

// handleImage generates a fresh frame, sends it as JPEG and pushes it to the
// connected displays. ?fit=false skips cropping to the exact panel size.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	img, err := s.source.GenerateImage(ctx, s.settings, s.device)
	if err != nil {
		var cfgErr *googlephotos.ConfigError
		if errors.As(err, &cfgErr) {
			http.Error(w, "No album configured", http.StatusServiceUnavailable)
			return
		}
		log.Printf("Image request failed: %v", err)
		http.Error(w, userFacingError, http.StatusBadGateway)
		return
	}

	if fit, err := strconv.ParseBool(r.URL.Query().Get("fit")); err != nil || fit {
		width, height := pkg.TargetDimensions(s.device)
		if img, err = s.fitter.Fit(ctx, img, width, height); err != nil {
			log.Printf("Fitting image failed: %v", err)
			http.Error(w, userFacingError, http.StatusInternalServerError)
			return
		}
	}

	data, err := render.Encode(ctx, img, render.ContentTypeJPEG)
	if err != nil {
		log.Printf("Encoding image failed: %v", err)
		http.Error(w, userFacingError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", render.ContentTypeJPEG)
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(data); err != nil {
		log.Printf("Writing image failed: %v", err)
		return
	}
	s.BroadcastImage(data)
}

// handleWebSocket upgrades the connection to WebSocket.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	for {
		// Displays only send keepalives.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
