// Package api serves stored plate runs over HTTP.
// All endpoints are GET and read-only.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/talgya/plategraph/internal/persistence"
	"github.com/talgya/plategraph/internal/tectonics"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 200
)

// Server exposes a persistence.DB over HTTP.
type Server struct {
	DB   *persistence.DB
	Port int

	// Cell assignments are the large payload; limit them per client.
	cellLimiter *RateLimiter
}

// NewServer creates a server for db listening on port.
func NewServer(db *persistence.DB, port int) *Server {
	return &Server{
		DB:          db,
		Port:        port,
		cellLimiter: NewRateLimiter(60, time.Minute),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/runs", s.handleRuns)
	mux.HandleFunc("GET /api/v1/runs/{id}", s.handleRun)
	mux.HandleFunc("GET /api/v1/runs/{id}/cells", RateLimitMiddleware(s.cellLimiter, s.handleCells))
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	slog.Info("HTTP API stopped")
	return nil
}

// handleRuns lists recent runs (GET /api/v1/runs?limit=N).
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRunLimit)
	}

	runs, err := s.DB.RecentRuns(limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if runs == nil {
		runs = []persistence.Run{}
	}
	writeJSON(w, runs)
}

type plateEntry struct {
	ID        int     `json:"id"`
	Role      string  `json:"role"`
	Kind      string  `json:"kind"`
	Pole      string  `json:"pole"`
	Cells     int     `json:"cells"`
	SeedCell  int     `json:"seed_cell"`
	SeedX     float64 `json:"seed_x"`
	SeedY     float64 `json:"seed_y"`
	Weight    float64 `json:"weight"`
	VelocityX float64 `json:"velocity_x"`
	VelocityY float64 `json:"velocity_y"`
	Rotation  float64 `json:"rotation"`
}

// handleRun returns one run with its plates (GET /api/v1/runs/{id}).
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id, ok := runID(w, r)
	if !ok {
		return
	}
	run, err := s.DB.GetRun(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	g, err := s.DB.LoadRun(id)
	if err != nil {
		s.fail(w, err)
		return
	}

	sizes := g.Sizes()
	plates := make([]plateEntry, 0, len(g.Plates))
	for _, p := range g.Plates {
		plates = append(plates, plateEntry{
			ID:        p.ID,
			Role:      p.Role.String(),
			Kind:      p.Kind.String(),
			Pole:      p.Pole.String(),
			Cells:     sizes[p.ID],
			SeedCell:  p.SeedCell,
			SeedX:     p.SeedX,
			SeedY:     p.SeedY,
			Weight:    p.Weight,
			VelocityX: p.VelocityX,
			VelocityY: p.VelocityY,
			Rotation:  p.Rotation,
		})
	}

	writeJSON(w, map[string]any{
		"run":       run,
		"plates":    plates,
		"tectonic":  g.CountRole(tectonics.RoleTectonic),
		"polar_cap": g.CountRole(tectonics.RolePolarCap),
		"micro":     g.CountRole(tectonics.RolePolarMicroplate),
	})
}

// handleCells returns the cell-to-plate assignment (GET /api/v1/runs/{id}/cells).
func (s *Server) handleCells(w http.ResponseWriter, r *http.Request) {
	id, ok := runID(w, r)
	if !ok {
		return
	}
	g, err := s.DB.LoadRun(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"cell_count":    len(g.CellToPlate),
		"cell_to_plate": g.CellToPlate,
	})
}

func runID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, persistence.ErrRunNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	slog.Error("api request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
