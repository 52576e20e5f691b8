package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/magefree/arena-go/internal/game"
	"github.com/magefree/arena-go/internal/input"
	"github.com/magefree/arena-go/internal/output"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Clients int    `json:"clients"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
		Code:    status,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Clients: s.hub.ClientCount(),
	})
}

// handleSimulate runs the posted document and answers with the result array.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxMessageSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	doc, err := input.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results := make([]*game.Result, 0)
	stats, err := s.simulate(r.Context(), doc, func(res *game.Result) error {
		results = append(results, res)
		return nil
	})
	if err != nil {
		s.logger.Warn("simulation failed", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("simulation failed: %w", err))
		return
	}

	s.logger.Info("simulation served",
		zap.Int("games_played", stats.GamesPlayed),
		zap.Int("records", len(results)),
	)

	w.Header().Set("Content-Type", "application/json")
	if err := output.Write(w, results); err != nil {
		s.logger.Error("failed to write results", zap.Error(err))
	}
}
