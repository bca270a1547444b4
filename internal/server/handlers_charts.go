package server

import (
	"net/http"

	"github.com/meltforce/repforge/internal/charts"
)

// handleProgressChart renders the per-exercise progress chart as HTML.
func (s *Server) handleProgressChart(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	points, err := s.db.ExerciseHistory(r.Context(), exercise, start, end, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderProgress(w, exercise, points); err != nil {
		s.log.Error("chart render error", "error", err)
	}
}
