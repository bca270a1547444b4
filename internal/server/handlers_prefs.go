package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cat.All())
}

func (s *Server) handleCatalogMuscles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cat.Muscles())
}

func (s *Server) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.db.GetPrefs(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// prefUpdate is the payload for PUT /api/v1/prefs/{exercise}. Fields
// left nil keep their stored values.
type prefUpdate struct {
	WeightKg   *float64 `json:"weight_kg,omitempty"`
	TargetReps *int     `json:"target_reps,omitempty"`
	Favorite   *bool    `json:"favorite,omitempty"`
}

func (s *Server) handlePutPref(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "exercise"))
	if err != nil || name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise name"})
		return
	}
	catEx, ok := s.cat.Find(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown exercise: " + name})
		return
	}

	var upd prefUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if upd.WeightKg != nil && *upd.WeightKg < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight must be non-negative"})
		return
	}
	if upd.TargetReps != nil && *upd.TargetReps < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "target_reps must be positive"})
		return
	}

	uid := userIDFromContext(r)
	ctx := r.Context()

	if upd.WeightKg != nil || upd.TargetReps != nil {
		// Merge with stored values so a partial update keeps the rest.
		weight, reps := 0.0, s.gencfg.TargetReps
		prefs, err := s.db.GetPrefs(ctx, uid)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		for _, p := range prefs {
			if p.ExerciseName == catEx.Name {
				weight, reps = p.LastWeightKg, p.TargetReps
				break
			}
		}
		if upd.WeightKg != nil {
			weight = *upd.WeightKg
		}
		if upd.TargetReps != nil {
			reps = *upd.TargetReps
		}
		if err := s.db.UpsertPref(ctx, uid, catEx.Name, weight, reps); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}

	if upd.Favorite != nil {
		if err := s.db.SetFavorite(ctx, uid, catEx.Name, *upd.Favorite); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
