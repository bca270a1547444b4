package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/repforge/internal/generator"
	"github.com/meltforce/repforge/internal/models"
	"github.com/meltforce/repforge/internal/progression"
)

// generateRequest is the payload for POST /api/v1/workouts/generate.
type generateRequest struct {
	Plan       models.PlanType    `json:"plan"`
	Equipment  []models.Equipment `json:"equipment,omitempty"`
	Sets       int                `json:"sets,omitempty"`
	TargetReps int                `json:"target_reps,omitempty"`
	Supersets  bool               `json:"supersets"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	opts, err := s.buildOptions(r, req.Equipment, req.Sets, req.TargetReps, req.Supersets)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	workout, err := s.gen.Generate(req.Plan, opts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// substituteRequest is the payload for POST /api/v1/workouts/substitute.
type substituteRequest struct {
	Workout   models.Workout     `json:"workout"`
	Index     int                `json:"index"`
	Equipment []models.Equipment `json:"equipment,omitempty"`
}

func (s *Server) handleSubstitute(w http.ResponseWriter, r *http.Request) {
	var req substituteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	opts, err := s.buildOptions(r, req.Equipment, 0, 0, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	replacement, err := s.gen.Substitute(&req.Workout, req.Index, opts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"workout":     req.Workout,
		"replacement": replacement,
	})
}

// buildOptions merges request parameters with the user's stored
// preferences (weights and favorites) and the configured defaults.
func (s *Server) buildOptions(r *http.Request, equipment []models.Equipment, sets, targetReps int, supersets bool) (generator.Options, error) {
	uid := userIDFromContext(r)
	weights, favorites, err := s.db.PrefMaps(r.Context(), uid)
	if err != nil {
		return generator.Options{}, err
	}

	if sets <= 0 {
		sets = s.gencfg.Sets
	}
	if targetReps <= 0 {
		targetReps = s.gencfg.TargetReps
	}

	return generator.Options{
		Equipment:  equipment,
		Sets:       sets,
		TargetReps: targetReps,
		Supersets:  supersets,
		Favorites:  favorites,
		Weights:    weights,
	}, nil
}

// sessionResponse is returned after a completed session is persisted.
type sessionResponse struct {
	SessionID   uuid.UUID                `json:"session_id"`
	Inserted    bool                     `json:"inserted"`
	SetsStored  int64                    `json:"sets_stored"`
	Suggestions []progression.Suggestion `json:"suggestions"`
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var payload models.SessionLog
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := payload.Validate(s.gencfg.Sets); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	for _, ex := range payload.Exercises {
		if _, ok := s.cat.Find(ex.Name); !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown exercise: " + ex.Name})
			return
		}
	}
	if payload.Date.IsZero() {
		payload.Date = time.Now()
	}

	uid := userIDFromContext(r)
	result, err := s.storeSession(r, uid, &payload)
	if err != nil {
		s.log.Error("session store error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// storeSession persists the log, updates the preference store with the
// progressed weights, and returns the per-exercise suggestions.
func (s *Server) storeSession(r *http.Request, uid int, payload *models.SessionLog) (*sessionResponse, error) {
	ctx := r.Context()
	sessionID := uuid.New()

	inserted, err := s.db.InsertSession(ctx, models.SessionRow{
		ID:          sessionID,
		UserID:      uid,
		Date:        payload.Date,
		DurationSec: payload.DurationSec,
		WorkoutType: payload.WorkoutType,
		Notes:       payload.Notes,
	})
	if err != nil {
		return nil, err
	}

	var setRows []models.SessionSetRow
	for _, ex := range payload.Exercises {
		for i, set := range ex.Sets {
			setRows = append(setRows, models.SessionSetRow{
				SessionID:    sessionID,
				UserID:       uid,
				ExerciseName: ex.Name,
				SetNumber:    i + 1,
				WeightKg:     set.WeightKg,
				Reps:         set.Reps,
				TargetReps:   ex.TargetReps,
			})
		}
	}
	stored, err := s.db.InsertSessionSets(ctx, setRows)
	if err != nil {
		return nil, err
	}

	resp := &sessionResponse{SessionID: sessionID, Inserted: inserted, SetsStored: stored}
	for _, ex := range payload.Exercises {
		catEx, ok := s.cat.Find(ex.Name)
		if !ok {
			continue
		}
		sug := progression.Evaluate(ex, catEx.Equipment, catEx.Type)
		resp.Suggestions = append(resp.Suggestions, sug)

		targetReps := ex.TargetReps
		if targetReps <= 0 {
			targetReps = s.gencfg.TargetReps
		}
		if err := s.db.UpsertPref(ctx, uid, catEx.Name, sug.NextKg, targetReps); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (s *Server) handleQuerySessions(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	typeFilter := r.URL.Query().Get("type")
	sessions, err := s.db.QuerySessions(r.Context(), start, end, userIDFromContext(r), typeFilter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	sessionID, err := uuid.Parse(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	detail, err := s.db.GetSession(r.Context(), sessionID, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
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

	type progressPoint struct {
		Date         time.Time `json:"date"`
		BestWeightKg float64   `json:"best_weight_kg"`
		BestReps     int       `json:"best_reps"`
		TotalSets    int       `json:"total_sets"`
		VolumeKg     float64   `json:"volume_kg"`
		Est1RM       float64   `json:"est_1rm"`
	}
	out := make([]progressPoint, len(points))
	for i, p := range points {
		out[i] = progressPoint{
			Date:         p.Date,
			BestWeightKg: p.BestWeightKg,
			BestReps:     p.BestReps,
			TotalSets:    p.TotalSets,
			VolumeKg:     p.VolumeKg,
			Est1RM:       progression.Estimate1RM(p.BestWeightKg, p.BestReps, ""),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}

	if startStr == "" {
		// Default: 90 days back from the end of the range
		start = end.AddDate(0, 0, -90)
		return
	}
	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return
}
