package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/repforge/internal/catalog"
	"github.com/meltforce/repforge/internal/generator"
	"github.com/meltforce/repforge/internal/models"
	"github.com/meltforce/repforge/internal/progression"
)

// defaultTimeRange returns start/end defaulting to the last 90 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -90)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// parseEquipment splits a comma-separated equipment list.
func parseEquipment(s string) []models.Equipment {
	if s == "" {
		return nil
	}
	var out []models.Equipment
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, models.Equipment(part))
		}
	}
	return out
}

// --- Tool definitions ---

var toolGenerateWorkout = mcp.NewTool("generate_workout",
	mcp.WithDescription("Generate a workout for a plan type. Selects exercises by muscle quota with compounds first, honoring an optional equipment filter, and can pair opposing-muscle supersets. Stored weights and favorites are applied."),
	mcp.WithString("plan", mcp.Required(), mcp.Description("Plan type"), mcp.Enum("full", "upper", "lower")),
	mcp.WithString("equipment", mcp.Description("Comma-separated equipment filter (e.g. 'barbell,dumbbell,bodyweight'). Empty means all equipment.")),
	mcp.WithNumber("sets", mcp.Description("Sets per exercise. Defaults to 3.")),
	mcp.WithNumber("target_reps", mcp.Description("Target reps per set. Defaults to 10.")),
	mcp.WithBoolean("supersets", mcp.Description("Pair opposing-muscle exercises into supersets. Defaults to false.")),
)

var toolSubstituteExercise = mcp.NewTool("substitute_exercise",
	mcp.WithDescription("Replace one exercise of a workout with an alternative for the same primary muscle, honoring the equipment filter and avoiding duplicates. Pass the workout JSON exactly as returned by generate_workout."),
	mcp.WithString("workout", mcp.Required(), mcp.Description("Workout JSON from generate_workout")),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based index of the exercise to replace")),
	mcp.WithString("equipment", mcp.Description("Comma-separated equipment filter")),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Query logged workout sessions in a time range, newest first."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("type", mcp.Description("Filter by workout type (e.g. 'upper', 'hiit', 'yoga')")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Per-session top set, volume, and estimated 1RM for one exercise over a time range."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Barbell Bench Press')")),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List catalog exercises, optionally filtered by muscle group and equipment."),
	mcp.WithString("muscle", mcp.Description("Primary muscle group (e.g. 'chest', 'quads')")),
	mcp.WithString("equipment", mcp.Description("Comma-separated equipment filter")),
)

// --- Tool handlers ---

func (h *handlers) generateWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plan, err := req.RequireString("plan")
	if err != nil {
		return mcp.NewToolResultError("plan parameter is required"), nil
	}

	opts, err := h.buildOptions(ctx, req)
	if err != nil {
		h.log.Error("mcp generate_workout: prefs", "error", err)
		return mcp.NewToolResultError("loading preferences failed: " + err.Error()), nil
	}

	workout, err := h.gen.Generate(models.PlanType(plan), opts)
	if err != nil {
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

func (h *handlers) substituteExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutJSON, err := req.RequireString("workout")
	if err != nil {
		return mcp.NewToolResultError("workout parameter is required"), nil
	}
	idx, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError("index parameter is required"), nil
	}

	var workout models.Workout
	if err := json.Unmarshal([]byte(workoutJSON), &workout); err != nil {
		return mcp.NewToolResultError("invalid workout JSON: " + err.Error()), nil
	}

	opts, err := h.buildOptions(ctx, req)
	if err != nil {
		return mcp.NewToolResultError("loading preferences failed: " + err.Error()), nil
	}

	replacement, err := h.gen.Substitute(&workout, idx, opts)
	if err != nil {
		return mcp.NewToolResultError("substitution failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"workout":     workout,
		"replacement": replacement,
	})
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

// buildOptions assembles generator options from tool arguments plus the
// user's stored weights and favorites.
func (h *handlers) buildOptions(ctx context.Context, req mcp.CallToolRequest) (generator.Options, error) {
	uid := UserIDFromContext(ctx)
	prefs, err := h.ds.GetPrefs(ctx, uid)
	if err != nil {
		return generator.Options{}, err
	}

	weights := make(map[string]float64, len(prefs))
	favorites := make(map[string]bool)
	for _, p := range prefs {
		weights[p.ExerciseName] = p.LastWeightKg
		if p.Favorite {
			favorites[p.ExerciseName] = true
		}
	}

	return generator.Options{
		Equipment:  parseEquipment(req.GetString("equipment", "")),
		Sets:       req.GetInt("sets", 3),
		TargetReps: req.GetInt("target_reps", 10),
		Supersets:  req.GetBool("supersets", false),
		Favorites:  favorites,
		Weights:    weights,
	}, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	sessions, err := h.ds.QuerySessions(ctx, start, end, uid, req.GetString("type", ""))
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	points, err := h.ds.ExerciseHistory(ctx, exercise, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
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

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	muscle := req.GetString("muscle", "")
	equipment := parseEquipment(req.GetString("equipment", ""))

	var exercises []models.Exercise
	if muscle != "" {
		exercises = h.cat.ByMuscle(models.Muscle(muscle))
	} else {
		exercises = h.cat.All()
	}
	exercises = catalog.Filter(exercises, equipment, "", nil)

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("encoding failed: " + err.Error()), nil
	}
	return result, nil
}
