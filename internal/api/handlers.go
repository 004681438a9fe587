// Package api exposes HTTP handlers for the fittrack service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/fittrack/internal/auth"
	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/persistence"
)

const dateLayout = "2006-01-02"

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/workouts", h.workouts)
	mux.HandleFunc("/v1/workouts/", h.workoutByID)
	mux.HandleFunc("/v1/workouts/dashboard", h.dashboard)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) workouts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createWorkout(w, r)
	case http.MethodGet:
		h.listWorkouts(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) workoutByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/workouts/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing workout id")
		return
	}

	switch r.Method {
	case http.MethodDelete:
		h.deleteWorkout(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) createWorkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:write required")
		return
	}

	var req CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if !req.Confirmed {
		writeError(w, http.StatusBadRequest, "confirmation_required", "confirmed must be true before a workout is saved")
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "date must be formatted YYYY-MM-DD")
		return
	}

	workout, err := h.service.LogWorkout(r.Context(), domain.WorkoutInput{
		Date:        date,
		Category:    domain.Category(req.Category),
		SubType:     req.SubType,
		DurationMin: req.DurationMin,
		DistanceKM:  req.DistanceKM,
		RPE:         req.RPE,
		Notes:       req.Notes,
		Structure:   req.Structure,
		ManualPace:  req.ManualPace,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toWorkoutView(*workout))
}

func (h *Handler) deleteWorkout(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:write required")
		return
	}

	if err := h.service.DeleteWorkout(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrWorkoutNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsRead) && !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:read required")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	cursor, err := persistence.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	workouts, next, err := h.service.ListWorkouts(r.Context(), cursor, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]WorkoutView, 0, len(workouts))
	for _, workout := range workouts {
		items = append(items, toWorkoutView(workout))
	}

	writeJSON(w, http.StatusOK, ListWorkoutsResponse{
		Items:      items,
		NextCursor: persistence.EncodeCursor(next),
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWorkoutsRead) && !claims.HasScope(auth.ScopeWorkoutsWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope workouts:read required")
		return
	}

	filter := domain.Category(r.URL.Query().Get("category"))

	dashboard, err := h.service.GetDashboard(r.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toDashboardResponse(*dashboard))
}

// CreateWorkoutRequest is the payload for POST /v1/workouts.
type CreateWorkoutRequest struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	SubType     string  `json:"sub_type"`
	DurationMin int     `json:"duration_min"`
	DistanceKM  float64 `json:"distance_km"`
	RPE         int     `json:"rpe"`
	Notes       string  `json:"notes"`
	Structure   string  `json:"structure"`
	ManualPace  string  `json:"manual_pace"`
	Confirmed   bool    `json:"confirmed"`
}

// Validate ensures request correctness before the record is built.
func (r CreateWorkoutRequest) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if r.DurationMin <= 0 {
		return errors.New("duration_min must be > 0")
	}
	if r.DistanceKM < 0 {
		return errors.New("distance_km must be >= 0")
	}
	if r.RPE < 1 || r.RPE > 10 {
		return errors.New("rpe must be between 1 and 10")
	}
	return nil
}

// WorkoutView exposes full details about a stored workout.
type WorkoutView struct {
	WorkoutID   string    `json:"workout_id"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	SubType     string    `json:"sub_type"`
	DurationMin int       `json:"duration_min"`
	DistanceKM  float64   `json:"distance_km"`
	Pace        string    `json:"pace"`
	Structure   string    `json:"structure,omitempty"`
	RPE         int       `json:"rpe"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListWorkoutsResponse packages history results.
type ListWorkoutsResponse struct {
	Items      []WorkoutView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// WeekBucketView is one point of the weekly volume series.
type WeekBucketView struct {
	WeekStart   string `json:"week_start"`
	DurationMin int    `json:"duration_min"`
}

// DashboardResponse merges lifetime totals with the trailing weekly series.
type DashboardResponse struct {
	TotalWorkouts       int              `json:"total_workouts"`
	ThisWeekDurationMin int              `json:"this_week_duration_min"`
	ThisWeekDistanceKM  float64          `json:"this_week_distance_km"`
	ThisWeekDistance    string           `json:"this_week_distance"`
	WeeklySeries        []WeekBucketView `json:"weekly_series"`
	CategoryBreakdown   map[string]int   `json:"category_breakdown"`
	Category            string           `json:"category,omitempty"`
}

func toDashboardResponse(d domain.Dashboard) DashboardResponse {
	series := make([]WeekBucketView, 0, len(d.WeeklySeries))
	for _, bucket := range d.WeeklySeries {
		series = append(series, WeekBucketView{
			WeekStart:   bucket.WeekStart.Format(dateLayout),
			DurationMin: bucket.DurationMin,
		})
	}

	breakdown := make(map[string]int, len(d.Summary.CategoryBreakdown))
	for category, duration := range d.Summary.CategoryBreakdown {
		breakdown[string(category)] = duration
	}

	return DashboardResponse{
		TotalWorkouts:       d.Summary.TotalCount,
		ThisWeekDurationMin: d.Summary.ThisWeekDurationMin,
		ThisWeekDistanceKM:  d.Summary.ThisWeekDistanceKM,
		ThisWeekDistance:    fmt.Sprintf("%.2f km", d.Summary.ThisWeekDistanceKM),
		WeeklySeries:        series,
		CategoryBreakdown:   breakdown,
		Category:            string(d.Filter),
	}
}

func toWorkoutView(workout domain.Workout) WorkoutView {
	return WorkoutView{
		WorkoutID:   workout.ID,
		Date:        workout.Date.Format(dateLayout),
		Category:    string(workout.Category),
		SubType:     workout.SubType,
		DurationMin: workout.DurationMin,
		DistanceKM:  workout.DistanceKM,
		Pace:        workout.Pace,
		Structure:   workout.Structure,
		RPE:         workout.RPE,
		Notes:       workout.Notes,
		CreatedAt:   workout.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{
		"type":   code,
		"detail": detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
