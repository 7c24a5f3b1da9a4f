package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/stats"
	"github.com/lingora/lingora-backend/pkg/ctxutil"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	GetOverview(ctx context.Context, userID uuid.UUID) (*stats.Overview, error)
	UpdateStreak(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	EndSession(ctx context.Context, userID uuid.UUID, sessionStart time.Time) (float64, error)
	RecordLessonCompletion(ctx context.Context, userID uuid.UUID, lessonID string, score int) (*domain.LessonRecord, error)
}

// StatsHandler serves the learner progress endpoints.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type endSessionRequest struct {
	SessionStart time.Time `json:"sessionStart"`
}

type lessonCompleteRequest struct {
	Score int `json:"score"`
}

type overviewResponse struct {
	Streak         int        `json:"streak"`
	BestStreak     int        `json:"bestStreak"`
	TotalLessons   int        `json:"totalLessons"`
	HoursLearned   float64    `json:"hoursLearned"`
	TotalSessions  int        `json:"totalSessions"`
	LastActive     *time.Time `json:"lastActive,omitempty"`
	TodayAverage   int        `json:"todayAverage"`
	OverallAverage int        `json:"overallAverage"`
}

type streakResponse struct {
	Streak     int `json:"streak"`
	BestStreak int `json:"bestStreak"`
}

// Overview handles GET /me/stats.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ov, err := h.svc.GetOverview(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, overviewResponse{
		Streak:         ov.User.Streak,
		BestStreak:     ov.User.BestStreak,
		TotalLessons:   ov.User.TotalLessons,
		HoursLearned:   ov.User.HoursLearned,
		TotalSessions:  ov.User.TotalSessions,
		LastActive:     ov.User.LastActive,
		TodayAverage:   ov.TodayAverage,
		OverallAverage: ov.OverallAverage,
	})
}

// UpdateStreak handles POST /me/streak.
func (h *StatsHandler) UpdateStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.svc.UpdateStreak(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, streakResponse{Streak: u.Streak, BestStreak: u.BestStreak})
}

// EndSession handles POST /me/session/end.
func (h *StatsHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req endSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	hours, err := h.svc.EndSession(r.Context(), userID, req.SessionStart)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"hoursAdded": hours})
}

// CompleteLesson handles POST /me/lessons/{id}/complete.
func (h *StatsHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req lessonCompleteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.svc.RecordLessonCompletion(r.Context(), userID, chi.URLParam(r, "id"), req.Score)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"lessonId": rec.LessonID,
		"score":    rec.Score,
		"attempts": rec.Attempts,
	})
}
