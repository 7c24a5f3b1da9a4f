package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/activity"
	"github.com/lingora/lingora-backend/pkg/ctxutil"
)

// activityService defines the minimal interface needed by ActivitiesHandler.
type activityService interface {
	ListDay(ctx context.Context, userID uuid.UUID) (*activity.DayView, error)
	Enter(ctx context.Context, userID uuid.UUID, activityID string) (*activity.EnterResult, error)
	Finish(ctx context.Context, userID uuid.UUID, activityID string, input activity.FinishInput) (*domain.DailyActivityRecord, error)
	RequestRetest(ctx context.Context, userID uuid.UUID, activityID string) (*domain.DailyActivityRecord, error)
	CompleteTimed(ctx context.Context, userID uuid.UUID, activityID string, timeSpentMs int64) (*domain.DailyActivityRecord, error)
}

// ActivitiesHandler serves the daily activity endpoints.
type ActivitiesHandler struct {
	svc activityService
	log *slog.Logger
}

// NewActivitiesHandler creates an ActivitiesHandler.
func NewActivitiesHandler(svc activityService, logger *slog.Logger) *ActivitiesHandler {
	return &ActivitiesHandler{svc: svc, log: logger.With("handler", "activities")}
}

type finishRequest struct {
	Answers     []int `json:"answers"`
	TimeSpentMs int64 `json:"timeSpentMs"`
}

type timedCompleteRequest struct {
	TimeSpentMs int64 `json:"timeSpentMs"`
}

type questionResponse struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Passage  string   `json:"passage,omitempty"`
	Options  []string `json:"options"`
}

type attemptResponse struct {
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

type recordResponse struct {
	ActivityID       string             `json:"activityId"`
	DateKey          string             `json:"dateKey"`
	Kind             string             `json:"kind"`
	Topic            string             `json:"topic"`
	Questions        []questionResponse `json:"questions,omitempty"`
	AttemptCount     int                `json:"attemptCount"`
	Attempts         []attemptResponse  `json:"attempts,omitempty"`
	Attempt1Score    *int               `json:"attempt1Score,omitempty"`
	Attempt2Score    *int               `json:"attempt2Score,omitempty"`
	Completed        bool               `json:"completed"`
	RetestInProgress bool               `json:"retestInProgress"`
	CompletedAt      *time.Time         `json:"completedAt,omitempty"`
	TimeSpentMs      int64              `json:"timeSpentMs"`
}

type dayItemResponse struct {
	ID     string          `json:"id"`
	Kind   string          `json:"kind"`
	Topic  string          `json:"topic"`
	Title  string          `json:"title"`
	Record *recordResponse `json:"record,omitempty"`
}

type dayViewResponse struct {
	DateKey        string            `json:"dateKey"`
	SecondsToReset int               `json:"secondsToReset"`
	Activities     []dayItemResponse `json:"activities"`
}

type enterResponse struct {
	Record         recordResponse `json:"record"`
	SecondsToReset int            `json:"secondsToReset"`
}

// List handles GET /activities.
func (h *ActivitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.svc.ListDay(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	items := make([]dayItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		resp := dayItemResponse{
			ID:    item.Def.ID,
			Kind:  string(item.Def.Kind),
			Topic: item.Def.Topic,
			Title: item.Def.Title,
		}
		if item.Record != nil {
			rec := toRecordResponse(item.Record)
			resp.Record = &rec
		}
		items = append(items, resp)
	}

	writeJSON(w, http.StatusOK, dayViewResponse{
		DateKey:        view.DateKey,
		SecondsToReset: view.SecondsToReset,
		Activities:     items,
	})
}

// Enter handles POST /activities/{id}/enter.
func (h *ActivitiesHandler) Enter(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.svc.Enter(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, enterResponse{
		Record:         toRecordResponse(result.Record),
		SecondsToReset: result.SecondsToReset,
	})
}

// Finish handles POST /activities/{id}/finish.
func (h *ActivitiesHandler) Finish(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req finishRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.svc.Finish(r.Context(), userID, chi.URLParam(r, "id"), activity.FinishInput{
		Answers:     req.Answers,
		TimeSpentMs: req.TimeSpentMs,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Retest handles POST /activities/{id}/retest.
func (h *ActivitiesHandler) Retest(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.svc.RequestRetest(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// CompleteTimed handles POST /activities/{id}/timed-complete.
func (h *ActivitiesHandler) CompleteTimed(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req timedCompleteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.svc.CompleteTimed(r.Context(), userID, chi.URLParam(r, "id"), req.TimeSpentMs)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// toRecordResponse strips correct answers and explanations: the client
// scores nothing locally, so it never sees the answer key.
func toRecordResponse(rec *domain.DailyActivityRecord) recordResponse {
	questions := make([]questionResponse, 0, len(rec.Questions))
	for _, q := range rec.Questions {
		questions = append(questions, questionResponse{
			ID:       q.ID,
			Question: q.Question,
			Passage:  q.Passage,
			Options:  q.Options,
		})
	}

	attempts := make([]attemptResponse, 0, len(rec.Attempts))
	for _, a := range rec.Attempts {
		attempts = append(attempts, attemptResponse{Score: a.Score, CompletedAt: a.CompletedAt})
	}

	return recordResponse{
		ActivityID:       rec.ActivityID,
		DateKey:          rec.DateKey,
		Kind:             string(rec.Kind),
		Topic:            rec.Topic,
		Questions:        questions,
		AttemptCount:     rec.AttemptCount,
		Attempts:         attempts,
		Attempt1Score:    rec.Attempt1Score,
		Attempt2Score:    rec.Attempt2Score,
		Completed:        rec.Completed,
		RetestInProgress: rec.RetestInProgress,
		CompletedAt:      rec.CompletedAt,
		TimeSpentMs:      rec.TimeSpentMs,
	}
}
