package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/admin"
)

// adminService defines the minimal interface needed by AdminHandler.
type adminService interface {
	VerifyGate(password string) error
	LoadAll(ctx context.Context) (*admin.Dashboard, error)
	LoadUser(ctx context.Context, userID uuid.UUID) (*admin.UserView, error)
	ChangeFeed() *admin.Feed
	ResetUserToday(ctx context.Context, userID uuid.UUID) (int, error)
	ClearUserData(ctx context.Context, userID uuid.UUID) error
	ApproveReset(ctx context.Context, requestID uuid.UUID) (*domain.PasswordResetRequest, error)
	DenyReset(ctx context.Context, requestID uuid.UUID) error
	CompleteReset(ctx context.Context, requestID uuid.UUID) error
	MarkRequestsRead(ctx context.Context) error
}

// AdminHandler serves the operator dashboard endpoints. Routes are mounted
// behind the admin-role middleware; the gate check is an extra prompt on
// top, mirroring the dashboard's second password.
type AdminHandler struct {
	svc adminService
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: logger.With("handler", "admin")}
}

type gateRequest struct {
	Password string `json:"password"`
}

type dayGroupResponse struct {
	DateKey    string           `json:"dateKey"`
	Activities []recordResponse `json:"activities"`
}

type userViewResponse struct {
	User userResponse       `json:"user"`
	Days []dayGroupResponse `json:"days"`
}

type resetRequestResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	Approved    bool       `json:"approved"`
	AdminRead   bool       `json:"adminRead"`
	RequestedAt time.Time  `json:"requestedAt"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
}

type dashboardResponse struct {
	Users          []userViewResponse     `json:"users"`
	ResetRequests  []resetRequestResponse `json:"resetRequests"`
	UnreadRequests int                    `json:"unreadRequests"`
}

// VerifyGate handles POST /admin/gate.
func (h *AdminHandler) VerifyGate(w http.ResponseWriter, r *http.Request) {
	var req gateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.VerifyGate(req.Password); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Overview handles GET /admin/overview.
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.LoadAll(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	users := make([]userViewResponse, 0, len(dash.Users))
	for i := range dash.Users {
		users = append(users, toUserViewResponse(&dash.Users[i]))
	}

	requests := make([]resetRequestResponse, 0, len(dash.ResetRequests))
	for _, req := range dash.ResetRequests {
		requests = append(requests, toResetRequestResponse(req))
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Users:          users,
		ResetRequests:  requests,
		UnreadRequests: dash.UnreadRequests,
	})
}

// LiveUser handles GET /admin/users/{id}/live as a server-sent event
// stream. The current view is sent immediately, then again on every
// published change, until the client disconnects.
func (h *AdminHandler) LiveUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	changes, detach := h.svc.ChangeFeed().Subscribe(userID)
	defer detach()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	if !h.sendUserView(w, r, flusher, userID) {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case _, open := <-changes:
			if !open {
				return
			}
			if !h.sendUserView(w, r, flusher, userID) {
				return
			}
		}
	}
}

func (h *AdminHandler) sendUserView(w http.ResponseWriter, r *http.Request, flusher http.Flusher, userID uuid.UUID) bool {
	view, err := h.svc.LoadUser(r.Context(), userID)
	if err != nil {
		h.log.WarnContext(r.Context(), "live view derivation failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return false
	}

	payload, err := json.Marshal(toUserViewResponse(view))
	if err != nil {
		return false
	}

	if _, err := w.Write([]byte("data: ")); err != nil {
		return false
	}
	if _, err := w.Write(payload); err != nil {
		return false
	}
	if _, err := w.Write([]byte("\n\n")); err != nil {
		return false
	}
	flusher.Flush()
	return true
}

// ResetUserToday handles POST /admin/users/{id}/reset-today.
func (h *AdminHandler) ResetUserToday(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	n, err := h.svc.ResetUserToday(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"recordsReset": n})
}

// ClearUserData handles DELETE /admin/users/{id}/data?confirm=true.
func (h *AdminHandler) ClearUserData(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "confirm=true is required")
		return
	}

	if err := h.svc.ClearUserData(r.Context(), userID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// ApproveReset handles POST /admin/reset-requests/{id}/approve.
func (h *AdminHandler) ApproveReset(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	req, err := h.svc.ApproveReset(r.Context(), requestID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toResetRequestResponse(*req))
}

// DenyReset handles POST /admin/reset-requests/{id}/deny.
func (h *AdminHandler) DenyReset(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := h.svc.DenyReset(r.Context(), requestID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "denied"})
}

// CompleteReset handles POST /admin/reset-requests/{id}/complete.
func (h *AdminHandler) CompleteReset(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := h.svc.CompleteReset(r.Context(), requestID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// MarkRequestsRead handles POST /admin/reset-requests/read.
func (h *AdminHandler) MarkRequestsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkRequestsRead(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toUserViewResponse(view *admin.UserView) userViewResponse {
	days := make([]dayGroupResponse, 0, len(view.Days))
	for _, day := range view.Days {
		activities := make([]recordResponse, 0, len(day.Activities))
		for i := range day.Activities {
			activities = append(activities, toRecordResponse(&day.Activities[i]))
		}
		days = append(days, dayGroupResponse{DateKey: day.DateKey, Activities: activities})
	}
	return userViewResponse{User: toUserResponse(&view.User), Days: days}
}

func toResetRequestResponse(req domain.PasswordResetRequest) resetRequestResponse {
	return resetRequestResponse{
		ID:          req.ID.String(),
		Email:       req.Email,
		Status:      string(req.Status),
		Approved:    req.Approved,
		AdminRead:   req.AdminRead,
		RequestedAt: req.RequestedAt,
		ApprovedAt:  req.ApprovedAt,
	}
}
