package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/service/admin"
)

type adminServiceMock struct {
	VerifyGateFunc       func(password string) error
	LoadAllFunc          func(ctx context.Context) (*admin.Dashboard, error)
	LoadUserFunc         func(ctx context.Context, userID uuid.UUID) (*admin.UserView, error)
	feed                 *admin.Feed
	ResetUserTodayFunc   func(ctx context.Context, userID uuid.UUID) (int, error)
	ClearUserDataFunc    func(ctx context.Context, userID uuid.UUID) error
	ApproveResetFunc     func(ctx context.Context, requestID uuid.UUID) (*domain.PasswordResetRequest, error)
	DenyResetFunc        func(ctx context.Context, requestID uuid.UUID) error
	CompleteResetFunc    func(ctx context.Context, requestID uuid.UUID) error
	MarkRequestsReadFunc func(ctx context.Context) error
}

func (m *adminServiceMock) VerifyGate(password string) error { return m.VerifyGateFunc(password) }

func (m *adminServiceMock) LoadAll(ctx context.Context) (*admin.Dashboard, error) {
	return m.LoadAllFunc(ctx)
}

func (m *adminServiceMock) LoadUser(ctx context.Context, userID uuid.UUID) (*admin.UserView, error) {
	return m.LoadUserFunc(ctx, userID)
}

func (m *adminServiceMock) ChangeFeed() *admin.Feed {
	if m.feed == nil {
		m.feed = admin.NewFeed()
	}
	return m.feed
}

func (m *adminServiceMock) ResetUserToday(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.ResetUserTodayFunc(ctx, userID)
}

func (m *adminServiceMock) ClearUserData(ctx context.Context, userID uuid.UUID) error {
	return m.ClearUserDataFunc(ctx, userID)
}

func (m *adminServiceMock) ApproveReset(ctx context.Context, requestID uuid.UUID) (*domain.PasswordResetRequest, error) {
	return m.ApproveResetFunc(ctx, requestID)
}

func (m *adminServiceMock) DenyReset(ctx context.Context, requestID uuid.UUID) error {
	return m.DenyResetFunc(ctx, requestID)
}

func (m *adminServiceMock) CompleteReset(ctx context.Context, requestID uuid.UUID) error {
	return m.CompleteResetFunc(ctx, requestID)
}

func (m *adminServiceMock) MarkRequestsRead(ctx context.Context) error {
	return m.MarkRequestsReadFunc(ctx)
}

var _ adminService = (*adminServiceMock)(nil)

func adminRequest(method, target string, body *strings.Reader, id string) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
	}
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

// ─── Gate ───

func TestAdminHandler_VerifyGate(t *testing.T) {
	t.Parallel()

	svc := &adminServiceMock{
		VerifyGateFunc: func(password string) error {
			if password != "sesame" {
				return domain.ErrForbidden
			}
			return nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.VerifyGate(rec, adminRequest(http.MethodPost, "/admin/gate", strings.NewReader(`{"password":"sesame"}`), ""))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.VerifyGate(rec, adminRequest(http.MethodPost, "/admin/gate", strings.NewReader(`{"password":"wrong"}`), ""))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ─── Overview ───

func TestAdminHandler_Overview(t *testing.T) {
	t.Parallel()

	u := domain.NewUser("nina@example.com", "Nina")
	svc := &adminServiceMock{
		LoadAllFunc: func(_ context.Context) (*admin.Dashboard, error) {
			return &admin.Dashboard{
				Users: []admin.UserView{
					{User: *u, Days: []domain.DayGroup{{DateKey: "2026-08-29"}}},
				},
				ResetRequests: []domain.PasswordResetRequest{
					{ID: uuid.New(), Email: "nina@example.com", Status: domain.ResetStatusPending},
				},
				UnreadRequests: 1,
			}, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.Overview(rec, adminRequest(http.MethodGet, "/admin/overview", nil, ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dashboardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "nina@example.com", resp.Users[0].User.Email)
	require.Len(t, resp.ResetRequests, 1)
	assert.Equal(t, 1, resp.UnreadRequests)
}

// ─── Live feed ───

func TestAdminHandler_LiveUser_SendsInitialView(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	u := domain.NewUser("nina@example.com", "Nina")
	u.ID = userID

	svc := &adminServiceMock{
		LoadUserFunc: func(_ context.Context, id uuid.UUID) (*admin.UserView, error) {
			assert.Equal(t, userID, id)
			return &admin.UserView{User: *u}, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	// A cancelled context lets the handler return right after the
	// initial snapshot.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := adminRequest(http.MethodGet, "/admin/users/"+userID.String()+"/live", nil, userID.String())
	req = req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, chi.RouteContext(req.Context())))
	rec := httptest.NewRecorder()

	h.LiveUser(rec, req)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "data: "), "expected SSE data frame, got %q", body)
	assert.Contains(t, body, "nina@example.com")
}

func TestAdminHandler_LiveUser_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewAdminHandler(&adminServiceMock{}, testLogger())

	rec := httptest.NewRecorder()
	h.LiveUser(rec, adminRequest(http.MethodGet, "/admin/users/nope/live", nil, "nope"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─── Moderation ───

func TestAdminHandler_ResetUserToday(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &adminServiceMock{
		ResetUserTodayFunc: func(_ context.Context, id uuid.UUID) (int, error) {
			assert.Equal(t, userID, id)
			return 3, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.ResetUserToday(rec, adminRequest(http.MethodPost, "/admin/users/x/reset-today", nil, userID.String()))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp["recordsReset"])
}

func TestAdminHandler_ClearUserData_RequiresConfirm(t *testing.T) {
	t.Parallel()

	called := false
	svc := &adminServiceMock{
		ClearUserDataFunc: func(_ context.Context, _ uuid.UUID) error {
			called = true
			return nil
		},
	}
	h := NewAdminHandler(svc, testLogger())
	userID := uuid.New()

	rec := httptest.NewRecorder()
	h.ClearUserData(rec, adminRequest(http.MethodDelete, "/admin/users/x/data", nil, userID.String()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	rec = httptest.NewRecorder()
	h.ClearUserData(rec, adminRequest(http.MethodDelete, "/admin/users/x/data?confirm=true", nil, userID.String()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

// ─── Reset requests ───

func TestAdminHandler_ApproveReset(t *testing.T) {
	t.Parallel()

	requestID := uuid.New()
	svc := &adminServiceMock{
		ApproveResetFunc: func(_ context.Context, id uuid.UUID) (*domain.PasswordResetRequest, error) {
			assert.Equal(t, requestID, id)
			return &domain.PasswordResetRequest{
				ID:       id,
				Email:    "nina@example.com",
				Status:   domain.ResetStatusApproved,
				Approved: true,
			}, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.ApproveReset(rec, adminRequest(http.MethodPost, "/admin/reset-requests/x/approve", nil, requestID.String()))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp resetRequestResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Approved)
	assert.Equal(t, string(domain.ResetStatusApproved), resp.Status)
}

func TestAdminHandler_CompleteReset_StillPending(t *testing.T) {
	t.Parallel()

	svc := &adminServiceMock{
		CompleteResetFunc: func(_ context.Context, _ uuid.UUID) error {
			return domain.NewValidationError("status", "request is still pending")
		},
	}
	h := NewAdminHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.CompleteReset(rec, adminRequest(http.MethodPost, "/admin/reset-requests/x/complete", nil, uuid.NewString()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
