// Package rest wires the HTTP surface: JSON handlers for auth, daily
// activities, chat, learner stats and the admin dashboard, plus health
// probes and the SSE live feed.
package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lingora/lingora-backend/internal/config"
	"github.com/lingora/lingora-backend/internal/transport/middleware"
)

// RouterDeps bundles everything the HTTP router needs.
type RouterDeps struct {
	Auth       *AuthHandler
	Activities *ActivitiesHandler
	Chat       *ChatHandler
	Stats      *StatsHandler
	Admin      *AdminHandler
	Health     *HealthHandler

	TokenValidator interface {
		ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
	}
	RateLimiter *middleware.RateLimiter
	Logger      *slog.Logger
	CORS        config.CORSConfig
}

// NewRouter assembles the full route tree with the middleware stack.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.Auth(deps.TokenValidator))

	r.Get("/health", deps.Health.Health)
	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)

	r.Route("/auth", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Limit(30))
		}
		r.Post("/register", deps.Auth.Register)
		r.Post("/login", deps.Auth.LoginWithGoogle)
		r.Post("/login/password", deps.Auth.LoginWithPassword)
		r.Post("/refresh", deps.Auth.Refresh)
		r.Post("/logout", deps.Auth.Logout)
		r.Post("/password-reset", deps.Auth.RequestReset)
		r.Get("/password-reset/approved", deps.Auth.CheckResetApproved)
		r.Post("/password-reset/complete", deps.Auth.CompleteReset)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/activities", deps.Activities.List)
		r.Post("/activities/{id}/enter", deps.Activities.Enter)
		r.Post("/activities/{id}/finish", deps.Activities.Finish)
		r.Post("/activities/{id}/retest", deps.Activities.Retest)
		r.Post("/activities/{id}/timed-complete", deps.Activities.CompleteTimed)

		// Chat spends provider quota per request, so it gets its own
		// bucket on top of the auth-group one.
		if deps.RateLimiter != nil {
			r.With(deps.RateLimiter.Limit(20)).Post("/chat", deps.Chat.Respond)
		} else {
			r.Post("/chat", deps.Chat.Respond)
		}

		r.Get("/me/stats", deps.Stats.Overview)
		r.Post("/me/streak", deps.Stats.UpdateStreak)
		r.Post("/me/session/end", deps.Stats.EndSession)
		r.Post("/me/lessons/{id}/complete", deps.Stats.CompleteLesson)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Post("/gate", deps.Admin.VerifyGate)
		r.Get("/overview", deps.Admin.Overview)
		r.Get("/users/{id}/live", deps.Admin.LiveUser)
		r.Post("/users/{id}/reset-today", deps.Admin.ResetUserToday)
		r.Delete("/users/{id}/data", deps.Admin.ClearUserData)
		r.Post("/reset-requests/{id}/approve", deps.Admin.ApproveReset)
		r.Post("/reset-requests/{id}/deny", deps.Admin.DenyReset)
		r.Post("/reset-requests/{id}/complete", deps.Admin.CompleteReset)
		r.Post("/reset-requests/read", deps.Admin.MarkRequestsRead)
	})

	return r
}
