// Package app assembles the application: configuration, logging,
// database, services, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lingora/lingora-backend/internal/adapter/postgres"
	activityrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/activity"
	authmethodrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/authmethod"
	lessonrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/lesson"
	resetrequestrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/resetrequest"
	tokenrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/token"
	userrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/user"
	"github.com/lingora/lingora-backend/internal/adapter/provider/google"
	"github.com/lingora/lingora-backend/internal/auth"
	"github.com/lingora/lingora-backend/internal/config"
	"github.com/lingora/lingora-backend/internal/domain"
	"github.com/lingora/lingora-backend/internal/llm"
	"github.com/lingora/lingora-backend/internal/service/activity"
	"github.com/lingora/lingora-backend/internal/service/admin"
	authsvc "github.com/lingora/lingora-backend/internal/service/auth"
	"github.com/lingora/lingora-backend/internal/service/chat"
	"github.com/lingora/lingora-backend/internal/service/quizgen"
	"github.com/lingora/lingora-backend/internal/service/stats"
	"github.com/lingora/lingora-backend/internal/transport/middleware"
	"github.com/lingora/lingora-backend/internal/transport/rest"
	"github.com/lingora/lingora-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations, wires the services, and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	users := userrepo.New(pool)
	authMethods := authmethodrepo.New(pool)
	tokens := tokenrepo.New(pool)
	activities := activityrepo.New(pool)
	lessons := lessonrepo.New(pool)
	resets := resetrequestrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	var oauth interface {
		VerifyCode(ctx context.Context, provider, code string) (*auth.OAuthIdentity, error)
	} = oauthDisabled{}
	if cfg.Auth.HasGoogleOAuth() {
		oauth = google.NewVerifier(
			cfg.Auth.GoogleClientID,
			cfg.Auth.GoogleClientSecret,
			cfg.Auth.GoogleRedirectURI,
			logger,
		)
	} else {
		logger.Info("google oauth not configured, federated login disabled")
	}

	completer, err := buildCompleter(ctx, logger, cfg.AI)
	if err != nil {
		return fmt.Errorf("build AI providers: %w", err)
	}

	loc := domain.ParseLocation(cfg.Activities.Timezone)
	feed := admin.NewFeed()

	quizGen := quizgen.NewService(logger, completer, cfg.Activities.QuestionsPerQuiz, cfg.AI.MaxTokens)
	activitySvc := activity.NewService(logger, activities, quizGen, feed, loc)
	chatSvc := chat.NewService(logger, completer, cfg.AI.MaxTokens)
	statsSvc := stats.NewService(logger, users, lessons, activities, loc)
	adminSvc := admin.NewService(logger, users, activities, lessons, resets, tx, feed, cfg.Admin, loc)
	authSvc := authsvc.NewService(logger, users, tokens, authMethods, resets, tx, oauth, jwtMgr, cfg.Auth, cfg.Admin)

	rateLimiter := middleware.NewRateLimiter(5 * time.Minute)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Auth:       rest.NewAuthHandler(authSvc, logger),
		Activities: rest.NewActivitiesHandler(activitySvc, logger),
		Chat:       rest.NewChatHandler(chatSvc, logger),
		Stats:      rest.NewStatsHandler(statsSvc, logger),
		Admin:      rest.NewAdminHandler(adminSvc, logger),
		Health:     rest.NewHealthHandler(pool, BuildVersion()),

		TokenValidator: authSvc,
		RateLimiter:    rateLimiter,
		Logger:         logger,
		CORS:           cfg.CORS,
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     router,
		ReadTimeout: cfg.Server.ReadTimeout,
		// WriteTimeout is left unset: the admin live feed holds SSE
		// connections open indefinitely.
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// buildCompleter assembles the AI provider fallback chain from configured
// keys. With no keys at all the mock provider serves everything, which keeps
// local development working without credentials.
func buildCompleter(ctx context.Context, logger *slog.Logger, cfg config.AIConfig) (*llm.Chain, error) {
	var providers []llm.Provider

	if cfg.OpenAIAPIKey != "" {
		p, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	if cfg.GeminiAPIKey != "" {
		p, err := llm.NewGeminiProvider(ctx, llm.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	if len(providers) == 0 {
		logger.Warn("no AI provider configured, using mock provider")
		providers = append(providers, llm.NewMockProvider())
	}

	return llm.NewChain(logger, providers...), nil
}

// oauthDisabled rejects federated logins when no OAuth provider is
// configured.
type oauthDisabled struct{}

func (oauthDisabled) VerifyCode(context.Context, string, string) (*auth.OAuthIdentity, error) {
	return nil, fmt.Errorf("google login: %w", domain.ErrUnauthorized)
}
