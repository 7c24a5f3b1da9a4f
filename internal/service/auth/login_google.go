package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lingora/lingora-backend/internal/auth"
	"github.com/lingora/lingora-backend/internal/domain"
)

const providerGoogle = "google"

// LoginWithGoogle performs Google OAuth authentication and returns
// access/refresh tokens. A first-time identity creates a new user; an
// identity whose email matches an existing password account links the
// Google method to that account.
func (s *Service) LoginWithGoogle(ctx context.Context, input LoginGoogleInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.oauth.VerifyCode(ctx, providerGoogle, input.Code)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithGoogle oauth verification: %w", err)
	}
	identity.Email = strings.ToLower(strings.TrimSpace(identity.Email))

	// Known Google identity, straight login.
	am, err := s.authMethods.GetByOAuth(ctx, domain.AuthMethodGoogle, identity.ProviderID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.LoginWithGoogle get auth method: %w", err)
	}

	if am != nil {
		user, err := s.users.GetByID(ctx, am.UserID)
		if err != nil {
			return nil, fmt.Errorf("auth.LoginWithGoogle get user: %w", err)
		}

		if identity.Name != nil && *identity.Name != user.DisplayName {
			user, err = s.users.UpdateProfile(ctx, user.ID, identity.Name, nil)
			if err != nil {
				return nil, fmt.Errorf("auth.LoginWithGoogle update profile: %w", err)
			}
		}

		result, err := s.issueTokens(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("auth.LoginWithGoogle issue tokens: %w", err)
		}

		s.log.InfoContext(ctx, "user logged in via google",
			slog.String("user_id", user.ID.String()))

		return result, nil
	}

	// No Google method yet. Check if a user with the same email exists
	// (account linking).
	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.LoginWithGoogle get user by email: %w", err)
	}

	if user != nil {
		newAM := &domain.AuthMethod{
			UserID:     user.ID,
			Method:     domain.AuthMethodGoogle,
			ProviderID: &identity.ProviderID,
		}
		if _, err := s.authMethods.Create(ctx, newAM); err != nil {
			// Concurrent link: the method already exists, proceed.
			if !errors.Is(err, domain.ErrAlreadyExists) {
				return nil, fmt.Errorf("auth.LoginWithGoogle link google: %w", err)
			}
		}

		result, err := s.issueTokens(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("auth.LoginWithGoogle issue tokens: %w", err)
		}

		s.log.InfoContext(ctx, "google linked to existing account",
			slog.String("user_id", user.ID.String()))

		return result, nil
	}

	// Completely new user.
	user, err = s.registerGoogleUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.LoginWithGoogle issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user registered via google",
		slog.String("user_id", user.ID.String()))

	return result, nil
}

// emailPrefix extracts the part before @ from an email address.
func emailPrefix(email string) string {
	if idx := strings.IndexByte(email, '@'); idx > 0 {
		return email[:idx]
	}
	return email
}

// registerGoogleUser creates a new user + google auth method in a transaction.
func (s *Service) registerGoogleUser(ctx context.Context, identity *auth.OAuthIdentity) (*domain.User, error) {
	var createdUser *domain.User

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		displayName := derefOrEmpty(identity.Name)
		if displayName == "" {
			displayName = emailPrefix(identity.Email)
		}

		newUser := domain.NewUser(identity.Email, displayName)
		newUser.Role = s.roleFor(identity.Email)

		user, err := s.users.Create(txCtx, newUser)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		am := &domain.AuthMethod{
			UserID:     user.ID,
			Method:     domain.AuthMethodGoogle,
			ProviderID: &identity.ProviderID,
		}
		if _, err := s.authMethods.Create(txCtx, am); err != nil {
			return fmt.Errorf("create auth method: %w", err)
		}

		createdUser = user
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Race with a concurrent first login: retry lookup.
			am, retryErr := s.authMethods.GetByOAuth(ctx, domain.AuthMethodGoogle, identity.ProviderID)
			if retryErr == nil {
				user, retryErr := s.users.GetByID(ctx, am.UserID)
				if retryErr == nil {
					return user, nil
				}
			}
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("auth.LoginWithGoogle register user: %w", err)
	}

	return createdUser, nil
}
