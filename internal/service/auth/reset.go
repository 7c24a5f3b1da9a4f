package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lingora/lingora-backend/internal/domain"
)

// RequestPasswordReset files a reset request for an admin to review.
// Returns ErrNotFound when no account exists for the email. Repeated
// requests while one is still pending return the existing request.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*domain.PasswordResetRequest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.NewValidationError("email", "required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("auth.RequestPasswordReset: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("auth.RequestPasswordReset get user: %w", err)
	}

	if existing, err := s.resets.GetPendingByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.RequestPasswordReset check pending: %w", err)
	}

	req, err := s.resets.Create(ctx, &domain.PasswordResetRequest{Email: email})
	if err != nil {
		return nil, fmt.Errorf("auth.RequestPasswordReset create: %w", err)
	}

	s.log.InfoContext(ctx, "password reset requested",
		slog.String("request_id", req.ID.String()))

	return req, nil
}

// CheckResetApproved reports whether the email has an admin-approved reset
// request waiting to be completed.
func (s *Service) CheckResetApproved(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, domain.NewValidationError("email", "required")
	}

	_, err := s.resets.GetApprovedByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("auth.CheckResetApproved: %w", err)
	}
	return true, nil
}

// CompleteReset sets a new password for a user whose reset request has been
// approved, transitions the request to password_reset_sent, and revokes all
// refresh tokens so stale sessions die. Returns ErrForbidden when no
// approved request exists.
func (s *Service) CompleteReset(ctx context.Context, email, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var errs []domain.FieldError
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if newPassword == "" {
		errs = append(errs, domain.FieldError{Field: "new_password", Message: "required"})
	} else if len(newPassword) < 8 {
		errs = append(errs, domain.FieldError{Field: "new_password", Message: "must be at least 8 characters"})
	} else if len(newPassword) > 72 {
		errs = append(errs, domain.FieldError{Field: "new_password", Message: "too long"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}

	req, err := s.resets.GetApprovedByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("auth.CompleteReset no approved request: %w", domain.ErrForbidden)
		}
		return fmt.Errorf("auth.CompleteReset get request: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("auth.CompleteReset: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("auth.CompleteReset get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("auth.CompleteReset hash password: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		hashStr := string(hash)
		if err := s.authMethods.UpdatePasswordHash(txCtx, user.ID, hashStr); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("update password hash: %w", err)
			}
			// Google-only account gains a password method here.
			am := &domain.AuthMethod{
				UserID:       user.ID,
				Method:       domain.AuthMethodPassword,
				PasswordHash: &hashStr,
			}
			if _, err := s.authMethods.Create(txCtx, am); err != nil {
				return fmt.Errorf("create password method: %w", err)
			}
		}
		if _, err := s.resets.MarkSent(txCtx, req.ID, newPassword); err != nil {
			return fmt.Errorf("mark request sent: %w", err)
		}
		if err := s.tokens.RevokeAllByUser(txCtx, user.ID); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("auth.CompleteReset: %w", err)
	}

	s.log.InfoContext(ctx, "password reset completed",
		slog.String("user_id", user.ID.String()),
		slog.String("request_id", req.ID.String()))

	return nil
}
