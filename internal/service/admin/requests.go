package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

// ApproveReset transitions a pending password-reset request to approved.
// The learner-side flow polls for this state and then submits the new
// password.
func (s *Service) ApproveReset(ctx context.Context, requestID uuid.UUID) (*domain.PasswordResetRequest, error) {
	req, err := s.resets.Approve(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("admin.ApproveReset: %w", err)
	}

	s.log.InfoContext(ctx, "reset request approved",
		slog.String("request_id", requestID.String()),
		slog.String("email", req.Email))

	return req, nil
}

// DenyReset removes a reset request without acting on it.
func (s *Service) DenyReset(ctx context.Context, requestID uuid.UUID) error {
	req, err := s.resets.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("admin.DenyReset: %w", err)
	}

	if err := s.resets.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("admin.DenyReset delete: %w", err)
	}

	s.log.InfoContext(ctx, "reset request denied",
		slog.String("request_id", requestID.String()),
		slog.String("email", req.Email))

	return nil
}

// CompleteReset removes a request once the password change went through.
// Only requests that left the pending state can be completed.
func (s *Service) CompleteReset(ctx context.Context, requestID uuid.UUID) error {
	req, err := s.resets.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("admin.CompleteReset: %w", err)
	}
	if req.Status == domain.ResetStatusPending {
		return domain.NewValidationError("request_id", "request is still pending")
	}

	if err := s.resets.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("admin.CompleteReset delete: %w", err)
	}

	s.log.InfoContext(ctx, "reset request completed",
		slog.String("request_id", requestID.String()),
		slog.String("email", req.Email))

	return nil
}

// MarkRequestsRead flags every unread reset request as seen, clearing the
// dashboard's notification badge.
func (s *Service) MarkRequestsRead(ctx context.Context) error {
	if err := s.resets.MarkAllRead(ctx); err != nil {
		return fmt.Errorf("admin.MarkRequestsRead: %w", err)
	}
	return nil
}
