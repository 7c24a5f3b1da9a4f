package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResetStatus is the lifecycle of a password reset request.
type ResetStatus string

const (
	ResetStatusPending  ResetStatus = "pending"
	ResetStatusApproved ResetStatus = "approved"
	ResetStatusSent     ResetStatus = "password_reset_sent"
)

// IsValid reports whether the status is one of the known values.
func (s ResetStatus) IsValid() bool {
	switch s {
	case ResetStatusPending, ResetStatusApproved, ResetStatusSent:
		return true
	}
	return false
}

// PasswordResetRequest is created by a learner and driven through its
// status enum by an admin. Denial and completion delete the record;
// approval keeps it so the learner-side flow can observe it.
type PasswordResetRequest struct {
	ID               uuid.UUID
	Email            string
	Status           ResetStatus
	Approved         bool
	AdminRead        bool
	NewPasswordToSet *string
	RequestedAt      time.Time
	ReadAt           *time.Time
	ApprovedAt       *time.Time
}
