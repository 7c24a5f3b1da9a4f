package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole controls access to operator endpoints.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

// IsValid reports whether the role is one of the known values.
func (r UserRole) IsValid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

// User is a learner profile. Stats fields (streak, hours, lessons) are
// owned by the stats service; everything else by the auth/user services.
type User struct {
	ID               uuid.UUID
	Email            string
	DisplayName      string
	Level            string
	Role             UserRole
	Streak           int
	BestStreak       int
	TotalLessons     int
	HoursLearned     float64
	TotalSessions    int
	LastActive       *time.Time
	LastStreakUpdate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser returns a User with profile defaults applied.
func NewUser(email, displayName string) *User {
	now := time.Now()
	return &User{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: displayName,
		Level:       "Beginner",
		Role:        UserRoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AuthMethodType identifies how a user authenticates.
type AuthMethodType string

const (
	AuthMethodPassword AuthMethodType = "password"
	AuthMethodGoogle   AuthMethodType = "google"
)

// AuthMethod links a user to one credential (password hash or a federated
// provider identity). A user may hold several.
type AuthMethod struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Method       AuthMethodType
	PasswordHash *string
	ProviderID   *string
	CreatedAt    time.Time
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// LessonRecord tracks completion of a standalone lesson, one row per
// (user, lesson). Attempts counts how many times the lesson was finished.
type LessonRecord struct {
	UserID      uuid.UUID
	LessonID    string
	Score       int
	Attempts    int
	CompletedAt time.Time
}
