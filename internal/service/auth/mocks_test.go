package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/auth"
	"github.com/lingora/lingora-backend/internal/domain"
)

var (
	_ userRepo         = &userRepoMock{}
	_ tokenRepo        = &tokenRepoMock{}
	_ authMethodRepo   = &authMethodRepoMock{}
	_ resetRequestRepo = &resetRequestRepoMock{}
	_ txManager        = &txManagerMock{}
	_ oauthVerifier    = &oauthVerifierMock{}
	_ jwtManager       = &jwtManagerMock{}
)

type userRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc        func(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, id uuid.UUID, displayName, level *string) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc is nil")
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) UpdateProfile(ctx context.Context, id uuid.UUID, displayName, level *string) (*domain.User, error) {
	if m.UpdateProfileFunc == nil {
		panic("userRepoMock.UpdateProfileFunc is nil")
	}
	return m.UpdateProfileFunc(ctx, id, displayName, level)
}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, token *domain.RefreshToken) error
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID) error
	RevokeAllByUserFunc func(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredFunc   func(ctx context.Context) (int, error)
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc == nil {
		panic("tokenRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	if m.GetByHashFunc == nil {
		panic("tokenRepoMock.GetByHashFunc is nil")
	}
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	if m.RevokeByIDFunc == nil {
		panic("tokenRepoMock.RevokeByIDFunc is nil")
	}
	return m.RevokeByIDFunc(ctx, id)
}

func (m *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	if m.RevokeAllByUserFunc == nil {
		panic("tokenRepoMock.RevokeAllByUserFunc is nil")
	}
	return m.RevokeAllByUserFunc(ctx, userID)
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context) (int, error) {
	if m.DeleteExpiredFunc == nil {
		panic("tokenRepoMock.DeleteExpiredFunc is nil")
	}
	return m.DeleteExpiredFunc(ctx)
}

type authMethodRepoMock struct {
	GetByOAuthFunc         func(ctx context.Context, method domain.AuthMethodType, providerID string) (*domain.AuthMethod, error)
	GetByUserAndMethodFunc func(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error)
	CreateFunc             func(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error)
	UpdatePasswordHashFunc func(ctx context.Context, userID uuid.UUID, hash string) error
}

func (m *authMethodRepoMock) GetByOAuth(ctx context.Context, method domain.AuthMethodType, providerID string) (*domain.AuthMethod, error) {
	if m.GetByOAuthFunc == nil {
		panic("authMethodRepoMock.GetByOAuthFunc is nil")
	}
	return m.GetByOAuthFunc(ctx, method, providerID)
}

func (m *authMethodRepoMock) GetByUserAndMethod(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error) {
	if m.GetByUserAndMethodFunc == nil {
		panic("authMethodRepoMock.GetByUserAndMethodFunc is nil")
	}
	return m.GetByUserAndMethodFunc(ctx, userID, method)
}

func (m *authMethodRepoMock) Create(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error) {
	if m.CreateFunc == nil {
		panic("authMethodRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, am)
}

func (m *authMethodRepoMock) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error {
	if m.UpdatePasswordHashFunc == nil {
		panic("authMethodRepoMock.UpdatePasswordHashFunc is nil")
	}
	return m.UpdatePasswordHashFunc(ctx, userID, hash)
}

type resetRequestRepoMock struct {
	CreateFunc             func(ctx context.Context, req *domain.PasswordResetRequest) (*domain.PasswordResetRequest, error)
	GetPendingByEmailFunc  func(ctx context.Context, email string) (*domain.PasswordResetRequest, error)
	GetApprovedByEmailFunc func(ctx context.Context, email string) (*domain.PasswordResetRequest, error)
	MarkSentFunc           func(ctx context.Context, id uuid.UUID, newPassword string) (*domain.PasswordResetRequest, error)
}

func (m *resetRequestRepoMock) Create(ctx context.Context, req *domain.PasswordResetRequest) (*domain.PasswordResetRequest, error) {
	if m.CreateFunc == nil {
		panic("resetRequestRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, req)
}

func (m *resetRequestRepoMock) GetPendingByEmail(ctx context.Context, email string) (*domain.PasswordResetRequest, error) {
	if m.GetPendingByEmailFunc == nil {
		panic("resetRequestRepoMock.GetPendingByEmailFunc is nil")
	}
	return m.GetPendingByEmailFunc(ctx, email)
}

func (m *resetRequestRepoMock) GetApprovedByEmail(ctx context.Context, email string) (*domain.PasswordResetRequest, error) {
	if m.GetApprovedByEmailFunc == nil {
		panic("resetRequestRepoMock.GetApprovedByEmailFunc is nil")
	}
	return m.GetApprovedByEmailFunc(ctx, email)
}

func (m *resetRequestRepoMock) MarkSent(ctx context.Context, id uuid.UUID, newPassword string) (*domain.PasswordResetRequest, error) {
	if m.MarkSentFunc == nil {
		panic("resetRequestRepoMock.MarkSentFunc is nil")
	}
	return m.MarkSentFunc(ctx, id, newPassword)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}

type oauthVerifierMock struct {
	VerifyCodeFunc func(ctx context.Context, provider, code string) (*auth.OAuthIdentity, error)
}

func (m *oauthVerifierMock) VerifyCode(ctx context.Context, provider, code string) (*auth.OAuthIdentity, error) {
	if m.VerifyCodeFunc == nil {
		panic("oauthVerifierMock.VerifyCodeFunc is nil")
	}
	return m.VerifyCodeFunc(ctx, provider, code)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID, role string) (string, error)
	ValidateAccessTokenFunc  func(token string) (uuid.UUID, string, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	if m.GenerateAccessTokenFunc == nil {
		return "access_token", nil
	}
	return m.GenerateAccessTokenFunc(userID, role)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, string, error) {
	if m.ValidateAccessTokenFunc == nil {
		panic("jwtManagerMock.ValidateAccessTokenFunc is nil")
	}
	return m.ValidateAccessTokenFunc(token)
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	if m.GenerateRefreshTokenFunc == nil {
		return "raw_refresh", "hash_refresh", nil
	}
	return m.GenerateRefreshTokenFunc()
}
