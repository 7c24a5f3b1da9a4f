package admin

import (
	"context"

	"github.com/google/uuid"

	activityrepo "github.com/lingora/lingora-backend/internal/adapter/postgres/activity"
	"github.com/lingora/lingora-backend/internal/domain"
)

type userRepoMock struct {
	ListFunc       func(ctx context.Context) ([]domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ResetStatsFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("GetByIDFunc is not set")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) ResetStats(ctx context.Context, id uuid.UUID) error {
	if m.ResetStatsFunc == nil {
		panic("ResetStatsFunc is not set")
	}
	return m.ResetStatsFunc(ctx, id)
}

type activityRepoMock struct {
	ListFunc              func(ctx context.Context, filter activityrepo.ListFilter) ([]domain.DailyActivityRecord, error)
	ListByUserAndDateFunc func(ctx context.Context, userID uuid.UUID, dateKey string) ([]domain.DailyActivityRecord, error)
	SaveFunc              func(ctx context.Context, rec *domain.DailyActivityRecord) error
	DeleteAllByUserFunc   func(ctx context.Context, userID uuid.UUID) (int, error)
}

func (m *activityRepoMock) List(ctx context.Context, filter activityrepo.ListFilter) ([]domain.DailyActivityRecord, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx, filter)
}

func (m *activityRepoMock) ListByUserAndDate(ctx context.Context, userID uuid.UUID, dateKey string) ([]domain.DailyActivityRecord, error) {
	if m.ListByUserAndDateFunc == nil {
		return nil, nil
	}
	return m.ListByUserAndDateFunc(ctx, userID, dateKey)
}

func (m *activityRepoMock) Save(ctx context.Context, rec *domain.DailyActivityRecord) error {
	if m.SaveFunc == nil {
		panic("SaveFunc is not set")
	}
	return m.SaveFunc(ctx, rec)
}

func (m *activityRepoMock) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.DeleteAllByUserFunc == nil {
		panic("DeleteAllByUserFunc is not set")
	}
	return m.DeleteAllByUserFunc(ctx, userID)
}

type lessonRepoMock struct {
	DeleteAllByUserFunc func(ctx context.Context, userID uuid.UUID) (int, error)
}

func (m *lessonRepoMock) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.DeleteAllByUserFunc == nil {
		panic("DeleteAllByUserFunc is not set")
	}
	return m.DeleteAllByUserFunc(ctx, userID)
}

type resetRequestRepoMock struct {
	ListFunc        func(ctx context.Context) ([]domain.PasswordResetRequest, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.PasswordResetRequest, error)
	CountUnreadFunc func(ctx context.Context) (int, error)
	MarkAllReadFunc func(ctx context.Context) error
	ApproveFunc     func(ctx context.Context, id uuid.UUID) (*domain.PasswordResetRequest, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *resetRequestRepoMock) List(ctx context.Context) ([]domain.PasswordResetRequest, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx)
}

func (m *resetRequestRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.PasswordResetRequest, error) {
	if m.GetByIDFunc == nil {
		panic("GetByIDFunc is not set")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *resetRequestRepoMock) CountUnread(ctx context.Context) (int, error) {
	if m.CountUnreadFunc == nil {
		return 0, nil
	}
	return m.CountUnreadFunc(ctx)
}

func (m *resetRequestRepoMock) MarkAllRead(ctx context.Context) error {
	if m.MarkAllReadFunc == nil {
		panic("MarkAllReadFunc is not set")
	}
	return m.MarkAllReadFunc(ctx)
}

func (m *resetRequestRepoMock) Approve(ctx context.Context, id uuid.UUID) (*domain.PasswordResetRequest, error) {
	if m.ApproveFunc == nil {
		panic("ApproveFunc is not set")
	}
	return m.ApproveFunc(ctx, id)
}

func (m *resetRequestRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("DeleteFunc is not set")
	}
	return m.DeleteFunc(ctx, id)
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

var (
	_ userRepo         = (*userRepoMock)(nil)
	_ activityRepo     = (*activityRepoMock)(nil)
	_ lessonRepo       = (*lessonRepoMock)(nil)
	_ resetRequestRepo = (*resetRequestRepoMock)(nil)
	_ txManager        = (*txManagerMock)(nil)
)
