package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSession(ctx context.Context, accountID string, in models.DummySession) (*models.TimerSession, error) {
	args := m.Called(ctx, accountID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimerSession), args.Error(1)
}

func (m *RepoMock) GetSession(ctx context.Context, accountID, id string) (*models.TimerSession, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimerSession), args.Error(1)
}

func (m *RepoMock) UpdateSession(ctx context.Context, accountID, id string, upd models.SessionUpdate) (*models.TimerSession, error) {
	args := m.Called(ctx, accountID, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimerSession), args.Error(1)
}

func (m *RepoMock) CompleteSession(ctx context.Context, accountID, id string, upd models.SessionUpdate) (*models.TimerSession, error) {
	args := m.Called(ctx, accountID, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimerSession), args.Error(1)
}

func (m *RepoMock) ListSessions(ctx context.Context, accountID string, limit int) ([]*models.TimerSession, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TimerSession), args.Error(1)
}

func (m *RepoMock) ListSessionsInRange(ctx context.Context, accountID string, start, end time.Time) ([]*models.TimerSession, error) {
	args := m.Called(ctx, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TimerSession), args.Error(1)
}

func (m *RepoMock) AnalyticsSummary(ctx context.Context, accountID string, since time.Time) (*models.AnalyticsSummary, error) {
	args := m.Called(ctx, accountID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsSummary), args.Error(1)
}

func (m *RepoMock) GetTask(ctx context.Context, accountID, id string) (*models.Task, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *RepoMock) AddTaskFocus(ctx context.Context, accountID, id string, seconds int) error {
	return m.Called(ctx, accountID, id, seconds).Error(0)
}

type ProgressMock struct{ mock.Mock }

func (m *ProgressMock) IncrementStreak(ctx context.Context, accountID, date string, focusMinutes, dailyGoal int) (*models.DailyStreak, error) {
	args := m.Called(ctx, accountID, date, focusMinutes, dailyGoal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyStreak), args.Error(1)
}

func (m *ProgressMock) AddXP(ctx context.Context, accountID string, xp int) (*models.GameData, error) {
	args := m.Called(ctx, accountID, xp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameData), args.Error(1)
}

func (m *ProgressMock) BumpChallenges(ctx context.Context, accountID string, now time.Time) (int, error) {
	args := m.Called(ctx, accountID, now)
	return args.Int(0), args.Error(1)
}

type GoalsMock struct{ mock.Mock }

func (m *GoalsMock) DailyGoal(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

type AccountsMock struct{ mock.Mock }

func (m *AccountsMock) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var fixedNow = time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

// premiumAccounts отдает аккаунт с оплаченной подпиской на любой ID.
func premiumAccounts() *AccountsMock {
	a := new(AccountsMock)
	a.On("GetAccount", mock.Anything, mock.Anything).
		Return(&models.Account{ID: "acc", IsPremium: true, CreatedAt: fixedNow.AddDate(0, -2, 0)}, nil)
	return a
}

func newService(r Repository, p *ProgressMock, g *GoalsMock, loc *time.Location) *Service {
	return newServiceWithAccounts(r, p, g, premiumAccounts(), loc)
}

func newServiceWithAccounts(r Repository, p *ProgressMock, g *GoalsMock, a AccountProvider, loc *time.Location) *Service {
	svc := New(r, p, g, a, loc, newNoopLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestService_CreateChecksTask(t *testing.T) {
	taskID := "8a1c0f5e-7a55-4b0b-9d5b-3c1f0f3f9a10"
	in := models.DummySession{Type: models.SessionFocus, Duration: 1500, TaskID: &taskID}

	t.Run("foreign task", func(t *testing.T) {
		r := new(RepoMock)
		r.On("GetTask", mock.Anything, "acc", taskID).Return(nil, storage.ErrNotFound).Once()

		_, err := newService(r, new(ProgressMock), new(GoalsMock), time.UTC).Create(context.Background(), "acc", in)
		require.ErrorIs(t, err, storage.ErrNotFound)
		r.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("own task", func(t *testing.T) {
		r := new(RepoMock)
		r.On("GetTask", mock.Anything, "acc", taskID).Return(&models.Task{ID: taskID}, nil).Once()
		r.On("CreateSession", mock.Anything, "acc", in).Return(&models.TimerSession{ID: "s1", Type: in.Type}, nil).Once()

		got, err := newService(r, new(ProgressMock), new(GoalsMock), time.UTC).Create(context.Background(), "acc", in)
		require.NoError(t, err)
		assert.Equal(t, "s1", got.ID)
		r.AssertExpectations(t)
	})
}

func TestService_UpdateCompletesFocus(t *testing.T) {
	taskID := "task-1"
	r, p, g := new(RepoMock), new(ProgressMock), new(GoalsMock)
	r.On("GetSession", mock.Anything, "acc", "s1").
		Return(&models.TimerSession{ID: "s1", Type: models.SessionFocus, Duration: 1500, TaskID: &taskID}, nil).Once()
	r.On("CompleteSession", mock.Anything, "acc", "s1", mock.MatchedBy(func(u models.SessionUpdate) bool {
		return u.XPEarned != nil && *u.XPEarned == 25 &&
			u.CompletedDuration != nil && *u.CompletedDuration == 1500 &&
			u.CompletedAt != nil && u.CompletedAt.Equal(fixedNow)
	})).Return(&models.TimerSession{
		ID: "s1", AccountID: "acc", Type: models.SessionFocus, TaskID: &taskID,
		IsCompleted: true, CompletedDuration: 1500,
	}, nil).Once()
	g.On("DailyGoal", mock.Anything, "acc").Return(4, nil).Once()
	p.On("IncrementStreak", mock.Anything, "acc", "2025-03-10", 25, 4).
		Return(&models.DailyStreak{Date: "2025-03-10", GoalMet: false}, nil).Once()
	p.On("BumpChallenges", mock.Anything, "acc", fixedNow).Return(200, nil).Once()
	p.On("AddXP", mock.Anything, "acc", 225).Return(&models.GameData{TotalXP: 225}, nil).Once()
	r.On("AddTaskFocus", mock.Anything, "acc", taskID, 1500).Return(nil).Once()

	completed := true
	got, err := newService(r, p, g, time.UTC).Update(context.Background(), "acc", "s1", models.SessionUpdate{IsCompleted: &completed})
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	r.AssertExpectations(t)
	p.AssertExpectations(t)
	g.AssertExpectations(t)
}

func TestService_UpdateUsesLocalDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata not available")
	}
	r, p, g := new(RepoMock), new(ProgressMock), new(GoalsMock)
	r.On("GetSession", mock.Anything, "acc", "s1").
		Return(&models.TimerSession{ID: "s1", Type: models.SessionFocus, Duration: 600}, nil).Once()
	r.On("CompleteSession", mock.Anything, "acc", "s1", mock.Anything).
		Return(&models.TimerSession{ID: "s1", AccountID: "acc", Type: models.SessionFocus, IsCompleted: true, CompletedDuration: 600}, nil).Once()
	g.On("DailyGoal", mock.Anything, "acc").Return(1, nil).Once()
	p.On("IncrementStreak", mock.Anything, "acc", "2025-03-11", 10, 1).
		Return(&models.DailyStreak{Date: "2025-03-11", GoalMet: true}, nil).Once()
	p.On("BumpChallenges", mock.Anything, "acc", fixedNow).Return(0, nil).Once()
	p.On("AddXP", mock.Anything, "acc", 10).Return(&models.GameData{}, nil).Once()

	completed := true
	_, err = newService(r, p, g, tokyo).Update(context.Background(), "acc", "s1", models.SessionUpdate{IsCompleted: &completed})
	require.NoError(t, err)
	p.AssertExpectations(t)
}

func TestService_UpdateSideEffectFailuresAreNotFatal(t *testing.T) {
	r, p, g := new(RepoMock), new(ProgressMock), new(GoalsMock)
	r.On("GetSession", mock.Anything, "acc", "s1").
		Return(&models.TimerSession{ID: "s1", Type: models.SessionFocus, Duration: 1500}, nil).Once()
	r.On("CompleteSession", mock.Anything, "acc", "s1", mock.Anything).
		Return(&models.TimerSession{ID: "s1", AccountID: "acc", Type: models.SessionFocus, IsCompleted: true}, nil).Once()
	g.On("DailyGoal", mock.Anything, "acc").Return(0, errors.New("db down")).Once()
	p.On("BumpChallenges", mock.Anything, "acc", fixedNow).Return(0, errors.New("db down")).Once()
	p.On("AddXP", mock.Anything, "acc", 25).Return(nil, errors.New("db down")).Once()

	completed := true
	got, err := newService(r, p, g, time.UTC).Update(context.Background(), "acc", "s1", models.SessionUpdate{IsCompleted: &completed})
	require.NoError(t, err)
	assert.NotNil(t, got)
	p.AssertNotCalled(t, "IncrementStreak", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateWithoutTransition(t *testing.T) {
	tests := []struct {
		name    string
		prev    models.TimerSession
		upd     models.SessionUpdate
		wantUpd models.SessionUpdate
	}{
		{
			name:    "already completed",
			prev:    models.TimerSession{ID: "s1", Type: models.SessionFocus, IsCompleted: true},
			upd:     models.SessionUpdate{IsCompleted: ptr(true), PauseCount: ptr(1)},
			wantUpd: models.SessionUpdate{PauseCount: ptr(1)},
		},
		{
			name:    "pause count only",
			prev:    models.TimerSession{ID: "s1", Type: models.SessionFocus},
			upd:     models.SessionUpdate{PauseCount: ptr(2)},
			wantUpd: models.SessionUpdate{PauseCount: ptr(2)},
		},
		{
			name:    "explicitly not completed",
			prev:    models.TimerSession{ID: "s1", Type: models.SessionFocus},
			upd:     models.SessionUpdate{IsCompleted: ptr(false)},
			wantUpd: models.SessionUpdate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, p := new(RepoMock), new(ProgressMock)
			r.On("GetSession", mock.Anything, "acc", "s1").Return(&tt.prev, nil).Once()
			r.On("UpdateSession", mock.Anything, "acc", "s1", tt.wantUpd).Return(&tt.prev, nil).Once()

			_, err := newService(r, p, new(GoalsMock), time.UTC).Update(context.Background(), "acc", "s1", tt.upd)
			require.NoError(t, err)
			r.AssertExpectations(t)
			r.AssertNotCalled(t, "CompleteSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			p.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_CompletedBreakEarnsNothing(t *testing.T) {
	r, p := new(RepoMock), new(ProgressMock)
	r.On("GetSession", mock.Anything, "acc", "b1").
		Return(&models.TimerSession{ID: "b1", Type: models.SessionBreak, Duration: 300}, nil).Once()
	r.On("CompleteSession", mock.Anything, "acc", "b1", mock.MatchedBy(func(u models.SessionUpdate) bool {
		return u.XPEarned == nil && u.CompletedAt != nil
	})).Return(&models.TimerSession{ID: "b1", Type: models.SessionBreak, IsCompleted: true}, nil).Once()

	a := new(AccountsMock)
	_, err := newServiceWithAccounts(r, p, new(GoalsMock), a, time.UTC).Update(context.Background(), "acc", "b1", models.SessionUpdate{IsCompleted: ptr(true)})
	require.NoError(t, err)
	r.AssertExpectations(t)
	p.AssertNotCalled(t, "BumpChallenges", mock.Anything, mock.Anything, mock.Anything)
	a.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
}

func TestService_UpdateRefusesUncomplete(t *testing.T) {
	r, p := new(RepoMock), new(ProgressMock)
	r.On("GetSession", mock.Anything, "acc", "s1").
		Return(&models.TimerSession{ID: "s1", Type: models.SessionFocus, IsCompleted: true}, nil).Once()

	_, err := newService(r, p, new(GoalsMock), time.UTC).Update(context.Background(), "acc", "s1",
		models.SessionUpdate{IsCompleted: ptr(false)})
	require.ErrorIs(t, err, ErrAlreadyCompleted)
	r.AssertNotCalled(t, "UpdateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	r.AssertNotCalled(t, "CompleteSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateLosesCompletionRace(t *testing.T) {
	r, p := new(RepoMock), new(ProgressMock)
	r.On("GetSession", mock.Anything, "acc", "s1").
		Return(&models.TimerSession{ID: "s1", Type: models.SessionFocus, Duration: 1500}, nil).Once()
	r.On("CompleteSession", mock.Anything, "acc", "s1", mock.Anything).Return(nil, storage.ErrNotFound).Once()
	r.On("GetSession", mock.Anything, "acc", "s1").
		Return(&models.TimerSession{ID: "s1", Type: models.SessionFocus, Duration: 1500, IsCompleted: true}, nil).Once()

	_, err := newService(r, p, new(GoalsMock), time.UTC).Update(context.Background(), "acc", "s1",
		models.SessionUpdate{IsCompleted: ptr(true)})
	require.ErrorIs(t, err, ErrAlreadyCompleted)
	r.AssertExpectations(t)
	p.AssertNotCalled(t, "IncrementStreak", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	p.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
}

// memSessions хранит одну сессию в памяти и повторяет условное завершение хранилища.
type memSessions struct {
	RepoMock
	ts models.TimerSession
}

func (m *memSessions) GetSession(_ context.Context, _, id string) (*models.TimerSession, error) {
	if id != m.ts.ID {
		return nil, storage.ErrNotFound
	}
	cp := m.ts
	return &cp, nil
}

func (m *memSessions) UpdateSession(_ context.Context, _, _ string, upd models.SessionUpdate) (*models.TimerSession, error) {
	if upd.PauseCount != nil {
		m.ts.PauseCount = *upd.PauseCount
	}
	cp := m.ts
	return &cp, nil
}

func (m *memSessions) CompleteSession(_ context.Context, _, _ string, upd models.SessionUpdate) (*models.TimerSession, error) {
	if m.ts.IsCompleted {
		return nil, storage.ErrNotFound
	}
	m.ts.IsCompleted = true
	m.ts.CompletedDuration = *upd.CompletedDuration
	cp := m.ts
	return &cp, nil
}

func TestService_SessionCreditedOnce(t *testing.T) {
	repo := &memSessions{ts: models.TimerSession{ID: "s1", AccountID: "acc", Type: models.SessionFocus, Duration: 1500}}
	p, g := new(ProgressMock), new(GoalsMock)
	g.On("DailyGoal", mock.Anything, "acc").Return(4, nil)
	p.On("IncrementStreak", mock.Anything, "acc", "2025-03-10", 25, 4).Return(&models.DailyStreak{Date: "2025-03-10"}, nil)
	p.On("BumpChallenges", mock.Anything, "acc", fixedNow).Return(0, nil)
	p.On("AddXP", mock.Anything, "acc", 25).Return(&models.GameData{}, nil)
	svc := newService(repo, p, g, time.UTC)
	ctx := context.Background()

	_, err := svc.Update(ctx, "acc", "s1", models.SessionUpdate{IsCompleted: ptr(true)})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "acc", "s1", models.SessionUpdate{IsCompleted: ptr(false)})
	require.ErrorIs(t, err, ErrAlreadyCompleted)
	_, err = svc.Update(ctx, "acc", "s1", models.SessionUpdate{IsCompleted: ptr(true)})
	require.NoError(t, err)

	p.AssertNumberOfCalls(t, "IncrementStreak", 1)
	p.AssertNumberOfCalls(t, "AddXP", 1)
	p.AssertNumberOfCalls(t, "BumpChallenges", 1)
}

func TestService_ExpiredTrialKeepsOnlyStreak(t *testing.T) {
	taskID := "task-1"
	expired := &models.Account{ID: "acc", CreatedAt: fixedNow.AddDate(0, 0, -30)}

	tests := []struct {
		name  string
		setup func(*AccountsMock)
	}{
		{
			name: "trial expired",
			setup: func(a *AccountsMock) {
				a.On("GetAccount", mock.Anything, "acc").Return(expired, nil).Once()
			},
		},
		{
			name: "account lookup failed",
			setup: func(a *AccountsMock) {
				a.On("GetAccount", mock.Anything, "acc").Return(nil, errors.New("db down")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, p, g, a := new(RepoMock), new(ProgressMock), new(GoalsMock), new(AccountsMock)
			tt.setup(a)
			r.On("GetSession", mock.Anything, "acc", "s1").
				Return(&models.TimerSession{ID: "s1", Type: models.SessionFocus, Duration: 1500, TaskID: &taskID}, nil).Once()
			r.On("CompleteSession", mock.Anything, "acc", "s1", mock.MatchedBy(func(u models.SessionUpdate) bool {
				return u.XPEarned != nil && *u.XPEarned == 0
			})).Return(&models.TimerSession{
				ID: "s1", AccountID: "acc", Type: models.SessionFocus, TaskID: &taskID,
				IsCompleted: true, CompletedDuration: 1500,
			}, nil).Once()
			g.On("DailyGoal", mock.Anything, "acc").Return(4, nil).Once()
			p.On("IncrementStreak", mock.Anything, "acc", "2025-03-10", 25, 4).
				Return(&models.DailyStreak{Date: "2025-03-10"}, nil).Once()

			_, err := newServiceWithAccounts(r, p, g, a, time.UTC).Update(context.Background(), "acc", "s1",
				models.SessionUpdate{IsCompleted: ptr(true)})
			require.NoError(t, err)
			r.AssertExpectations(t)
			p.AssertExpectations(t)
			p.AssertNotCalled(t, "BumpChallenges", mock.Anything, mock.Anything, mock.Anything)
			p.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
			r.AssertNotCalled(t, "AddTaskFocus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_ListAndRange(t *testing.T) {
	r := new(RepoMock)
	r.On("ListSessions", mock.Anything, "acc", DefaultLimit).Return([]*models.TimerSession{}, nil).Once()

	svc := newService(r, new(ProgressMock), new(GoalsMock), time.UTC)
	_, err := svc.List(context.Background(), "acc", -1)
	require.NoError(t, err)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	r.On("ListSessionsInRange", mock.Anything, "acc", start, time.Date(2025, 3, 7, 23, 59, 59, 999999999, time.UTC)).
		Return([]*models.TimerSession{}, nil).Once()
	_, err = svc.Range(context.Background(), "acc", start, end)
	require.NoError(t, err)

	_, err = svc.Range(context.Background(), "acc", end, start)
	assert.ErrorIs(t, err, ErrInvalidRange)
	r.AssertExpectations(t)
}

func TestService_Summary(t *testing.T) {
	r := new(RepoMock)
	r.On("AnalyticsSummary", mock.Anything, "acc", fixedNow.AddDate(0, 0, -30)).
		Return(&models.AnalyticsSummary{TotalFocusTime: 3000, CompletedSessions: 2}, nil).Once()
	svc := newService(r, new(ProgressMock), new(GoalsMock), time.UTC)

	got, err := svc.Summary(context.Background(), "acc", "30d")
	require.NoError(t, err)
	assert.Equal(t, 3000, got.TotalFocusTime)

	_, err = svc.Summary(context.Background(), "acc", "1y")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func ptr[T any](v T) *T { return &v }
