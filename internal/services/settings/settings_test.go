package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetSettings(ctx context.Context, accountID string) (*models.UserSettings, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSettings), args.Error(1)
}

func (m *RepoMock) UpsertSettings(ctx context.Context, in models.UserSettings) (*models.UserSettings, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSettings), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_GetCreatesDefaults(t *testing.T) {
	r := new(RepoMock)
	defaults := models.DefaultSettings("acc", 4)
	r.On("GetSettings", mock.Anything, "acc").Return(nil, storage.ErrNotFound).Once()
	r.On("UpsertSettings", mock.Anything, defaults).Return(&defaults, nil).Once()

	got, err := New(r, 4, newNoopLogger()).Get(context.Background(), "acc")
	require.NoError(t, err)
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, 1500, got.DefaultSessionDuration)
	assert.Equal(t, 900, got.LongBreakDuration)
	assert.InDelta(t, 0.5, got.SoundVolume, 1e-9)
	r.AssertExpectations(t)
}

func TestService_GetStorageError(t *testing.T) {
	r := new(RepoMock)
	r.On("GetSettings", mock.Anything, "acc").Return(nil, errors.New("db down")).Once()

	_, err := New(r, 4, newNoopLogger()).Get(context.Background(), "acc")
	require.Error(t, err)
	r.AssertNotCalled(t, "UpsertSettings", mock.Anything, mock.Anything)
}

func TestService_SaveFillsDefaults(t *testing.T) {
	r := new(RepoMock)
	r.On("UpsertSettings", mock.Anything, mock.MatchedBy(func(in models.UserSettings) bool {
		return in.AccountID == "acc" && in.DailyGoal == 4 && in.Theme == "light" && in.ReminderTime == "09:00"
	})).Return(&models.UserSettings{AccountID: "acc"}, nil).Once()

	_, err := New(r, 4, newNoopLogger()).Save(context.Background(), "acc", models.UserSettings{AccountID: "spoofed"})
	require.NoError(t, err)
	r.AssertExpectations(t)
}

func TestService_DailyGoal(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *RepoMock)
		want  int
	}{
		{
			name: "user goal",
			setup: func(r *RepoMock) {
				r.On("GetSettings", mock.Anything, "acc").Return(&models.UserSettings{DailyGoal: 6}, nil)
			},
			want: 6,
		},
		{
			name: "no settings yet",
			setup: func(r *RepoMock) {
				r.On("GetSettings", mock.Anything, "acc").Return(nil, storage.ErrNotFound)
			},
			want: 4,
		},
		{
			name: "zero goal falls back",
			setup: func(r *RepoMock) {
				r.On("GetSettings", mock.Anything, "acc").Return(&models.UserSettings{}, nil)
			},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(RepoMock)
			tt.setup(r)
			got, err := New(r, 4, newNoopLogger()).DailyGoal(context.Background(), "acc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
