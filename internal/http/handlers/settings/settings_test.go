package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/focuszen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) Get(ctx context.Context, accountID string) (*models.UserSettings, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSettings), args.Error(1)
}

func (m *MockService) Save(ctx context.Context, accountID string, in models.UserSettings) (*models.UserSettings, error) {
	args := m.Called(ctx, accountID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSettings), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/user/settings", strings.NewReader(body))
	return req.WithContext(middlewarectx.WithAccount(req.Context(), &models.Account{ID: "acc"}))
}

func TestHandler_Get(t *testing.T) {
	svc := new(MockService)
	def := models.DefaultSettings("acc", 4)
	svc.On("Get", mock.Anything, "acc").Return(&def, nil).Once()

	w := httptest.NewRecorder()
	New(newNoopLogger(), svc).Get(w, newRequest(http.MethodGet, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"daily_goal":4`)
	svc.AssertExpectations(t)
}

func TestHandler_Save(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*MockService)
		wantStatus int
	}{
		{
			name: "saved",
			body: `{"theme":"dark","reminder_time":"08:30","sound_volume":0.3,"daily_goal":6}`,
			setup: func(m *MockService) {
				m.On("Save", mock.Anything, "acc", mock.MatchedBy(func(s models.UserSettings) bool {
					return s.Theme == "dark" && s.DailyGoal == 6
				})).Return(&models.UserSettings{AccountID: "acc", Theme: "dark", DailyGoal: 6}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{name: "unknown theme", body: `{"theme":"neon"}`, setup: func(*MockService) {}, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad reminder time", body: `{"reminder_time":"9am"}`, setup: func(*MockService) {}, wantStatus: http.StatusUnprocessableEntity},
		{name: "volume above one", body: `{"sound_volume":2}`, setup: func(*MockService) {}, wantStatus: http.StatusUnprocessableEntity},
		{
			name: "store failure",
			body: `{}`,
			setup: func(m *MockService) {
				m.On("Save", mock.Anything, "acc", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setup(svc)
			w := httptest.NewRecorder()
			New(newNoopLogger(), svc).Save(w, newRequest(http.MethodPost, tt.body))
			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
