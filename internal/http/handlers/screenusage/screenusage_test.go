package screenusage

import (
	"context"
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

func (m *MockService) Record(ctx context.Context, accountID string, in models.ScreenUsageLog) (*models.ScreenUsageLog, error) {
	args := m.Called(ctx, accountID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScreenUsageLog), args.Error(1)
}

func (m *MockService) Stats(ctx context.Context, accountID string, sessionID *string) (*models.ScreenUsageStats, error) {
	args := m.Called(ctx, accountID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScreenUsageStats), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middlewarectx.WithAccount(req.Context(), &models.Account{ID: "acc"}))
}

func TestHandler_Record(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*MockService)
		wantStatus int
	}{
		{
			name: "recorded",
			body: `{"distraction_count":2,"focus_time":1200,"away_time":60}`,
			setup: func(m *MockService) {
				in := models.ScreenUsageLog{DistractionCount: 2, FocusTime: 1200, AwayTime: 60}
				m.On("Record", mock.Anything, "acc", in).Return(&models.ScreenUsageLog{ID: "l1", AccountID: "acc"}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{name: "negative away time", body: `{"away_time":-5}`, setup: func(*MockService) {}, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad session id", body: `{"session_id":"nope"}`, setup: func(*MockService) {}, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setup(svc)
			w := httptest.NewRecorder()
			New(newNoopLogger(), svc).Record(w, newRequest(http.MethodPost, "/screen-usage", tt.body))
			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Stats(t *testing.T) {
	svc := new(MockService)
	svc.On("Stats", mock.Anything, "acc", (*string)(nil)).Return(&models.ScreenUsageStats{
		Logs:           []*models.ScreenUsageLog{},
		TotalFocusTime: 900,
		TotalAwayTime:  100,
		FocusRatio:     0.9,
	}, nil).Once()

	w := httptest.NewRecorder()
	New(newNoopLogger(), svc).Stats(w, newRequest(http.MethodGet, "/screen-usage/stats", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"focus_ratio":0.9`)
	svc.AssertExpectations(t)
}

func TestHandler_StatsBySession(t *testing.T) {
	sessionID := "5b8e2c1a-3f4d-4e6a-9b7c-1d2e3f4a5b6c"
	svc := new(MockService)
	svc.On("Stats", mock.Anything, "acc", mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == sessionID
	})).Return(&models.ScreenUsageStats{Logs: []*models.ScreenUsageLog{}, TotalDistractions: 3}, nil).Once()
	h := New(newNoopLogger(), svc)

	w := httptest.NewRecorder()
	h.Stats(w, newRequest(http.MethodGet, "/screen-usage/stats?session_id="+sessionID, ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_distractions":3`)

	w = httptest.NewRecorder()
	h.Stats(w, newRequest(http.MethodGet, "/screen-usage/stats?session_id=nope", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}
