package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
	}{
		{name: "no database", db: nil, wantStatus: http.StatusOK},
		{name: "database up", db: pingerFunc(func(context.Context) error { return nil }), wantStatus: http.StatusOK},
		{name: "database down", db: pingerFunc(func(context.Context) error { return errors.New("refused") }), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			New(log, tt.db).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
