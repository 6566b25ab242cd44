package task

import (
	"context"
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

func (m *RepoMock) CreateTask(ctx context.Context, accountID string, in models.DummyTask) (*models.Task, error) {
	args := m.Called(ctx, accountID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *RepoMock) GetTask(ctx context.Context, accountID, id string) (*models.Task, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *RepoMock) ListTasks(ctx context.Context, accountID string) ([]*models.Task, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
}

func (m *RepoMock) UpdateTask(ctx context.Context, accountID, id string, upd models.TaskUpdate) (*models.Task, error) {
	args := m.Called(ctx, accountID, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *RepoMock) DeleteTask(ctx context.Context, accountID, id string) error {
	return m.Called(ctx, accountID, id).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_CreateNormalizesTags(t *testing.T) {
	r := new(RepoMock)
	r.On("CreateTask", mock.Anything, "acc", models.DummyTask{Title: "write", Tags: []string{}}).
		Return(&models.Task{ID: "t1", Title: "write"}, nil).Once()

	got, err := New(r, newNoopLogger()).Create(context.Background(), "acc", models.DummyTask{Title: "write"})
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	r.AssertExpectations(t)
}

func TestService_NotFoundPropagates(t *testing.T) {
	r := new(RepoMock)
	r.On("GetTask", mock.Anything, "acc", "t1").Return(nil, storage.ErrNotFound).Once()
	r.On("UpdateTask", mock.Anything, "acc", "t1", mock.Anything).Return(nil, storage.ErrNotFound).Once()
	r.On("DeleteTask", mock.Anything, "acc", "t1").Return(storage.ErrNotFound).Once()
	svc := New(r, newNoopLogger())

	_, err := svc.Get(context.Background(), "acc", "t1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = svc.Update(context.Background(), "acc", "t1", models.TaskUpdate{})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "acc", "t1"), storage.ErrNotFound)
}

func TestService_List(t *testing.T) {
	r := new(RepoMock)
	r.On("ListTasks", mock.Anything, "acc").Return([]*models.Task{{ID: "a"}, {ID: "b"}}, nil).Once()

	got, err := New(r, newNoopLogger()).List(context.Background(), "acc")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
