package repairs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, req *Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, status string) ([]Request, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]Request), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, req *Request, history *StatusHistory) error {
	args := m.Called(ctx, req, history)
	return args.Error(0)
}

func (m *MockRepository) History(ctx context.Context, requestID uuid.UUID) ([]StatusHistory, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).([]StatusHistory), args.Error(1)
}

func TestSubmitDefaults(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *Request) bool {
		return r.Status == StatusSubmitted && r.Priority == "medium"
	})).Return(nil)

	request, err := service.Submit(context.Background(), SubmitRequest{
		Location:    "5th Ave & 42nd St",
		Description: "Large pothole near the crosswalk",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, request.Status)
	assert.Equal(t, "medium", request.Priority)
	mockRepo.AssertExpectations(t)
}

func TestSubmitKeepsExplicitPriority(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	request, err := service.Submit(context.Background(), SubmitRequest{
		Location: "Main St",
		Priority: "high",
	})

	require.NoError(t, err)
	assert.Equal(t, "high", request.Priority)
}

func TestTransitionAllowed(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	id := uuid.New()
	mockRepo.On("Get", mock.Anything, id).Return(&Request{ID: id, Status: StatusSubmitted}, nil)
	mockRepo.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(r *Request) bool {
		return r.Status == StatusAcknowledged
	}), mock.MatchedBy(func(h *StatusHistory) bool {
		return h.Status == StatusAcknowledged && h.Note == "Crew assigned"
	})).Return(nil)

	request, err := service.Transition(context.Background(), id, StatusAcknowledged, "Crew assigned")

	require.NoError(t, err)
	assert.Equal(t, StatusAcknowledged, request.Status)
	mockRepo.AssertExpectations(t)
}

func TestTransitionRejected(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	id := uuid.New()
	mockRepo.On("Get", mock.Anything, id).Return(&Request{ID: id, Status: StatusSubmitted}, nil)

	_, err := service.Transition(context.Background(), id, StatusCompleted, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestResubmitAfterRejection(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	id := uuid.New()
	mockRepo.On("Get", mock.Anything, id).Return(&Request{ID: id, Status: StatusRejected}, nil)
	mockRepo.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	request, err := service.Transition(context.Background(), id, StatusSubmitted, "Resubmitted with photos")

	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, request.Status)
}

func TestGetIncludesHistory(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())

	id := uuid.New()
	mockRepo.On("Get", mock.Anything, id).Return(&Request{ID: id, Status: StatusScheduled}, nil)
	mockRepo.On("History", mock.Anything, id).Return([]StatusHistory{
		{RequestID: id, Status: StatusSubmitted},
		{RequestID: id, Status: StatusAcknowledged},
		{RequestID: id, Status: StatusScheduled},
	}, nil)

	request, history, err := service.Get(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, request.Status)
	assert.Len(t, history, 3)
}
