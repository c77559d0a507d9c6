package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) TotalImages(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) TotalDetections(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) AverageConfidence(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRepository) ImagesWithDetections(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) DailyCounts(ctx context.Context) ([]DailyCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DailyCount), args.Error(1)
}

func TestSummaryComputesDerivedMetrics(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("TotalImages", mock.Anything).Return(10, nil)
	mockRepo.On("TotalDetections", mock.Anything).Return(25, nil)
	mockRepo.On("AverageConfidence", mock.Anything).Return(0.72, nil)
	mockRepo.On("ImagesWithDetections", mock.Anything).Return(8, nil)
	mockRepo.On("DailyCounts", mock.Anything).Return([]DailyCount{
		{Date: "2026-08-28", Count: 12},
		{Date: "2026-08-29", Count: 13},
	}, nil)

	service := NewService(mockRepo, zap.NewNop())
	summary := service.Summary(context.Background())

	assert.Equal(t, 10, summary.TotalImages)
	assert.Equal(t, 25, summary.TotalDetections)
	assert.InDelta(t, 2.5, summary.AvgPotholesPerImage, 1e-9)
	assert.InDelta(t, 0.72, summary.AvgConfidence, 1e-9)
	assert.InDelta(t, 80.0, summary.DetectionRate, 1e-9)
	assert.Equal(t, []string{"2026-08-28", "2026-08-29"}, summary.Dates)
	assert.Equal(t, []int{12, 13}, summary.DailyCounts)
}

func TestSummaryEmptyDatabase(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("TotalImages", mock.Anything).Return(0, nil)
	mockRepo.On("TotalDetections", mock.Anything).Return(0, nil)
	mockRepo.On("AverageConfidence", mock.Anything).Return(0.0, nil)
	mockRepo.On("DailyCounts", mock.Anything).Return([]DailyCount{}, nil)

	service := NewService(mockRepo, zap.NewNop())
	summary := service.Summary(context.Background())

	assert.Zero(t, summary.AvgPotholesPerImage)
	assert.Zero(t, summary.DetectionRate)
	assert.Empty(t, summary.Dates)
	mockRepo.AssertNotCalled(t, "ImagesWithDetections", mock.Anything)
}

func TestSummaryDegradesOnQueryError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("TotalImages", mock.Anything).Return(0, errors.New("connection refused"))

	service := NewService(mockRepo, zap.NewNop())
	summary := service.Summary(context.Background())

	assert.Zero(t, summary.TotalImages)
	assert.Zero(t, summary.TotalDetections)
	assert.NotNil(t, summary.Dates)
	assert.NotNil(t, summary.DailyCounts)
}

func TestSummaryKeepsTotalsWhenDailySeriesFails(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("TotalImages", mock.Anything).Return(4, nil)
	mockRepo.On("TotalDetections", mock.Anything).Return(9, nil)
	mockRepo.On("AverageConfidence", mock.Anything).Return(0.5, nil)
	mockRepo.On("ImagesWithDetections", mock.Anything).Return(3, nil)
	mockRepo.On("DailyCounts", mock.Anything).Return(nil, errors.New("timeout"))

	service := NewService(mockRepo, zap.NewNop())
	summary := service.Summary(context.Background())

	assert.Equal(t, 4, summary.TotalImages)
	assert.Equal(t, 9, summary.TotalDetections)
	assert.Empty(t, summary.Dates)
}
