package detections

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/detector"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/export"
	"roadwatch/pothole-portal/pothole-portal-backend/pkg/storage"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveResult(ctx context.Context, image *Image, meta *ImageMetadata, dets []Detection) error {
	args := m.Called(ctx, image, meta, dets)
	return args.Error(0)
}

func (m *MockRepository) ListRecords(ctx context.Context, limit int) ([]Record, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockRepository) GetImage(ctx context.Context, imageID uuid.UUID) (*Image, *ImageMetadata, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var meta *ImageMetadata
	if args.Get(1) != nil {
		meta = args.Get(1).(*ImageMetadata)
	}
	return args.Get(0).(*Image), meta, args.Error(2)
}

func (m *MockRepository) GeoSummaries(ctx context.Context) ([]GeoSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]GeoSummary), args.Error(1)
}

func (m *MockRepository) CountInBounds(ctx context.Context, since time.Time, minLat, maxLat, minLon, maxLon float64) (int64, error) {
	args := m.Called(ctx, since, minLat, maxLat, minLon, maxLon)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	det := detector.NewSimulated(0.25, "YOLOv8 (Simulation)", zap.NewNop(),
		detector.WithRand(rand.New(rand.NewSource(42))),
		detector.WithDelay(0))
	return NewService(repo, det, store, zap.NewNop())
}

func TestRunDetectionPersistsAndReturnsResult(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SaveResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := newTestService(t, repo)
	result, err := service.RunDetection(context.Background(), "road.jpg", 640, 480,
		strings.NewReader("image-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "road.jpg", result.Filename)
	assert.NotEmpty(t, result.ImagePath)
	assert.Equal(t, len(result.Detections), result.Metadata.DetectionCount)
	repo.AssertExpectations(t)
}

func TestRunDetectionSurvivesDatabaseFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SaveResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))

	service := newTestService(t, repo)
	result, err := service.RunDetection(context.Background(), "road.jpg", 640, 480, nil)

	require.NoError(t, err, "a dead database must not fail the detection run")
	assert.Equal(t, uuid.Nil, result.ImageID)
	assert.Equal(t, 640, result.Metadata.ImageWidth)
}

func TestExportImagePassesStoredMetadataThrough(t *testing.T) {
	repo := new(MockRepository)
	imageID := uuid.New()
	image := &Image{
		ID:       imageID,
		Filename: "road.jpg",
		Width:    640,
		Height:   480,
		Detections: []Detection{
			{ClassID: 0, ClassName: "pothole", Confidence: 0.9,
				BBoxX1: 1, BBoxY1: 2, BBoxX2: 3, BBoxY2: 4},
		},
	}
	meta := &ImageMetadata{
		MetadataJSON: datatypes.JSON(`{"model":"YOLOv8 (Simulation)","image_width":640}`),
	}
	repo.On("GetImage", mock.Anything, imageID).Return(image, meta, nil)

	service := newTestService(t, repo)
	data, contentType, err := service.ExportImage(context.Background(), imageID, export.FormatJSON)

	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var payload struct {
		Detections []map[string]interface{} `json:"detections"`
		Metadata   map[string]interface{}   `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Len(t, payload.Detections, 1)
	assert.Equal(t, "YOLOv8 (Simulation)", payload.Metadata["model"])
}

func TestExportImageFallsBackToDimensions(t *testing.T) {
	repo := new(MockRepository)
	imageID := uuid.New()
	repo.On("GetImage", mock.Anything, imageID).
		Return(&Image{ID: imageID, Width: 800, Height: 600}, nil, nil)

	service := newTestService(t, repo)
	data, _, err := service.ExportImage(context.Background(), imageID, export.FormatJSON)

	require.NoError(t, err)
	var payload struct {
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, float64(800), payload.Metadata["image_width"])
}

func TestExportImageUnsupportedFormat(t *testing.T) {
	repo := new(MockRepository)
	imageID := uuid.New()
	repo.On("GetImage", mock.Anything, imageID).
		Return(&Image{ID: imageID}, nil, nil)

	service := newTestService(t, repo)
	_, _, err := service.ExportImage(context.Background(), imageID, "xml")

	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}
