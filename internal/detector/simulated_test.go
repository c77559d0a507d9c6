package detector

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDetector(seed int64, threshold float64) *Simulated {
	return NewSimulated(threshold, "YOLOv8 (Simulation)", zap.NewNop(),
		WithRand(rand.New(rand.NewSource(seed))),
		WithDelay(0))
}

func TestDetectProducesBoundedResults(t *testing.T) {
	img := ImageInfo{Filename: "road.jpg", Width: 640, Height: 480}

	for seed := int64(0); seed < 20; seed++ {
		det := newTestDetector(seed, 0.25)
		detections, meta, err := det.Detect(context.Background(), img)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(detections), 4)
		assert.Equal(t, len(detections), meta.DetectionCount)

		for _, d := range detections {
			assert.GreaterOrEqual(t, d.Confidence, 0.3)
			assert.LessOrEqual(t, d.Confidence, 0.95)
			assert.Equal(t, 0, d.ClassID)
			assert.Equal(t, "pothole", d.ClassName)

			assert.GreaterOrEqual(t, d.BBox.X1, 0)
			assert.GreaterOrEqual(t, d.BBox.Y1, 0)
			assert.LessOrEqual(t, d.BBox.X2, img.Width)
			assert.LessOrEqual(t, d.BBox.Y2, img.Height)

			boxW := d.BBox.X2 - d.BBox.X1
			boxH := d.BBox.Y2 - d.BBox.Y1
			assert.GreaterOrEqual(t, boxW, img.Width/10)
			assert.LessOrEqual(t, boxW, img.Width/3)
			assert.GreaterOrEqual(t, boxH, img.Height/10)
			assert.LessOrEqual(t, boxH, img.Height/3)
		}
	}
}

func TestDetectRespectsThresholdFloor(t *testing.T) {
	img := ImageInfo{Filename: "road.jpg", Width: 640, Height: 480}

	for seed := int64(0); seed < 20; seed++ {
		det := newTestDetector(seed, 0.6)
		detections, _, err := det.Detect(context.Background(), img)
		require.NoError(t, err)

		for _, d := range detections {
			assert.GreaterOrEqual(t, d.Confidence, 0.6)
		}
	}
}

func TestDetectMetadata(t *testing.T) {
	det := newTestDetector(1, 0.25)
	img := ImageInfo{Filename: "road.jpg", Width: 800, Height: 600}

	_, meta, err := det.Detect(context.Background(), img)
	require.NoError(t, err)

	assert.Equal(t, 800, meta.ImageWidth)
	assert.Equal(t, 600, meta.ImageHeight)
	assert.Equal(t, "YOLOv8 (Simulation)", meta.Model)
	assert.NotZero(t, meta.Timestamp)
	assert.GreaterOrEqual(t, meta.InferenceTime, 0.0)

	if meta.Latitude != nil {
		require.NotNil(t, meta.Longitude)
		assert.GreaterOrEqual(t, *meta.Latitude, 40.6)
		assert.LessOrEqual(t, *meta.Latitude, 40.8)
		assert.GreaterOrEqual(t, *meta.Longitude, -74.1)
		assert.LessOrEqual(t, *meta.Longitude, -73.9)
	}
}

func TestDetectTinyImageYieldsNothing(t *testing.T) {
	det := newTestDetector(1, 0.25)

	detections, meta, err := det.Detect(context.Background(), ImageInfo{Width: 5, Height: 5})
	require.NoError(t, err)
	assert.Empty(t, detections)
	assert.Equal(t, 0, meta.DetectionCount)
}

func TestDetectCancelledContext(t *testing.T) {
	det := NewSimulated(0.25, "YOLOv8 (Simulation)", zap.NewNop(),
		WithDelay(5*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := det.Detect(ctx, ImageInfo{Width: 640, Height: 480})
	assert.ErrorIs(t, err, context.Canceled)
}
