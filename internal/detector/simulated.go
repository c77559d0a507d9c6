package detector

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Simulated is a stand-in detection backend. It draws bounding boxes and
// confidence scores from a random source instead of running inference, so
// the rest of the portal can be exercised without a model server.
type Simulated struct {
	rng       *rand.Rand
	threshold float64
	model     string
	delay     time.Duration
	logger    *zap.Logger
}

// SimulatedOption configures the simulated detector.
type SimulatedOption func(*Simulated)

// WithRand sets the random source. Tests inject a seeded source to make
// runs reproducible.
func WithRand(rng *rand.Rand) SimulatedOption {
	return func(s *Simulated) { s.rng = rng }
}

// WithDelay sets the artificial inference delay.
func WithDelay(d time.Duration) SimulatedOption {
	return func(s *Simulated) { s.delay = d }
}

// NewSimulated creates a simulated detector
func NewSimulated(threshold float64, model string, logger *zap.Logger, opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		threshold: threshold,
		model:     model,
		delay:     500 * time.Millisecond,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Detect fabricates zero to four detections for the image. Box sizes are
// drawn between a tenth and a third of each image dimension; confidences
// are uniform between the threshold floor and 0.95.
func (s *Simulated) Detect(ctx context.Context, img ImageInfo) ([]Detection, Metadata, error) {
	start := time.Now()
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, Metadata{}, ctx.Err()
		}
	}

	detections := s.fabricate(img.Width, img.Height)

	meta := Metadata{
		ImageWidth:     img.Width,
		ImageHeight:    img.Height,
		InferenceTime:  time.Since(start).Seconds(),
		DetectionCount: len(detections),
		Model:          s.model,
		Timestamp:      time.Now().Unix(),
	}

	// 70% of runs carry a geotag in the demo area (NYC)
	if s.rng.Float64() > 0.3 {
		lat := 40.6 + s.rng.Float64()*0.2
		lon := -74.1 + s.rng.Float64()*0.2
		meta.Latitude = &lat
		meta.Longitude = &lon
	}

	s.logger.Debug("Simulated detection run",
		zap.String("filename", img.Filename),
		zap.Int("detections", len(detections)),
		zap.Float64("inference_time", meta.InferenceTime))

	return detections, meta, nil
}

func (s *Simulated) fabricate(width, height int) []Detection {
	if width < 10 || height < 10 {
		return nil
	}

	count := s.rng.Intn(5)
	detections := make([]Detection, 0, count)
	floor := s.threshold
	if floor < 0.3 {
		floor = 0.3
	}

	for i := 0; i < count; i++ {
		boxW := s.randBetween(width/10, width/3)
		boxH := s.randBetween(height/10, height/3)
		x1 := s.rng.Intn(width - boxW + 1)
		y1 := s.rng.Intn(height - boxH + 1)

		detections = append(detections, Detection{
			BBox: BoundingBox{
				X1: x1,
				Y1: y1,
				X2: x1 + boxW,
				Y2: y1 + boxH,
			},
			Confidence: floor + s.rng.Float64()*(0.95-floor),
			ClassID:    0,
			ClassName:  "pothole",
		})
	}
	return detections
}

func (s *Simulated) randBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}
