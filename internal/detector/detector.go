package detector

import "context"

// BoundingBox is a pixel-space box with inclusive corners.
type BoundingBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Detection is one bounding box produced by the detection backend.
type Detection struct {
	BBox       BoundingBox `json:"bbox"`
	Confidence float64     `json:"confidence"`
	ClassID    int         `json:"class_id"`
	ClassName  string      `json:"class_name"`
}

// Metadata describes one detection run over a single image.
type Metadata struct {
	ImageWidth     int      `json:"image_width"`
	ImageHeight    int      `json:"image_height"`
	InferenceTime  float64  `json:"inference_time"`
	DetectionCount int      `json:"detection_count"`
	Model          string   `json:"model"`
	Timestamp      int64    `json:"timestamp"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

// ImageInfo identifies the image a detection run operates on. Only the
// dimensions matter to the backend; pixel data stays with the caller.
type ImageInfo struct {
	Filename string
	Width    int
	Height   int
}

// Detector is the detection backend interface. The portal ships with a
// simulated implementation; a real model server would satisfy the same
// interface.
type Detector interface {
	Detect(ctx context.Context, img ImageInfo) ([]Detection, Metadata, error)
}
