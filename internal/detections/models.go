package detections

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Image represents an uploaded image
type Image struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Filename   string    `gorm:"not null" json:"filename"`
	Filepath   string    `gorm:"not null" json:"filepath"`
	UploadDate time.Time `gorm:"autoCreateTime" json:"upload_date"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`

	Detections []Detection `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE" json:"detections,omitempty"`
}

// Detection represents one stored pothole detection
type Detection struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ImageID       uuid.UUID `gorm:"type:uuid;not null;index" json:"image_id"`
	ClassID       int       `json:"class_id"`
	ClassName     string    `json:"class_name"`
	Confidence    float64   `json:"confidence"`
	BBoxX1        int       `json:"bbox_x1"`
	BBoxY1        int       `json:"bbox_y1"`
	BBoxX2        int       `json:"bbox_x2"`
	BBoxY2        int       `json:"bbox_y2"`
	DetectionDate time.Time `gorm:"autoCreateTime" json:"detection_date"`
}

// ImageMetadata holds per-image detection run metadata
type ImageMetadata struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ImageID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"image_id"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	InferenceTime float64        `json:"inference_time"`
	ModelName     string         `json:"model_name"`
	MetadataJSON  datatypes.JSON `json:"metadata_json,omitempty"`
}

// TableName pins the metadata table name; the default pluralization
// mangles it.
func (ImageMetadata) TableName() string {
	return "image_metadata"
}

// Record is a flattened detection row joined with its image and geotag,
// the shape the gallery and database views render.
type Record struct {
	ID            uuid.UUID `json:"id"`
	ImageID       uuid.UUID `json:"image_id"`
	Filename      string    `json:"filename"`
	Filepath      string    `json:"image_path"`
	ClassName     string    `json:"class_name"`
	Confidence    float64   `json:"confidence"`
	BBoxX1        int       `json:"bbox_x1"`
	BBoxY1        int       `json:"bbox_y1"`
	BBoxX2        int       `json:"bbox_x2"`
	BBoxY2        int       `json:"bbox_y2"`
	DetectionDate time.Time `json:"detection_date"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
}

// GeoSummary aggregates detections per geotagged image for the map view.
type GeoSummary struct {
	ImageID        uuid.UUID `json:"image_id"`
	Filename       string    `json:"filename"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	DetectionCount int       `json:"detection_count"`
}
