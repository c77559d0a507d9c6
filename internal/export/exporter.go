// Package export renders detection results into downloadable encodings.
// Exporters are pure: they take an immutable detection snapshot and
// return bytes plus a content type, with no side effects.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/detector"
)

// ErrUnsupportedFormat is returned for an unrecognized format selector.
// Callers surface it as a rejected request rather than retrying.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Supported format selectors.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatTXT  = "txt"
)

// Columns are the tabular export columns, in order.
var Columns = []string{
	"bbox_x1", "bbox_y1", "bbox_x2", "bbox_y2",
	"confidence", "class_id", "class_name",
}

// detectionRow is the flat encoding of one detection, matching Columns.
type detectionRow struct {
	BBoxX1     int     `json:"bbox_x1"`
	BBoxY1     int     `json:"bbox_y1"`
	BBoxX2     int     `json:"bbox_x2"`
	BBoxY2     int     `json:"bbox_y2"`
	Confidence float64 `json:"confidence"`
	ClassID    int     `json:"class_id"`
	ClassName  string  `json:"class_name"`
}

func toRow(d detector.Detection) detectionRow {
	return detectionRow{
		BBoxX1:     d.BBox.X1,
		BBoxY1:     d.BBox.Y1,
		BBoxX2:     d.BBox.X2,
		BBoxY2:     d.BBox.Y2,
		Confidence: d.Confidence,
		ClassID:    d.ClassID,
		ClassName:  d.ClassName,
	}
}

// Export encodes a detection list and its metadata in the requested
// format and returns the bytes with their content type. The metadata is
// passed through verbatim into the JSON encoding; CSV and TXT ignore it.
// An unknown format yields ErrUnsupportedFormat and no bytes.
func Export(detections []detector.Detection, metadata interface{}, format string) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		data, err := exportCSV(detections)
		return data, "text/csv", err
	case FormatJSON:
		data, err := exportJSON(detections, metadata)
		return data, "application/json", err
	case FormatTXT:
		return exportTXT(detections), "text/plain", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// exportCSV writes one row per detection. An empty detection list still
// produces the full header row.
func exportCSV(detections []detector.Detection) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, d := range detections {
		record := []string{
			strconv.Itoa(d.BBox.X1),
			strconv.Itoa(d.BBox.Y1),
			strconv.Itoa(d.BBox.X2),
			strconv.Itoa(d.BBox.Y2),
			strconv.FormatFloat(d.Confidence, 'f', -1, 64),
			strconv.Itoa(d.ClassID),
			d.ClassName,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv export failed: %w", err)
	}
	return buf.Bytes(), nil
}

func exportJSON(detections []detector.Detection, metadata interface{}) ([]byte, error) {
	rows := make([]detectionRow, len(detections))
	for i, d := range detections {
		rows[i] = toRow(d)
	}

	payload := struct {
		Detections []detectionRow `json:"detections"`
		Metadata   interface{}    `json:"metadata"`
	}{
		Detections: rows,
		Metadata:   metadata,
	}

	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("json export failed: %w", err)
	}
	return data, nil
}

func exportTXT(detections []detector.Detection) []byte {
	var buf bytes.Buffer
	for i, d := range detections {
		fmt.Fprintf(&buf, "Detection %d: %s (Conf: %.2f) at (%d, %d, %d, %d)\n",
			i+1, d.ClassName, d.Confidence,
			d.BBox.X1, d.BBox.Y1, d.BBox.X2, d.BBox.Y2)
	}
	return buf.Bytes()
}
