package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/detections"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/stats"
)

func sampleSummary() *stats.Summary {
	return &stats.Summary{
		TotalImages:         10,
		TotalDetections:     25,
		AvgPotholesPerImage: 2.5,
		AvgConfidence:       0.72,
		DetectionRate:       80,
		Dates:               []string{"2026-08-28", "2026-08-29"},
		DailyCounts:         []int{12, 13},
	}
}

func sampleRecords() []detections.Record {
	return []detections.Record{
		{
			ID:            uuid.New(),
			ImageID:       uuid.New(),
			Filename:      "road.jpg",
			ClassName:     "pothole",
			Confidence:    0.85,
			BBoxX1:        10,
			BBoxY1:        20,
			BBoxX2:        110,
			BBoxY2:        120,
			DetectionDate: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestBuildPDF(t *testing.T) {
	data, err := buildPDF(sampleSummary(), sampleRecords(), DefaultPDFOptions())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBuildPDFEmptyRecords(t *testing.T) {
	data, err := buildPDF(sampleSummary(), nil, DefaultPDFOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBuildWorkbook(t *testing.T) {
	data, err := buildWorkbook(sampleSummary(), sampleRecords())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	assert.ElementsMatch(t, []string{summarySheet, detectionsSheet}, file.GetSheetList())

	metric, err := file.GetCellValue(summarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total Images", metric)

	filename, err := file.GetCellValue(detectionsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "road.jpg", filename)
}

func TestBuildWorkbookEmpty(t *testing.T) {
	data, err := buildWorkbook(&stats.Summary{}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
