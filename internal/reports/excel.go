package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/detections"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/stats"
)

const (
	summarySheet    = "Summary"
	detectionsSheet = "Detections"
)

// buildWorkbook renders the dashboard summary and detection rows as an
// Excel workbook with one sheet per concern.
func buildWorkbook(summary *stats.Summary, records []detections.Record) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", summarySheet)
	if _, err := file.NewSheet(detectionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create detections sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummarySheet(file, summary, headerStyle); err != nil {
		return nil, err
	}
	if err := writeDetectionsSheet(file, records, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(file *excelize.File, summary *stats.Summary, headerStyle int) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Images", summary.TotalImages},
		{"Total Detections", summary.TotalDetections},
		{"Avg Potholes per Image", summary.AvgPotholesPerImage},
		{"Avg Confidence", summary.AvgConfidence},
		{"Detection Rate", summary.DetectionRate},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := file.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	file.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	file.SetColWidth(summarySheet, "A", "A", 24)
	file.SetColWidth(summarySheet, "B", "B", 16)

	// Daily counts below the metrics block
	start := len(rows) + 2
	dailyHeader := []interface{}{"Date", "Detections"}
	cell, _ := excelize.CoordinatesToCellName(1, start)
	if err := file.SetSheetRow(summarySheet, cell, &dailyHeader); err != nil {
		return fmt.Errorf("failed to write daily header: %w", err)
	}
	headerCell, _ := excelize.CoordinatesToCellName(1, start)
	endCell, _ := excelize.CoordinatesToCellName(2, start)
	file.SetCellStyle(summarySheet, headerCell, endCell, headerStyle)

	for i, date := range summary.Dates {
		count := 0
		if i < len(summary.DailyCounts) {
			count = summary.DailyCounts[i]
		}
		row := []interface{}{date, count}
		cell, _ := excelize.CoordinatesToCellName(1, start+1+i)
		if err := file.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write daily row: %w", err)
		}
	}
	return nil
}

func writeDetectionsSheet(file *excelize.File, records []detections.Record, headerStyle int) error {
	header := []interface{}{
		"Image ID", "Filename", "Detection Date", "Class", "Confidence",
		"BBox X1", "BBox Y1", "BBox X2", "BBox Y2",
	}
	if err := file.SetSheetRow(detectionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write detections header: %w", err)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
	file.SetCellStyle(detectionsSheet, "A1", endCell, headerStyle)

	for i, record := range records {
		row := []interface{}{
			record.ImageID.String(),
			record.Filename,
			record.DetectionDate.Format("2006-01-02 15:04:05"),
			record.ClassName,
			record.Confidence,
			record.BBoxX1,
			record.BBoxY1,
			record.BBoxX2,
			record.BBoxY2,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := file.SetSheetRow(detectionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write detection row: %w", err)
		}
	}

	if len(records) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(header), len(records)+1)
		file.AutoFilter(detectionsSheet, "A1:"+last, nil)
	}
	file.SetPanes(detectionsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	file.SetColWidth(detectionsSheet, "A", "A", 38)
	file.SetColWidth(detectionsSheet, "B", "B", 30)
	file.SetColWidth(detectionsSheet, "C", "C", 20)
	return nil
}
