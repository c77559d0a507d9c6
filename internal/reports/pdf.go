package reports

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/detections"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/stats"
)

// PDFOptions configures PDF report generation
type PDFOptions struct {
	Title       string
	Orientation string // portrait, landscape
	FontFamily  string
	FontSize    float64
	HeaderColor pdfColor
}

type pdfColor struct {
	R, G, B int
}

// DefaultPDFOptions returns default PDF report options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Title:       "Pothole Detection Summary",
		Orientation: "portrait",
		FontFamily:  "Arial",
		FontSize:    10,
		HeaderColor: pdfColor{R: 68, G: 114, B: 196},
	}
}

// buildPDF renders the dashboard summary and recent detections as a PDF.
func buildPDF(summary *stats.Summary, records []detections.Record, options PDFOptions) ([]byte, error) {
	orientation := "P"
	if options.Orientation == "landscape" {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Title and generation date
	pdf.SetFont(options.FontFamily, "B", 16)
	pdf.CellFormat(0, 10, options.Title, "", 1, "C", false, 0, "")
	pdf.SetFont(options.FontFamily, "I", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	// Summary block
	pdf.SetFont(options.FontFamily, "B", 12)
	pdf.CellFormat(0, 8, "Dashboard Summary", "", 1, "L", false, 0, "")
	pdf.SetFont(options.FontFamily, "", options.FontSize)

	summaryRows := [][2]string{
		{"Total Images", strconv.Itoa(summary.TotalImages)},
		{"Total Detections", strconv.Itoa(summary.TotalDetections)},
		{"Avg Potholes per Image", fmt.Sprintf("%.2f", summary.AvgPotholesPerImage)},
		{"Avg Confidence", fmt.Sprintf("%.2f", summary.AvgConfidence)},
		{"Detection Rate", fmt.Sprintf("%.1f%%", summary.DetectionRate)},
	}
	for _, row := range summaryRows {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	// Detections table
	pdf.SetFont(options.FontFamily, "B", 12)
	pdf.CellFormat(0, 8, "Recent Detections", "", 1, "L", false, 0, "")

	headers := []string{"Filename", "Class", "Confidence", "Bounding Box", "Detected"}
	widths := []float64{55, 22, 24, 44, 35}

	pdf.SetFont(options.FontFamily, "B", options.FontSize)
	pdf.SetFillColor(options.HeaderColor.R, options.HeaderColor.G, options.HeaderColor.B)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(options.FontFamily, "", options.FontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(242, 242, 242)
	for i, record := range records {
		fill := i%2 == 1
		bbox := fmt.Sprintf("(%d, %d, %d, %d)", record.BBoxX1, record.BBoxY1, record.BBoxX2, record.BBoxY2)
		pdf.CellFormat(widths[0], 7, truncate(record.Filename, 30), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 7, record.ClassName, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%.2f", record.Confidence), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 7, bbox, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[4], 7, record.DetectionDate.Format("2006-01-02"), "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	if len(records) == 0 {
		pdf.CellFormat(0, 7, "No detections recorded yet.", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
