package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"equipcare-cloud/internal/analytics/domain/kpi"
)

// HealthReport bundles the overview and rankings for export.
type HealthReport struct {
	GeneratedAt     time.Time
	Summary         kpi.HealthSummary
	DowntimeRanking []kpi.AssetMetrics
	CostRanking     []kpi.AssetMetrics
}

// BuildHealthReportPDF renders a minimal PDF for a health report.
func BuildHealthReportPDF(report HealthReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Asset Health Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Assets: %d", report.Summary.TotalAssets))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Active Assets: %d", report.Summary.ActiveAssets))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Assets With Issues: %d", report.Summary.AssetsWithIssues))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average Health Score: %.1f", report.Summary.AverageHealthScore))
	pdf.Ln(8)

	writeMetricsTable(pdf, "Critical Assets", report.Summary.CriticalAssets)
	writeMetricsTable(pdf, "Top Downtime", report.DowntimeRanking)
	writeMetricsTable(pdf, "Top Maintenance Cost", report.CostRanking)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMetricsTable(pdf *gofpdf.Fpdf, title string, items []kpi.AssetMetrics) {
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, title)
	pdf.Ln(7)
	pdf.CellFormat(30, 6, "Code", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 6, "Name", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Downtime (h)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Faults", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Health", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range items {
		pdf.CellFormat(30, 6, item.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 6, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", item.TotalDowntimeHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.FaultFrequency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.1f", item.HealthScore), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// BuildHealthReportXLSX renders a minimal XLSX for a health report.
func BuildHealthReportXLSX(report HealthReport) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	assetsSheet := "assets"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(assetsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Asset Health Report")
	_ = f.SetCellValue(summarySheet, "A3", "Generated")
	_ = f.SetCellValue(summarySheet, "B3", report.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A4", "Total Assets")
	_ = f.SetCellValue(summarySheet, "B4", report.Summary.TotalAssets)
	_ = f.SetCellValue(summarySheet, "A5", "Active Assets")
	_ = f.SetCellValue(summarySheet, "B5", report.Summary.ActiveAssets)
	_ = f.SetCellValue(summarySheet, "A6", "Assets With Issues")
	_ = f.SetCellValue(summarySheet, "B6", report.Summary.AssetsWithIssues)
	_ = f.SetCellValue(summarySheet, "A7", "Average Health Score")
	_ = f.SetCellValue(summarySheet, "B7", report.Summary.AverageHealthScore)

	headers := []string{"Code", "Name", "Location", "Downtime (h)", "Incidents", "Avg Downtime", "Faults", "Cost", "Health", "Last Maintenance"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(assetsSheet, cell, header)
	}
	for i, item := range report.DowntimeRanking {
		row := i + 2
		lastMaintenance := ""
		if item.LastMaintenanceDate != nil {
			lastMaintenance = item.LastMaintenanceDate.Format("2006-01-02")
		}
		values := []any{
			item.Code, item.Name, item.Location,
			item.TotalDowntimeHours, item.DowntimeIncidents, item.AverageDowntimePerIncident,
			item.FaultFrequency, item.MaintenanceCost, item.HealthScore, lastMaintenance,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			_ = f.SetCellValue(assetsSheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
