package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"talent-track/internal/analytics"
	"talent-track/internal/models"
)

// WriteReportXLSX writes the hiring report workbook: a Summary sheet with the
// window metrics and a Candidates sheet listing the windowed set.
func WriteReportXLSX(w io.Writer, candidates []*models.Candidate, report analytics.Report, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	candidatesSheet := "Candidates"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return fmt.Errorf("create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, report, generatedAt); err != nil {
		return fmt.Errorf("write summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, candidatesSheet, candidates); err != nil {
		return fmt.Errorf("write candidates sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, report analytics.Report, generatedAt time.Time) error {
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 40)

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	rows := []struct {
		label string
		value any
	}{
		{"Hiring Report", ""},
		{"Generated:", generatedAt.Format("2006-01-02 15:04:05")},
		{"Window (days):", report.WindowDays},
		{"Total Applications:", report.Metrics.Total},
		{"Hired:", report.Metrics.Hired},
		{"Average AI Score:", fmt.Sprintf("%.1f", report.Metrics.AvgScore)},
		{"Strong Candidates (>=70):", report.Metrics.StrongCount},
		{"Change vs Previous Period:", fmt.Sprintf("%.1f%%", report.Metrics.Change)},
	}
	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		f.SetCellValue(sheet, cell, r.label)
		f.SetCellStyle(sheet, cell, cell, labelStyle)
		if r.value != "" {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), r.value)
		}
	}

	// Pipeline breakdown below the metrics block.
	row := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Pipeline")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
	row++
	for _, status := range models.Statuses() {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), status)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.PipelineCounts[status])
		row++
	}
	return nil
}

func writeCandidatesSheet(f *excelize.File, sheet string, candidates []*models.Candidate) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, h := range candidateHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, c := range candidates {
		values := []any{
			c.Name,
			c.Email,
			stringOrEmpty(c.Phone),
			c.JobRoleApplied,
			experienceCell(c.ExperienceYears),
			scoreCell(c.AIFitScore),
			c.CurrentStatus(),
			strings.Join(c.Skills, "; "),
			c.CreatedAt.Format("2006-01-02"),
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "B", 24)
	f.SetColWidth(sheet, "C", "I", 18)
	return nil
}
