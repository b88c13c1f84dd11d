package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"resume-screener/internal/models"
)

const (
	summarySheet    = "Summary"
	candidatesSheet = "Ranked Candidates"
)

// BuildWorkbook renders a screening report into an Excel workbook with a
// summary sheet and a ranked candidate sheet. The caller owns closing the
// returned file.
func BuildWorkbook(report models.ScreeningReport) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return nil, fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, report); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, report.Candidates); err != nil {
		return nil, fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}

	return f, nil
}

// ExportToExcel generates an Excel file with the screening results
func ExportToExcel(report models.ScreeningReport, outputPath string) error {
	f, err := BuildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

// writeSummarySheet fills the summary sheet with job details and statistics
func writeSummarySheet(f *excelize.File, report models.ScreeningReport) error {
	f.SetColWidth(summarySheet, "A", "A", 25)
	f.SetColWidth(summarySheet, "B", "B", 70)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	f.SetCellValue(summarySheet, "A1", "Resume Screening Summary")
	f.MergeCell(summarySheet, "A1", "B1")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)

	scored := 0
	best := 0
	for _, c := range report.Candidates {
		if c.MatchPercentage > 0 {
			scored++
		}
		if c.MatchPercentage > best {
			best = c.MatchPercentage
		}
	}

	rows := []struct {
		label string
		value any
	}{
		{"Generated", report.GeneratedAt},
		{"Job Description", report.JobDescription},
		{"Total Candidates", len(report.Candidates)},
		{"Candidates With Matches", scored},
		{"Best Match", fmt.Sprintf("%d%%", best)},
	}

	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+3)
		valueCell := fmt.Sprintf("B%d", i+3)
		f.SetCellValue(summarySheet, labelCell, row.label)
		f.SetCellStyle(summarySheet, labelCell, labelCell, labelStyle)
		f.SetCellValue(summarySheet, valueCell, row.value)
	}

	return nil
}

// writeCandidatesSheet fills the ranked candidates sheet
func writeCandidatesSheet(f *excelize.File, candidates []models.Candidate) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	headers := []string{"Rank", "Name", "Email", "Phone", "Experience", "Skills", "Match %"}
	widths := []float64{8, 30, 30, 20, 15, 45, 10}
	for i, h := range headers {
		col := string(rune('A' + i))
		cell := col + "1"
		f.SetCellValue(candidatesSheet, cell, h)
		f.SetCellStyle(candidatesSheet, cell, cell, headerStyle)
		f.SetColWidth(candidatesSheet, col, col, widths[i])
	}

	for i, c := range candidates {
		row := i + 2
		f.SetCellValue(candidatesSheet, fmt.Sprintf("A%d", row), c.Rank)
		f.SetCellValue(candidatesSheet, fmt.Sprintf("B%d", row), c.Name)
		f.SetCellValue(candidatesSheet, fmt.Sprintf("C%d", row), c.Email)
		f.SetCellValue(candidatesSheet, fmt.Sprintf("D%d", row), c.Phone)
		f.SetCellValue(candidatesSheet, fmt.Sprintf("E%d", row), c.Experience)
		f.SetCellValue(candidatesSheet, fmt.Sprintf("F%d", row), c.SkillsDisplay())
		f.SetCellValue(candidatesSheet, fmt.Sprintf("G%d", row), c.MatchPercentage)
	}

	return nil
}
