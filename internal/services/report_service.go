package services

import (
	"fmt"

	"github.com/alimgiray/gscope-analytics/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary            = "Summary"
	SheetAuthors            = "Authors"
	SheetSignificantCommits = "Significant Commits"
	SheetMetrics            = "Metrics"
	SheetWordFrequency      = "Word Frequency"
)

// ReportService renders an AnalyticsReport as an Excel workbook
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildWorkbook writes one sheet per computation plus a summary sheet.
// The caller owns the returned file and must Close it.
func (s *ReportService) BuildWorkbook(report *models.AnalyticsReport) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with "Sheet1"; rename it so no empty sheet is left behind
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}

	summary := [][]interface{}{
		{"From", report.Window.From},
		{"To", report.Window.To},
		{"Commits", report.CommitCount},
	}
	if err := s.writeSheet(f, SheetSummary, []interface{}{"Field", "Value"}, summary); err != nil {
		f.Close()
		return nil, err
	}

	authors := make([][]interface{}, 0, len(report.Authors))
	for _, author := range report.Authors {
		authors = append(authors, []interface{}{author})
	}

	significant := make([][]interface{}, 0, len(report.SignificantCommits))
	for _, commit := range report.SignificantCommits {
		significant = append(significant, []interface{}{commit.SHA, commit.Message})
	}

	metrics := make([][]interface{}, 0, len(report.Metrics))
	for _, metric := range report.Metrics {
		metrics = append(metrics, []interface{}{string(metric.Metric), metric.Value})
	}

	frequencies := make([][]interface{}, 0, len(report.Frequencies))
	for _, wc := range report.Frequencies {
		frequencies = append(frequencies, []interface{}{wc.Word, wc.Count})
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{SheetAuthors, []interface{}{"Author"}, authors},
		{SheetSignificantCommits, []interface{}{"SHA", "Message"}, significant},
		{SheetMetrics, []interface{}{"Metric", "Value"}, metrics},
		{SheetWordFrequency, []interface{}{"Word", "Count"}, frequencies},
	}

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			f.Close()
			return nil, err
		}
		if err := s.writeSheet(f, sheet.name, sheet.header, sheet.rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func (s *ReportService) writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}

	return nil
}
