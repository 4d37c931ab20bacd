package services

import (
	"testing"

	"github.com/alimgiray/gscope-analytics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportServiceBuildWorkbook(t *testing.T) {
	report := &models.AnalyticsReport{
		Window:      models.QueryWindow{From: "2025-07-01T00:00:00Z", To: "2025-07-31T00:00:00Z"},
		CommitCount: 3,
		Authors:     []string{"alice", "bob@example.com"},
		SignificantCommits: []models.SignificantCommit{
			{SHA: "abc123", Message: "Vendor dependencies"},
		},
		Metrics: []models.MetricResult{
			{Metric: models.MetricCommits, Value: 3},
			{Metric: models.MetricAdditions, Value: 16},
		},
		Frequencies: models.FrequencyTable{
			{Word: "fix", Count: 2},
			{Word: "parser", Count: 1},
		},
	}

	f, err := NewReportService().BuildWorkbook(report)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetAuthors, SheetSignificantCommits, SheetMetrics, SheetWordFrequency}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Field", "Value"},
		{"From", "2025-07-01T00:00:00Z"},
		{"To", "2025-07-31T00:00:00Z"},
		{"Commits", "3"},
	}, summary)

	authors, err := f.GetRows(SheetAuthors)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Author"}, {"alice"}, {"bob@example.com"}}, authors)

	significant, err := f.GetRows(SheetSignificantCommits)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"SHA", "Message"}, {"abc123", "Vendor dependencies"}}, significant)

	metrics, err := f.GetRows(SheetMetrics)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Metric", "Value"}, {"commits", "3"}, {"additions", "16"}}, metrics)

	words, err := f.GetRows(SheetWordFrequency)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Word", "Count"}, {"fix", "2"}, {"parser", "1"}}, words)
}

func TestReportServiceEmptyReport(t *testing.T) {
	report := &models.AnalyticsReport{
		Window:             models.QueryWindow{From: "2025-07-01T00:00:00Z", To: "2025-07-31T00:00:00Z"},
		Authors:            []string{},
		SignificantCommits: []models.SignificantCommit{},
		Frequencies:        models.FrequencyTable{},
	}

	f, err := NewReportService().BuildWorkbook(report)
	require.NoError(t, err)
	defer f.Close()

	authors, err := f.GetRows(SheetAuthors)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Author"}}, authors)
}
