package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/alimgiray/gscope-analytics/internal/models"
)

const calendarDateLayout = "2006-01-02"

// Layouts accepted for inputs that already carry a time component
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// NormalizeDate turns a bare calendar date into midnight UTC in ISO-8601
// form. Input that already contains a "T" is returned unchanged once it is
// known to parse as an instant.
func NormalizeDate(raw string) (string, error) {
	if strings.Contains(raw, "T") {
		for _, layout := range instantLayouts {
			if _, err := time.Parse(layout, raw); err == nil {
				return raw, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}

	date, err := time.Parse(calendarDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	return date.UTC().Format(time.RFC3339), nil
}

// NormalizeMetricType lowercases raw and checks it against the supported metrics
func NormalizeMetricType(raw string) (models.MetricType, error) {
	metric := models.MetricType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range models.MetricTypes {
		if metric == known {
			return metric, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMetricType, raw)
}

// BuildQueryWindow validates params. withMetric is set only for the metrics
// computation, the others ignore metric_type and author.
func BuildQueryWindow(params models.AnalyticsParams, withMetric bool) (*models.QueryWindow, error) {
	from, err := NormalizeDate(params.From)
	if err != nil {
		return nil, err
	}
	to, err := NormalizeDate(params.To)
	if err != nil {
		return nil, err
	}

	window := &models.QueryWindow{From: from, To: to}
	if !withMetric {
		return window, nil
	}

	window.MetricType, err = NormalizeMetricType(params.MetricType)
	if err != nil {
		return nil, err
	}
	window.AuthorFilter = strings.TrimSpace(params.Author)

	return window, nil
}
