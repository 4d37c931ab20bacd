package services

import (
	"context"
	"time"

	"github.com/alimgiray/gscope-analytics/internal/models"
	"github.com/alimgiray/gscope-analytics/pkg/logger"
	"github.com/sirupsen/logrus"
)

const (
	EndpointUniqueAuthors        = "unique_authors"
	EndpointSignificantCommits   = "significant_commits"
	EndpointCommitMetrics        = "commit_metrics"
	EndpointMessageWordFrequency = "message_word_frequency"
	EndpointReport               = "report"
)

// RunRecorder stores the outcome of an analytics request
type RunRecorder interface {
	Record(run *models.AnalyticsRun) error
}

// AnalyticsService validates a request, fetches the commit history for its
// window and runs one computation over it. Nothing is cached between calls.
type AnalyticsService struct {
	commits CommitFetcher
	runs    RunRecorder
}

// NewAnalyticsService creates the service. runs may be nil to skip run history.
func NewAnalyticsService(commits CommitFetcher, runs RunRecorder) *AnalyticsService {
	return &AnalyticsService{
		commits: commits,
		runs:    runs,
	}
}

func (s *AnalyticsService) UniqueAuthors(ctx context.Context, params models.AnalyticsParams) (*models.UniqueAuthorsResult, error) {
	_, commits, err := s.load(ctx, EndpointUniqueAuthors, params, false)
	if err != nil {
		return nil, err
	}
	return &models.UniqueAuthorsResult{Authors: UniqueAuthors(commits)}, nil
}

func (s *AnalyticsService) SignificantCommits(ctx context.Context, params models.AnalyticsParams) (*models.SignificantCommitsResult, error) {
	_, commits, err := s.load(ctx, EndpointSignificantCommits, params, false)
	if err != nil {
		return nil, err
	}
	return &models.SignificantCommitsResult{Commits: SignificantCommits(commits)}, nil
}

// CommitMetrics validates metric_type before any commit is fetched
func (s *AnalyticsService) CommitMetrics(ctx context.Context, params models.AnalyticsParams) (*models.MetricResult, error) {
	window, commits, err := s.load(ctx, EndpointCommitMetrics, params, true)
	if err != nil {
		return nil, err
	}
	return &models.MetricResult{
		Metric: window.MetricType,
		Value:  CommitMetric(commits, window.MetricType, window.AuthorFilter),
	}, nil
}

func (s *AnalyticsService) MessageWordFrequency(ctx context.Context, params models.AnalyticsParams) (*models.WordFrequencyResult, error) {
	_, commits, err := s.load(ctx, EndpointMessageWordFrequency, params, false)
	if err != nil {
		return nil, err
	}
	return &models.WordFrequencyResult{Frequencies: WordFrequencies(commits)}, nil
}

// Report runs every computation over a single fetch. Metrics are computed
// for all metric types over all authors.
func (s *AnalyticsService) Report(ctx context.Context, params models.AnalyticsParams) (*models.AnalyticsReport, error) {
	window, commits, err := s.load(ctx, EndpointReport, params, false)
	if err != nil {
		return nil, err
	}

	metrics := make([]models.MetricResult, 0, len(models.MetricTypes))
	for _, metric := range models.MetricTypes {
		metrics = append(metrics, models.MetricResult{
			Metric: metric,
			Value:  CommitMetric(commits, metric, ""),
		})
	}

	return &models.AnalyticsReport{
		Window:             *window,
		CommitCount:        len(commits),
		Authors:            UniqueAuthors(commits),
		SignificantCommits: SignificantCommits(commits),
		Metrics:            metrics,
		Frequencies:        WordFrequencies(commits),
	}, nil
}

// load normalizes params and fetches the commits, recording the run either way
func (s *AnalyticsService) load(ctx context.Context, endpoint string, params models.AnalyticsParams, withMetric bool) (*models.QueryWindow, []models.CommitRecord, error) {
	started := time.Now()
	run := models.NewAnalyticsRun(endpoint, params.From, params.To)

	window, err := BuildQueryWindow(params, withMetric)
	var commits []models.CommitRecord
	if err == nil {
		run.From, run.To = window.From, window.To
		if withMetric {
			metric := string(window.MetricType)
			run.MetricType = &metric
			if window.HasAuthorFilter() {
				author := window.AuthorFilter
				run.Author = &author
			}
		}
		commits, err = s.commits.FetchAll(ctx, window)
	}

	run.CommitCount = len(commits)
	run.DurationMs = time.Since(started).Milliseconds()
	if err != nil {
		run.MarkFailed(err)
	}
	s.record(run)

	return window, commits, err
}

func (s *AnalyticsService) record(run *models.AnalyticsRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Record(run); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"run_id":   run.ID,
			"endpoint": run.Endpoint,
		}).Warn("Failed to record analytics run")
	}
}
