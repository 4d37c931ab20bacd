package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// AnalyticsRun records one analytics request: which computation ran over
// which window, how many commits it read and how it ended.
type AnalyticsRun struct {
	ID           string    `json:"id"`
	Endpoint     string    `json:"endpoint"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	MetricType   *string   `json:"metric_type"`
	Author       *string   `json:"author"`
	CommitCount  int       `json:"commit_count"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"error_message"`
	DurationMs   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAnalyticsRun creates a new AnalyticsRun with a generated UUID
func NewAnalyticsRun(endpoint, from, to string) *AnalyticsRun {
	return &AnalyticsRun{
		ID:        uuid.New().String(),
		Endpoint:  endpoint,
		From:      from,
		To:        to,
		Status:    RunStatusSucceeded,
		CreatedAt: time.Now().UTC(),
	}
}

// MarkFailed records the error that ended the run
func (r *AnalyticsRun) MarkFailed(err error) {
	message := err.Error()
	r.Status = RunStatusFailed
	r.ErrorMessage = &message
}
