package repositories

import (
	"database/sql"
	"sync"

	"github.com/alimgiray/gscope-analytics/internal/models"
)

// AnalyticsRunRepository handles database operations for analytics runs
type AnalyticsRunRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewAnalyticsRunRepository creates a new AnalyticsRunRepository
func NewAnalyticsRunRepository(db *sql.DB) *AnalyticsRunRepository {
	return &AnalyticsRunRepository{db: db}
}

// Create stores a finished run
func (r *AnalyticsRunRepository) Create(run *models.AnalyticsRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO analytics_runs (
			id, endpoint, window_from, window_to, metric_type, author,
			commit_count, status, error_message, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID, run.Endpoint, run.From, run.To, run.MetricType, run.Author,
		run.CommitCount, run.Status, run.ErrorMessage, run.DurationMs, run.CreatedAt,
	)

	return err
}

// GetByID retrieves a run by ID
func (r *AnalyticsRunRepository) GetByID(id string) (*models.AnalyticsRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, endpoint, window_from, window_to, metric_type, author,
			   commit_count, status, error_message, duration_ms, created_at
		FROM analytics_runs WHERE id = ?
	`

	run := &models.AnalyticsRun{}
	err := r.db.QueryRow(query, id).Scan(
		&run.ID, &run.Endpoint, &run.From, &run.To, &run.MetricType, &run.Author,
		&run.CommitCount, &run.Status, &run.ErrorMessage, &run.DurationMs, &run.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return run, nil
}

// ListRecent retrieves up to limit runs, newest first
func (r *AnalyticsRunRepository) ListRecent(limit int) ([]*models.AnalyticsRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, endpoint, window_from, window_to, metric_type, author,
			   commit_count, status, error_message, duration_ms, created_at
		FROM analytics_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*models.AnalyticsRun, 0)
	for rows.Next() {
		run := &models.AnalyticsRun{}
		err := rows.Scan(
			&run.ID, &run.Endpoint, &run.From, &run.To, &run.MetricType, &run.Author,
			&run.CommitCount, &run.Status, &run.ErrorMessage, &run.DurationMs, &run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
