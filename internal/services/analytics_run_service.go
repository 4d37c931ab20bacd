package services

import (
	"github.com/alimgiray/gscope-analytics/internal/models"
	"github.com/alimgiray/gscope-analytics/internal/repositories"
)

const (
	DefaultRunListLimit = 20
	MaxRunListLimit     = 200
)

type AnalyticsRunService struct {
	analyticsRunRepo *repositories.AnalyticsRunRepository
}

func NewAnalyticsRunService(analyticsRunRepo *repositories.AnalyticsRunRepository) *AnalyticsRunService {
	return &AnalyticsRunService{
		analyticsRunRepo: analyticsRunRepo,
	}
}

// Record stores a finished run
func (s *AnalyticsRunService) Record(run *models.AnalyticsRun) error {
	return s.analyticsRunRepo.Create(run)
}

// ListRecent returns the newest runs. A limit of zero means DefaultRunListLimit
// and anything above MaxRunListLimit is capped.
func (s *AnalyticsRunService) ListRecent(limit int) ([]*models.AnalyticsRun, error) {
	if limit <= 0 {
		limit = DefaultRunListLimit
	}
	if limit > MaxRunListLimit {
		limit = MaxRunListLimit
	}
	return s.analyticsRunRepo.ListRecent(limit)
}
