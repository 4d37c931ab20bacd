package handlers

import (
	"fmt"
	"net/http"

	"github.com/alimgiray/gscope-analytics/internal/models"
	"github.com/alimgiray/gscope-analytics/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsHandler struct {
	analyticsService    *services.AnalyticsService
	analyticsRunService *services.AnalyticsRunService
	reportService       *services.ReportService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, analyticsRunService *services.AnalyticsRunService,
	reportService *services.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService:    analyticsService,
		analyticsRunService: analyticsRunService,
		reportService:       reportService,
	}
}

type analyticsQuery struct {
	From       string `form:"from" binding:"required"`
	To         string `form:"to" binding:"required"`
	MetricType string `form:"metric_type"`
	Author     string `form:"author"`
}

type runsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// bindParams reads the query string; on failure the error response is already written
func (h *AnalyticsHandler) bindParams(c *gin.Context) (models.AnalyticsParams, bool) {
	var query analyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return models.AnalyticsParams{}, false
	}

	return models.AnalyticsParams{
		From:       query.From,
		To:         query.To,
		MetricType: query.MetricType,
		Author:     query.Author,
	}, true
}

// UniqueAuthors handles GET /api/v1/github/analytics/unique_authors
func (h *AnalyticsHandler) UniqueAuthors(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.UniqueAuthors(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SignificantCommits handles GET /api/v1/github/analytics/significant_commits
func (h *AnalyticsHandler) SignificantCommits(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.SignificantCommits(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CommitMetrics handles GET /api/v1/github/analytics/commit_metrics
func (h *AnalyticsHandler) CommitMetrics(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.CommitMetrics(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// MessageWordFrequency handles GET /api/v1/github/analytics/message_word_frequency
func (h *AnalyticsHandler) MessageWordFrequency(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.MessageWordFrequency(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Report handles GET /api/v1/github/analytics/report and returns an xlsx workbook
func (h *AnalyticsHandler) Report(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	report, err := h.analyticsService.Report(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := h.reportService.BuildWorkbook(report)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="commit-analytics.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ListRuns handles GET /api/v1/github/analytics/runs
func (h *AnalyticsHandler) ListRuns(c *gin.Context) {
	var query runsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	runs, err := h.analyticsRunService.ListRecent(query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
