package services

import "errors"

var (
	// ErrInvalidDateFormat is returned when from/to is neither a calendar date nor an ISO-8601 instant
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidMetricType is returned for a metric_type outside commits|additions|deletions|total_changes
	ErrInvalidMetricType = errors.New("invalid metric_type")

	ErrUpstreamTransport = errors.New("github graphql request failed")
	ErrUpstreamTimeout   = errors.New("github graphql request timed out")
	// ErrUpstreamDataShape is returned when a response lacks a field the paginator must read
	ErrUpstreamDataShape = errors.New("unexpected github graphql response")
)
