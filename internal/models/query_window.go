package models

// MetricType selects the aggregate computed by the commit metrics endpoint
type MetricType string

const (
	MetricCommits      MetricType = "commits"
	MetricAdditions    MetricType = "additions"
	MetricDeletions    MetricType = "deletions"
	MetricTotalChanges MetricType = "total_changes"
)

// MetricTypes lists every supported metric in presentation order
var MetricTypes = []MetricType{MetricCommits, MetricAdditions, MetricDeletions, MetricTotalChanges}

// AnalyticsParams holds the raw, unvalidated request parameters
type AnalyticsParams struct {
	From       string
	To         string
	MetricType string
	Author     string
}

// QueryWindow is the validated form of AnalyticsParams. From and To are
// ISO-8601 instants suitable for the GitTimestamp GraphQL scalar.
type QueryWindow struct {
	From         string
	To           string
	MetricType   MetricType
	AuthorFilter string
}

// HasAuthorFilter reports whether results should be restricted to one author
func (w *QueryWindow) HasAuthorFilter() bool {
	return w.AuthorFilter != ""
}
