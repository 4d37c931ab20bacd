package models

import (
	"bytes"
	"encoding/json"
)

type UniqueAuthorsResult struct {
	Authors []string `json:"authors"`
}

// SignificantCommit is a commit whose change size is a statistical outlier
type SignificantCommit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

type SignificantCommitsResult struct {
	Commits []SignificantCommit `json:"commits"`
}

// MetricResult is a single scalar keyed by its metric name, e.g. {"additions": 42}
type MetricResult struct {
	Metric MetricType
	Value  int
}

func (r MetricResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]int{string(r.Metric): r.Value})
}

type WordCount struct {
	Word  string
	Count int
}

// FrequencyTable is a word count list ordered by descending count. It is
// encoded as a JSON object whose keys keep that order.
type FrequencyTable []WordCount

func (t FrequencyTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, wc := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(wc.Word)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(wc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the count for word, or zero when it is absent
func (t FrequencyTable) Get(word string) int {
	for _, wc := range t {
		if wc.Word == word {
			return wc.Count
		}
	}
	return 0
}

type WordFrequencyResult struct {
	Frequencies FrequencyTable `json:"frequencies"`
}

// AnalyticsReport bundles every computation over one commit list
type AnalyticsReport struct {
	Window             QueryWindow
	CommitCount        int
	Authors            []string
	SignificantCommits []SignificantCommit
	Metrics            []MetricResult
	Frequencies        FrequencyTable
}
