package services

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/alimgiray/gscope-analytics/internal/models"
)

// SignificanceThreshold is the |z-score| a commit's change size must exceed
const SignificanceThreshold = 2.0

var wordPattern = regexp.MustCompile(`[a-z]{2,}`)

var stopWords = map[string]struct{}{}

func init() {
	for _, word := range []string{
		"the", "a", "an", "and", "or", "of", "to", "in", "on", "at",
		"for", "with", "by", "from", "is", "are", "was", "be", "this", "that",
		"has", "have", "it", "as", "you", "your", "i", "we", "us", "our",
		"their", "them",
	} {
		stopWords[word] = struct{}{}
	}
}

// UniqueAuthors returns each resolved author identity once, in the order it
// first appears. Commits without login or email are skipped.
func UniqueAuthors(commits []models.CommitRecord) []string {
	authors := make([]string, 0)
	seen := make(map[string]struct{})

	for _, commit := range commits {
		identity, ok := commit.AuthorIdentity()
		if !ok {
			continue
		}
		if _, exists := seen[identity]; exists {
			continue
		}
		seen[identity] = struct{}{}
		authors = append(authors, identity)
	}

	return authors
}

// SignificantCommits returns commits whose additions+deletions lie more than
// SignificanceThreshold population standard deviations from the mean. When
// the standard deviation is zero every z-score is zero and nothing is returned.
func SignificantCommits(commits []models.CommitRecord) []models.SignificantCommit {
	significant := make([]models.SignificantCommit, 0)
	if len(commits) == 0 {
		return significant
	}

	mean, stddev := changeStatistics(commits)

	for _, commit := range commits {
		if math.Abs(zScore(float64(commit.TotalChanges()), mean, stddev)) > SignificanceThreshold {
			significant = append(significant, models.SignificantCommit{
				SHA:     commit.SHA,
				Message: commit.Message,
			})
		}
	}

	return significant
}

// changeStatistics returns the population mean and standard deviation of total changes
func changeStatistics(commits []models.CommitRecord) (mean, stddev float64) {
	n := float64(len(commits))

	var sum float64
	for _, commit := range commits {
		sum += float64(commit.TotalChanges())
	}
	mean = sum / n

	var squares float64
	for _, commit := range commits {
		diff := float64(commit.TotalChanges()) - mean
		squares += diff * diff
	}
	stddev = math.Sqrt(squares / n)

	return mean, stddev
}

func zScore(value, mean, stddev float64) float64 {
	if stddev == 0 {
		return 0
	}
	return (value - mean) / stddev
}

// CommitMetric aggregates the commits matching author (all commits when
// author is empty) into the single value selected by metric.
func CommitMetric(commits []models.CommitRecord, metric models.MetricType, author string) int {
	total := 0

	for _, commit := range commits {
		if author != "" {
			identity, ok := commit.AuthorIdentity()
			if !ok || identity != author {
				continue
			}
		}

		switch metric {
		case models.MetricCommits:
			total++
		case models.MetricAdditions:
			total += commit.Additions
		case models.MetricDeletions:
			total += commit.Deletions
		case models.MetricTotalChanges:
			total += commit.TotalChanges()
		}
	}

	return total
}

// WordFrequencies counts lowercase words of two or more ASCII letters across
// all commit messages, excluding stop words. The table is sorted by
// descending count; equal counts keep the order in which the word first appeared.
func WordFrequencies(commits []models.CommitRecord) models.FrequencyTable {
	messages := make([]string, 0, len(commits))
	for _, commit := range commits {
		messages = append(messages, commit.Message)
	}
	text := strings.ToLower(strings.Join(messages, " "))

	table := make(models.FrequencyTable, 0)
	index := make(map[string]int)

	for _, word := range wordPattern.FindAllString(text, -1) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		if i, ok := index[word]; ok {
			table[i].Count++
			continue
		}
		index[word] = len(table)
		table = append(table, models.WordCount{Word: word, Count: 1})
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Count > table[j].Count
	})

	return table
}
