// Package analytics aggregates visitor search events reported by the FAQ
// pages and flushes per-query counts to the database.
package analytics

import (
	"math"
	"sort"
	"strings"

	"tutorsite/internal/models"
)

// TopQueryLimit bounds the number of top queries in a summary.
const TopQueryLimit = 10

// Summarize aggregates events without retaining any state.
func Summarize(events []models.SearchEvent) models.SearchSummary {
	summary := models.SearchSummary{TopQueries: []models.QueryCount{}}
	if len(events) == 0 {
		return summary
	}

	times := make([]float64, 0, len(events))
	counts := make(map[string]int)
	var order []string
	var total float64
	var zero, selected int

	for _, e := range events {
		times = append(times, e.ExecutionTime)
		total += e.ExecutionTime
		if e.ResultCount == 0 {
			zero++
		}
		if e.SelectedID != "" {
			selected++
		}
		q := strings.ToLower(strings.TrimSpace(e.Query))
		if q == "" {
			continue
		}
		if _, ok := counts[q]; !ok {
			order = append(order, q)
		}
		counts[q]++
	}

	sort.Float64s(times)
	n := float64(len(events))

	summary.Count = len(events)
	summary.AvgExecutionMs = round2(total / n)
	summary.MinExecutionMs = times[0]
	summary.MaxExecutionMs = times[len(times)-1]
	summary.P95ExecutionMs = percentile(times, 0.95)
	summary.ZeroResultRatio = round2(float64(zero) / n)
	summary.SelectionRatio = round2(float64(selected) / n)
	summary.TopQueries = topQueries(order, counts, TopQueryLimit)
	return summary
}

// percentile uses the nearest-rank method over sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// topQueries orders by count, then first appearance.
func topQueries(order []string, counts map[string]int, limit int) []models.QueryCount {
	top := make([]models.QueryCount, 0, len(order))
	for _, q := range order {
		top = append(top, models.QueryCount{Query: q, Count: counts[q]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
