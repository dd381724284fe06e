package domain

import (
	"github.com/montanaflynn/stats"
)

// StarSummary describes how stars are spread across the loaded repositories.
type StarSummary struct {
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    int     `json:"max"`
}

// SummarizeStars computes the StarSummary for repos. An empty list yields the zero summary.
func SummarizeStars(repos []RepositoryView) StarSummary {
	if len(repos) == 0 {
		return StarSummary{}
	}
	counts := make([]int, 0, len(repos))
	for _, r := range repos {
		counts = append(counts, r.StarCount)
	}
	data := stats.LoadRawData(counts)

	summary := StarSummary{Total: SumStars(repos)}
	if mean, err := stats.Mean(data); err == nil {
		summary.Mean, _ = stats.Round(mean, 2)
	}
	if median, err := stats.Median(data); err == nil {
		summary.Median = median
	}
	if max, err := stats.Max(data); err == nil {
		summary.Max = int(max)
	}
	return summary
}
