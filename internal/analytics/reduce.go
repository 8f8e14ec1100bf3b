// Package analytics reduces post history into the performance summary that
// feeds the content pipeline and the scheduling decision.
package analytics

import (
	"fmt"
	"sort"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

const (
	topBuckets = 5

	idealLengthHint = "150-300 words for body; hook under 2 lines"
	hookPattern     = "Strong opening line; question or stat or story"
)

// reduceInsights folds history rows into best days and best hour windows.
// Each row's weekday and hour slot is weighted by its impressions, with a
// floor of one so zero-metric posts still count as signal. Ties break on
// bucket name to keep the output deterministic.
func reduceInsights(rows []domain.PostHistory) domain.PerformanceSummary {
	if len(rows) == 0 {
		return domain.PerformanceSummary{}
	}

	dayWeights := make(map[string]int)
	slotWeights := make(map[string]int)
	for _, row := range rows {
		if row.PublishedAt.IsZero() {
			continue
		}
		weight := 1
		if row.Impressions != nil && *row.Impressions > 0 {
			weight = *row.Impressions
		}
		dayWeights[row.PublishedAt.Weekday().String()] += weight
		hour := row.PublishedAt.Hour()
		slot := fmt.Sprintf("%02d:00-%02d:00", hour, (hour+1)%24)
		slotWeights[slot] += weight
	}

	return domain.PerformanceSummary{
		BestDays:        topKeys(dayWeights, topBuckets),
		BestTimeWindows: topKeys(slotWeights, topBuckets),
		IdealLength:     idealLengthHint,
		HookPattern:     hookPattern,
	}
}

func topKeys(weights map[string]int, n int) []string {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if weights[keys[i]] != weights[keys[j]] {
			return weights[keys[i]] > weights[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
