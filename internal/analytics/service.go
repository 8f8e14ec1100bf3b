package analytics

import (
	"context"
	"time"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
)

const historyWindow = 100

// Service computes analytics over the published-post record. As the insight
// provider for the pipeline it returns errors to the caller, but the insight
// stage degrades those to an empty summary rather than aborting.
type Service struct {
	history domain.HistoryRepository
	logger  infra.Logger
}

func NewService(history domain.HistoryRepository, logger infra.Logger) *Service {
	return &Service{history: history, logger: logger}
}

var _ domain.InsightProvider = (*Service)(nil)

// PerformanceInsights reduces recent history into the pipeline summary.
func (s *Service) PerformanceInsights(ctx context.Context) (domain.PerformanceSummary, error) {
	rows, err := s.history.ListRecent(ctx, historyWindow)
	if err != nil {
		return domain.PerformanceSummary{}, err
	}
	return reduceInsights(rows), nil
}

// TopPost is one row of the dashboard's best-performing list.
type TopPost struct {
	ID             int64      `json:"id"`
	ContentPreview string     `json:"content_preview"`
	Impressions    *int       `json:"impressions"`
	EngagementRate *float64   `json:"engagement_rate"`
	PublishedAt    *time.Time `json:"published_at"`
}

// Summary is the dashboard aggregate over the whole record.
type Summary struct {
	TotalPosts        int       `json:"total_posts"`
	TotalImpressions  int64     `json:"total_impressions"`
	AvgEngagementRate float64   `json:"avg_engagement_rate"`
	BestDays          []string  `json:"best_days"`
	BestTimes         []string  `json:"best_times"`
	TopPosts          []TopPost `json:"top_posts"`
}

// DashboardSummary builds the dashboard aggregate: totals over everything,
// best buckets and top posts over the recent window.
func (s *Service) DashboardSummary(ctx context.Context) (*Summary, error) {
	totals, err := s.history.Totals(ctx)
	if err != nil {
		return nil, err
	}
	out := &Summary{
		TotalPosts:        totals.TotalPosts,
		TotalImpressions:  totals.TotalImpressions,
		AvgEngagementRate: totals.AvgEngagementRate,
		BestDays:          []string{},
		BestTimes:         []string{},
		TopPosts:          []TopPost{},
	}
	if totals.TotalPosts == 0 {
		return out, nil
	}

	rows, err := s.history.ListRecent(ctx, historyWindow)
	if err != nil {
		return nil, err
	}
	reduced := reduceInsights(rows)
	out.BestDays = reduced.BestDays
	out.BestTimes = reduced.BestTimeWindows

	for i, row := range rows {
		if i == 10 {
			break
		}
		preview := row.ContentText
		if runes := []rune(preview); len(runes) > 200 {
			preview = string(runes[:200])
		}
		publishedAt := row.PublishedAt
		out.TopPosts = append(out.TopPosts, TopPost{
			ID:             row.ID,
			ContentPreview: preview,
			Impressions:    row.Impressions,
			EngagementRate: row.EngagementRate,
			PublishedAt:    &publishedAt,
		})
	}
	return out, nil
}
