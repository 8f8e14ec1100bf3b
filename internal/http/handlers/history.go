package handlers

import (
	"net/http"
	"time"
)

type historyResponse struct {
	ID             int64     `json:"id"`
	AccountID      int64     `json:"account_id"`
	ContentText    string    `json:"content_text"`
	ExternalPostID string    `json:"external_post_id"`
	Impressions    *int      `json:"impressions"`
	EngagementRate *float64  `json:"engagement_rate"`
	PublishedAt    time.Time `json:"published_at"`
}

// ListHistory returns recent publish attempts, best performing first.
func (a *App) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	rows, err := a.History.ListRecent(r.Context(), limit)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]historyResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, historyResponse{
			ID:             row.ID,
			AccountID:      row.AccountID,
			ContentText:    row.ContentText,
			ExternalPostID: row.ExternalPostID,
			Impressions:    row.Impressions,
			EngagementRate: row.EngagementRate,
			PublishedAt:    row.PublishedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// AnalyticsSummary serves the dashboard aggregate.
func (a *App) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Analytics.DashboardSummary(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, summary)
}
