package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/reeloomstudios/postpilot/internal/schedule"
)

type publishRequest struct {
	DraftID       int64  `json:"draft_id"`
	AccountID     int64  `json:"account_id"`
	ScheduledTime string `json:"scheduled_time"`
}

type publishResponse struct {
	Status          schedule.PublishStatus `json:"status"`
	ExternalPostID  string                 `json:"external_post_id,omitempty"`
	ScheduledPostID int64                  `json:"scheduled_post_id,omitempty"`
	ScheduledAt     *time.Time             `json:"scheduled_at,omitempty"`
}

// Publish hands a draft to the orchestrator. An explicit scheduled_time
// overrides the decision engine; a past or current timestamp publishes now.
func (a *App) Publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.DraftID <= 0 || req.AccountID <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "draft_id and account_id are required")
		return
	}

	var override *time.Time
	if req.ScheduledTime != "" {
		at, err := time.Parse(time.RFC3339, req.ScheduledTime)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "scheduled_time must be RFC3339")
			return
		}
		override = &at
	}

	result, err := a.Publisher.Publish(r.Context(), req.DraftID, req.AccountID, override)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, publishResponse{
		Status:          result.Status,
		ExternalPostID:  result.ExternalPostID,
		ScheduledPostID: result.ScheduledPostID,
		ScheduledAt:     result.ScheduledAt,
	})
}

type scheduledPostResponse struct {
	ID          int64     `json:"id"`
	DraftID     int64     `json:"draft_id"`
	AccountID   int64     `json:"account_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListScheduled returns the posts still waiting on their timer.
func (a *App) ListScheduled(w http.ResponseWriter, r *http.Request) {
	pending, err := a.Schedules.ListPending(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]scheduledPostResponse, 0, len(pending))
	for _, p := range pending {
		items = append(items, scheduledPostResponse{
			ID:          p.ID,
			DraftID:     p.DraftID,
			AccountID:   p.AccountID,
			ScheduledAt: p.ScheduledAt,
			Status:      string(p.Status),
			CreatedAt:   p.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
