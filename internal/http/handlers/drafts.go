package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

type generateRequest struct {
	Input string `json:"input"`
}

type draftResponse struct {
	ID              int64                     `json:"id"`
	Hook            string                    `json:"hook"`
	Body            string                    `json:"body"`
	CTA             string                    `json:"cta"`
	Hashtags        string                    `json:"hashtags"`
	SuggestedVisual string                    `json:"suggested_visual"`
	ImagePath       string                    `json:"image_path,omitempty"`
	FullText        string                    `json:"full_text"`
	Summary         domain.PerformanceSummary `json:"performance_summary"`
	Strategy        domain.Strategy           `json:"strategy"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

func toDraftResponse(d *domain.Draft) draftResponse {
	return draftResponse{
		ID:              d.ID,
		Hook:            d.Hook,
		Body:            d.Body,
		CTA:             d.CTA,
		Hashtags:        d.Hashtags,
		SuggestedVisual: d.SuggestedVisual,
		ImagePath:       d.ImagePath,
		FullText:        d.FullText(),
		Summary:         d.Summary,
		Strategy:        d.Strategy,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// Generate runs the full pipeline over optional caller input and returns the
// persisted draft for review.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.Body != nil {
		// An empty body means "generate from analytics alone".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	draft, err := a.Generator.Generate(r.Context(), req.Input)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toDraftResponse(draft))
}

func (a *App) ListDrafts(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	drafts, err := a.Drafts.List(r.Context(), limit)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]draftResponse, 0, len(drafts))
	for i := range drafts {
		items = append(items, toDraftResponse(&drafts[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) GetDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, "id")
	if !ok {
		return
	}
	draft, err := a.Drafts.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toDraftResponse(draft))
}

type draftEditRequest struct {
	Hook     *string `json:"hook"`
	Body     *string `json:"body"`
	CTA      *string `json:"cta"`
	Hashtags *string `json:"hashtags"`
}

// UpdateDraft applies review-step edits. Absent fields stay untouched.
func (a *App) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, "id")
	if !ok {
		return
	}
	var req draftEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	draft, err := a.Drafts.Update(r.Context(), id, domain.DraftEdit{
		Hook:     req.Hook,
		Body:     req.Body,
		CTA:      req.CTA,
		Hashtags: req.Hashtags,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toDraftResponse(draft))
}

// RegenerateDraft produces a fresh draft seeded with an existing one.
func (a *App) RegenerateDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, "id")
	if !ok {
		return
	}
	draft, err := a.Generator.Regenerate(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toDraftResponse(draft))
}

// GenerateDraftImage renders an illustration for a draft. A render failure is
// reported in the payload, not as an HTTP error.
func (a *App) GenerateDraftImage(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, "id")
	if !ok {
		return
	}
	draft, err := a.Drafts.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}

	path, userMessage, err := a.Images.GenerateImage(r.Context(), draft.Hook, draft.Body, draft.SuggestedVisual)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if path == "" {
		a.json(w, http.StatusOK, map[string]string{"image_path": "", "message": userMessage})
		return
	}
	if err := a.Drafts.SetImagePath(r.Context(), id, path); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"image_path": path})
}

func (a *App) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
