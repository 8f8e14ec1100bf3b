package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/reeloomstudios/postpilot/internal/analytics"
	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
	"github.com/reeloomstudios/postpilot/internal/schedule"
)

// DraftGenerator runs the content pipeline and persists the result.
type DraftGenerator interface {
	Generate(ctx context.Context, rawInput string) (*domain.Draft, error)
	Regenerate(ctx context.Context, draftID int64) (*domain.Draft, error)
}

// PublishOrchestrator decides, publishes or schedules.
type PublishOrchestrator interface {
	Publish(ctx context.Context, draftID, accountID int64, override *time.Time) (schedule.PublishResult, error)
}

// Dashboard serves the analytics aggregate.
type Dashboard interface {
	DashboardSummary(ctx context.Context) (*analytics.Summary, error)
}

// OAuth covers the LinkedIn connect flow.
type OAuth interface {
	AuthorizationURL(state string, accountType domain.AccountType) string
	ExchangeCode(ctx context.Context, code string, accountType domain.AccountType, displayName string) (*domain.Account, error)
}

// App carries every dependency the HTTP handlers need.
type App struct {
	Config    *infra.Config
	Logger    infra.Logger
	Drafts    domain.DraftRepository
	Schedules domain.ScheduleRepository
	History   domain.HistoryRepository
	Accounts  domain.AccountRepository
	Generator DraftGenerator
	Publisher PublishOrchestrator
	Analytics Dashboard
	Images    domain.ImageGenerator
	LinkedIn  OAuth
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

// domainError maps the shared error taxonomy onto HTTP responses.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrConfiguration):
		a.error(w, http.StatusInternalServerError, "configuration", "service is not configured")
	case errors.Is(err, domain.ErrProviderUnavailable):
		a.error(w, http.StatusServiceUnavailable, "provider_unavailable", "upstream provider unavailable, try again")
	case errors.Is(err, domain.ErrGenerationFailed):
		a.error(w, http.StatusBadGateway, "generation_failed", "content generation failed")
	default:
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
