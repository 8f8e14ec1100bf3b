package httpapi

import (
	stdhttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/reeloomstudios/postpilot/internal/http/handlers"
	"github.com/reeloomstudios/postpilot/internal/middleware"
)

func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(middleware.Logger(app.Logger))

	r.Get("/healthz", app.Health)

	r.Post("/generate", app.Generate)

	r.Route("/drafts", func(r chi.Router) {
		r.Get("/", app.ListDrafts)
		r.Get("/{id}", app.GetDraft)
		r.Patch("/{id}", app.UpdateDraft)
		r.Post("/{id}/regenerate", app.RegenerateDraft)
		r.Post("/{id}/image", app.GenerateDraftImage)
	})

	r.Post("/publish", app.Publish)
	r.Get("/scheduled", app.ListScheduled)

	r.Get("/history", app.ListHistory)
	r.Get("/analytics/summary", app.AnalyticsSummary)

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", app.ListAccounts)
		r.Get("/auth/linkedin", app.LinkedInAuthStart)
		r.Get("/auth/linkedin/callback", app.LinkedInAuthCallback)
	})

	// Generated images are served straight off the local file store.
	if app.Config != nil && app.Config.StorageDir != "" {
		prefix := strings.TrimSuffix(app.Config.StorageBaseURL, "/")
		fs := stdhttp.StripPrefix(prefix, stdhttp.FileServer(stdhttp.Dir(app.Config.StorageDir)))
		r.Get(prefix+"/*", fs.ServeHTTP)
	}

	return r
}
