package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"sellerkit/internal/http/handlers"
	"sellerkit/internal/middleware"
)

// NewRouter wires the API surface. The generated directory is served
// statically so saved assets are reachable at their public URLs.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Log),
		middleware.Locale("zh"),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/providers", app.Providers)

	r.Route("/v1/text", func(r chi.Router) {
		r.Post("/scan", app.ScanText)
		r.Post("/keywords", app.Keywords)
		r.Post("/selling-points", app.SellingPoints)
	})

	r.Post("/v1/prompts/compose", app.ComposePrompt)
	r.Post("/v1/layouts/detail-page", app.DetailPageLayout)
	r.Post("/v1/images/generate", app.GenerateImage)

	r.Route("/v1/templates", func(r chi.Router) {
		r.Post("/analyze", app.AnalyzeTemplate)
		r.Post("/compose", app.ComposeTemplate)
	})

	if app.Store != nil {
		fs := http.StripPrefix("/generated/", http.FileServer(http.Dir(app.Store.BasePath())))
		r.Get("/generated/*", fs.ServeHTTP)
	}

	return r
}
