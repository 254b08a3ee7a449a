package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/torvik/membank/internal/docservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *docservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Documents (read-only).
	r.Get("/docs", h.ListDocs)
	r.Get("/docs/*", h.GetDoc)

	// Search: cached full-text and direct line scan.
	r.Get("/search", h.Search)
	r.Get("/grep", h.Grep)

	// Categories and trees.
	r.Get("/categories", h.Categories)
	r.Get("/categories/{name}/tree", h.Tree)

	// JSON snapshot rebuild.
	r.Post("/index/rebuild", h.RebuildIndex)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
