package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/naudiz/internal/memoservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *memoservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Documents.
	r.Get("/documents", h.ListDocuments)

	// Groups and their closures. Tags are URL-escaped path parameters.
	r.Get("/groups", h.ListGroups)
	r.Get("/groups/{tag}", h.GetGroup)
	r.Delete("/groups/{tag}", h.RemoveGroup)
	r.Post("/groups/{tag}/notes", h.AddNote)
	r.Put("/groups/{tag}/note", h.UpdateSingleNote)
	r.Delete("/groups/{tag}/notes/{index}", h.DeleteNote)
	r.Put("/groups/{tag}/mode", h.SetMode)
	r.Post("/groups/{tag}/aliases", h.AddAlias)
	r.Delete("/groups/{tag}/aliases/{alias}", h.RemoveAlias)

	// Export.
	r.Post("/export", h.Export)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
