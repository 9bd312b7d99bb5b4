package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/naudiz/internal/apperr"
	"github.com/starford/naudiz/internal/memoservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *memoservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *memoservice.Service) *Handler {
	return &Handler{svc: svc}
}

// scopeFromQuery builds the document scope from query parameters. All group
// routes accept document_id, identity, identity_type, and locator; when none
// is present the operation falls through to the active/global context.
func scopeFromQuery(r *http.Request) memoservice.Scope {
	q := r.URL.Query()
	id, _ := strconv.ParseInt(q.Get("document_id"), 10, 64)
	return memoservice.Scope{
		DocumentID:   id,
		Identity:     q.Get("identity"),
		IdentityType: q.Get("identity_type"),
		Locator:      q.Get("locator"),
	}
}

// tagParam extracts the URL-escaped tag path parameter.
func tagParam(r *http.Request) string {
	raw := chi.URLParam(r, "tag")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// writeErr maps service errors onto HTTP statuses.
func writeErr(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody("invalid input"))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("conflict"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListDocuments handles GET /api/documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListDocuments(r.Context())
	if err != nil {
		writeErr(w, "list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentListResponse{Documents: docs})
}

// ListGroups handles GET /api/groups.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ListGroups(r.Context(), scopeFromQuery(r), r.URL.Query().Get("q"))
	if err != nil {
		writeErr(w, "list groups", err)
		return
	}
	writeJSON(w, http.StatusOK, GroupListResponse{Groups: groups})
}

// GetGroup handles GET /api/groups/{tag}.
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetGroupDetail(r.Context(), tagParam(r), scopeFromQuery(r))
	if err != nil {
		writeErr(w, "get group", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// RemoveGroup handles DELETE /api/groups/{tag}.
func (h *Handler) RemoveGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveGroup(r.Context(), tagParam(r), scopeFromQuery(r)); err != nil {
		writeErr(w, "remove group", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddNote handles POST /api/groups/{tag}/notes.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	g, noteID, err := h.svc.AddNote(r.Context(), tagParam(r), req.Text, req.InitialAlias, scopeFromQuery(r))
	if err != nil {
		writeErr(w, "add note", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"group":   g,
		"note_id": noteID,
	})
}

// UpdateSingleNote handles PUT /api/groups/{tag}/note.
func (h *Handler) UpdateSingleNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.UpdateSingleNote(r.Context(), tagParam(r), req.Text, scopeFromQuery(r)); err != nil {
		writeErr(w, "update note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteNote handles DELETE /api/groups/{tag}/notes/{index}.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 1 {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be a positive integer"))
		return
	}
	if err := h.svc.DeleteNote(r.Context(), tagParam(r), index, scopeFromQuery(r)); err != nil {
		writeErr(w, "delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetMode handles PUT /api/groups/{tag}/mode.
func (h *Handler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req SetModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.SetMultiNoteMode(r.Context(), tagParam(r), req.MultiNoteMode, scopeFromQuery(r)); err != nil {
		writeErr(w, "set mode", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddAlias handles POST /api/groups/{tag}/aliases.
func (h *Handler) AddAlias(w http.ResponseWriter, r *http.Request) {
	var req AddAliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.AddAlias(r.Context(), tagParam(r), req.Alias, scopeFromQuery(r)); err != nil {
		writeErr(w, "add alias", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// RemoveAlias handles DELETE /api/groups/{tag}/aliases/{alias}.
func (h *Handler) RemoveAlias(w http.ResponseWriter, r *http.Request) {
	alias, err := url.PathUnescape(chi.URLParam(r, "alias"))
	if err != nil {
		alias = chi.URLParam(r, "alias")
	}
	if err := h.svc.RemoveAlias(r.Context(), tagParam(r), alias, scopeFromQuery(r)); err != nil {
		writeErr(w, "remove alias", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles POST /api/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
			return
		}
	}
	path, err := h.svc.ExportTo(r.Context(), req.Path, scopeFromQuery(r))
	if err != nil {
		writeErr(w, "export", err)
		return
	}
	writeJSON(w, http.StatusOK, ExportResponse{Path: path})
}
