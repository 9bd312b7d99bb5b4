package api

import (
	"github.com/starford/naudiz/internal/memoservice"
	"github.com/starford/naudiz/internal/models"
)

// AddNoteRequest is the request body for adding a note to a group.
type AddNoteRequest struct {
	Text         string `json:"text"`
	InitialAlias string `json:"initial_alias,omitempty"`
}

// UpdateNoteRequest is the request body for the single-note update.
type UpdateNoteRequest struct {
	Text string `json:"text"`
}

// SetModeRequest toggles a group's multi-note mode.
type SetModeRequest struct {
	MultiNoteMode bool `json:"multi_note_mode"`
}

// AddAliasRequest is the request body for registering an alias.
type AddAliasRequest struct {
	Alias string `json:"alias"`
}

// ExportRequest is the request body for export. An empty path derives the
// default destination under the data directory.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
}

// ExportResponse reports where the export was written.
type ExportResponse struct {
	Path string `json:"path"`
}

// GroupListResponse wraps group listings.
type GroupListResponse struct {
	Groups []models.GroupSummary `json:"groups"`
}

// DocumentListResponse wraps document listings.
type DocumentListResponse struct {
	Documents []models.Document `json:"documents"`
}

// GroupDetail is the full group response type (aliased from the domain layer).
type GroupDetail = memoservice.GroupDetail
