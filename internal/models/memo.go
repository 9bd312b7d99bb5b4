// Package models defines the domain types for Naudiz.
package models

import "time"

// Identity types for documents.
const (
	IdentityTypePath    = "path"
	IdentityTypeVirtual = "virtual"
)

// GlobalIdentity is the well-known virtual document representing the
// cross-document scope.
const (
	GlobalIdentity    = "naudiz:all"
	GlobalDisplayName = "All documents"
)

// Document is a canonical identity under which memo groups are organized.
// Several raw file paths may resolve to the same Document.
type Document struct {
	ID           int64     `json:"id"`
	Identity     string    `json:"identity"`
	IdentityType string    `json:"identity_type"`
	DisplayName  string    `json:"display_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Group is the note-bearing unit for one primary tag within one document.
type Group struct {
	ID            int64     `json:"id"`
	DocumentID    int64     `json:"document_id"`
	PrimaryTag    string    `json:"primary_tag"`
	NormalizedTag string    `json:"normalized_tag"`
	MultiNoteMode bool      `json:"multi_note_mode"`
	CreatedAt     time.Time `json:"created_at"`
}

// Alias is an alternate normalized tag resolving to an existing group.
type Alias struct {
	ID              int64  `json:"id"`
	GroupID         int64  `json:"group_id"`
	Alias           string `json:"alias"`
	NormalizedAlias string `json:"normalized"`
}

// Note is one piece of free text attached to a group.
type Note struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupSummary is a group joined with its owning document and aggregate
// alias/note counts, as returned by list operations.
type GroupSummary struct {
	Group
	DocumentIdentity string `json:"document_identity"`
	DocumentDisplay  string `json:"document_display"`
	AliasCount       int    `json:"alias_count"`
	NoteCount        int    `json:"note_count"`
}
