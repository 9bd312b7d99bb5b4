package memoservice

import (
	"context"
	"errors"

	"github.com/starford/naudiz/internal/apperr"
	"github.com/starford/naudiz/internal/models"
	"github.com/starford/naudiz/internal/store"
)

// GroupDetail is a group with its full closure of aliases and notes.
type GroupDetail struct {
	models.Group
	Aliases []models.Alias `json:"aliases"`
	Notes   []models.Note  `json:"notes"`
}

// ListGroups returns group summaries for the requested scope, or across all
// documents when the scope names none. Empty groups are purged immediately
// before the listing query so they never surface, and missing document
// display names are filled in from the identity mapping.
func (s *Service) ListGroups(ctx context.Context, sc Scope, search string) ([]models.GroupSummary, error) {
	var documentID int64
	if sc.explicit() {
		doc, err := s.ResolveDocument(ctx, sc)
		if errors.Is(err, apperr.ErrNotFound) {
			return []models.GroupSummary{}, nil
		}
		if err != nil {
			return nil, err
		}
		documentID = doc.ID
	}

	if err := s.db.DeleteGroupsWithoutNotes(documentID); err != nil {
		return nil, err
	}
	rows, err := s.db.ListGroups(store.GroupFilter{DocumentID: documentID, SearchText: search})
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].DocumentDisplay == "" {
			rows[i].DocumentDisplay = s.res.Resolve(rows[i].DocumentIdentity).DisplayName
		}
	}
	if rows == nil {
		rows = []models.GroupSummary{}
	}
	return rows, nil
}

// GetGroupDetail returns the tag's group with its aliases and notes.
func (s *Service) GetGroupDetail(ctx context.Context, tag string, sc Scope) (*GroupDetail, error) {
	_, normalized, err := normalizeTag(tag)
	if err != nil {
		return nil, err
	}
	doc, err := s.ResolveDocument(ctx, sc)
	if err != nil {
		return nil, err
	}
	g, err := s.db.GetGroup(doc.ID, normalized)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, apperr.ErrNotFound
	}
	aliases, err := s.db.ListAliases(g.ID)
	if err != nil {
		return nil, err
	}
	notes, err := s.db.GetNotes(g.ID)
	if err != nil {
		return nil, err
	}
	if aliases == nil {
		aliases = []models.Alias{}
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return &GroupDetail{Group: *g, Aliases: aliases, Notes: notes}, nil
}

// RemoveGroup deletes the tag's whole group with all aliases and notes.
// Removing an absent group is a no-op.
func (s *Service) RemoveGroup(ctx context.Context, tag string, sc Scope) error {
	display, normalized, err := normalizeTag(tag)
	if err != nil {
		return err
	}
	doc, err := s.ResolveDocument(ctx, sc)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	g, err := s.db.GetGroup(doc.ID, normalized)
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}
	if err := s.db.DeleteGroup(g.ID); err != nil {
		return err
	}
	s.emit("group-removed", doc.Identity, display)
	return nil
}

// ListDocuments returns all documents ordered by display name.
func (s *Service) ListDocuments(_ context.Context) ([]models.Document, error) {
	docs, err := s.db.ListDocuments()
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}
