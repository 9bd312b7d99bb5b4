package memoservice

import (
	"context"

	"github.com/starford/naudiz/internal/apperr"
	"github.com/starford/naudiz/internal/models"
)

// AddNote appends a note to the tag's group, creating document and group as
// needed. When this is the group's first note and initialAlias is non-empty
// (e.g. a dictionary headword distinct from the user's selection), the alias
// is registered after the note is committed; an alias collision there is not
// an error. The group ends up in multi-note mode exactly when it holds more
// than one note.
func (s *Service) AddNote(ctx context.Context, tag, text, initialAlias string, sc Scope) (*models.Group, int64, error) {
	display, normalized, err := normalizeTag(tag)
	if err != nil {
		return nil, 0, err
	}
	sc.Create = true
	doc, err := s.ResolveDocument(ctx, sc)
	if err != nil {
		return nil, 0, err
	}
	g, err := s.db.EnsureGroup(doc.ID, display, normalized)
	if err != nil {
		return nil, 0, err
	}

	before, err := s.db.GetNotes(g.ID)
	if err != nil {
		return nil, 0, err
	}
	id, err := s.db.AddNote(g.ID, text)
	if err != nil {
		return nil, 0, err
	}

	if len(before) == 0 && initialAlias != "" {
		// A rejected initial alias (own tag, or taken elsewhere in the
		// document) is silently skipped.
		_ = s.AddAlias(ctx, tag, initialAlias, sc)
	}

	// The ensure path opens existing groups in multi-note mode; settle the
	// mode from the actual count so a group's first note leaves it single.
	if multi := len(before)+1 > 1; multi != g.MultiNoteMode {
		if err := s.db.SetGroupMultiNoteMode(g.ID, multi); err != nil {
			return nil, 0, err
		}
		g.MultiNoteMode = multi
	}

	s.emit("note-added", doc.Identity, display)
	return g, id, nil
}

// UpdateSingleNote replaces the text of the group's first note, creating one
// when none exists. Intended for single-note-mode callers; the group is
// demoted out of multi-note mode when it ends up with at most one note.
func (s *Service) UpdateSingleNote(ctx context.Context, tag, text string, sc Scope) error {
	display, normalized, err := normalizeTag(tag)
	if err != nil {
		return err
	}
	sc.Create = true
	doc, err := s.ResolveDocument(ctx, sc)
	if err != nil {
		return err
	}
	g, err := s.db.EnsureGroup(doc.ID, display, normalized)
	if err != nil {
		return err
	}

	notes, err := s.db.GetNotes(g.ID)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		if _, err := s.db.AddNote(g.ID, text); err != nil {
			return err
		}
	} else if err := s.db.UpdateNote(notes[0].ID, text); err != nil {
		return err
	}

	if len(notes) <= 1 && g.MultiNoteMode {
		if err := s.db.SetGroupMultiNoteMode(g.ID, false); err != nil {
			return err
		}
	}

	s.emit("note-updated", doc.Identity, display)
	return nil
}

// DeleteNote removes the note at the given 1-based position in creation
// order. When at most one note remains, the group leaves multi-note mode.
func (s *Service) DeleteNote(ctx context.Context, tag string, index int, sc Scope) error {
	display, normalized, err := normalizeTag(tag)
	if err != nil {
		return err
	}
	doc, err := s.ResolveDocument(ctx, sc)
	if err != nil {
		return err
	}
	g, err := s.db.GetGroup(doc.ID, normalized)
	if err != nil {
		return err
	}
	if g == nil {
		return apperr.ErrNotFound
	}

	notes, err := s.db.GetNotes(g.ID)
	if err != nil {
		return err
	}
	if index < 1 || index > len(notes) {
		return apperr.ErrNotFound
	}
	if err := s.db.DeleteNote(notes[index-1].ID); err != nil {
		return err
	}

	if len(notes)-1 <= 1 && g.MultiNoteMode {
		if err := s.db.SetGroupMultiNoteMode(g.ID, false); err != nil {
			return err
		}
	}

	s.emit("note-deleted", doc.Identity, display)
	return nil
}

// GetNotes returns the tag's notes in creation order.
func (s *Service) GetNotes(ctx context.Context, tag string, sc Scope) ([]models.Note, error) {
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
	return s.db.GetNotes(g.ID)
}

// SetMultiNoteMode toggles the group's multi-note mode without touching
// note content.
func (s *Service) SetMultiNoteMode(ctx context.Context, tag string, enabled bool, sc Scope) error {
	_, normalized, err := normalizeTag(tag)
	if err != nil {
		return err
	}
	doc, err := s.ResolveDocument(ctx, sc)
	if err != nil {
		return err
	}
	g, err := s.db.GetGroup(doc.ID, normalized)
	if err != nil {
		return err
	}
	if g == nil {
		return apperr.ErrNotFound
	}
	return s.db.SetGroupMultiNoteMode(g.ID, enabled)
}
