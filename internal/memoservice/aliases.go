package memoservice

import (
	"context"

	"github.com/starford/naudiz/internal/apperr"
	"github.com/starford/naudiz/internal/models"
)

// AddAlias registers an alternate tag resolving to the tag's group. The
// candidate is rejected with apperr.ErrConflict when its normalized form
// equals the group's own normalized tag, or already names any group's
// normalized tag or alias within the document.
func (s *Service) AddAlias(ctx context.Context, tag, alias string, sc Scope) error {
	_, normalizedTag, err := normalizeTag(tag)
	if err != nil {
		return err
	}
	aliasDisplay, normalizedAlias, err := normalizeTag(alias)
	if err != nil {
		return err
	}
	doc, err := s.ResolveDocument(ctx, sc)
	if err != nil {
		return err
	}
	g, err := s.db.GetGroup(doc.ID, normalizedTag)
	if err != nil {
		return err
	}
	if g == nil {
		return apperr.ErrNotFound
	}

	if normalizedAlias == g.NormalizedTag {
		return apperr.ErrConflict
	}
	inUse, err := s.db.AliasInUse(doc.ID, normalizedAlias)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.ErrConflict
	}

	if err := s.db.AddAlias(g.ID, aliasDisplay, normalizedAlias); err != nil {
		return err
	}
	s.emit("alias-added", doc.Identity, g.PrimaryTag)
	return nil
}

// RemoveAlias deletes an alias by its normalized form. Removing an absent
// alias, or an alias of an absent group, is not an error.
func (s *Service) RemoveAlias(ctx context.Context, tag, alias string, sc Scope) error {
	_, normalizedTag, err := normalizeTag(tag)
	if err != nil {
		return err
	}
	_, normalizedAlias, err := normalizeTag(alias)
	if err != nil {
		return err
	}
	doc, err := s.ResolveDocument(ctx, sc)
	if err != nil {
		return err
	}
	g, err := s.db.GetGroup(doc.ID, normalizedTag)
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}
	if err := s.db.RemoveAlias(g.ID, normalizedAlias); err != nil {
		return err
	}
	s.emit("alias-removed", doc.Identity, g.PrimaryTag)
	return nil
}

// ListAliases returns the tag's aliases ordered by display text.
func (s *Service) ListAliases(ctx context.Context, tag string, sc Scope) ([]models.Alias, error) {
	_, normalizedTag, err := normalizeTag(tag)
	if err != nil {
		return nil, err
	}
	doc, err := s.ResolveDocument(ctx, sc)
	if err != nil {
		return nil, err
	}
	g, err := s.db.GetGroup(doc.ID, normalizedTag)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, apperr.ErrNotFound
	}
	return s.db.ListAliases(g.ID)
}
