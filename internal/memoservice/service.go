// Package memoservice implements the user-facing memo semantics on top of
// the identity resolver and the storage layer. It is the only component
// that combines the two.
package memoservice

import (
	"context"

	"github.com/starford/naudiz/internal/apperr"
	"github.com/starford/naudiz/internal/datadir"
	"github.com/starford/naudiz/internal/models"
	"github.com/starford/naudiz/internal/resolver"
	"github.com/starford/naudiz/internal/store"
)

// ActiveDocumentProvider yields the raw locator of the document currently
// open in the driving UI, when one is open.
type ActiveDocumentProvider interface {
	CurrentLocator() (string, bool)
}

// EventFunc is called after each successful mutation.
// kind is one of "note-added", "note-updated", "note-deleted",
// "group-removed", "alias-added", "alias-removed".
type EventFunc func(kind, document, tag string)

// Scope selects the document a memo operation applies to. Precedence:
// explicit DocumentID, then explicit Identity, then raw Locator resolved
// through the identity mapping, then the UI's active document, then the
// virtual global document. Create controls whether an absent document is
// created or reported as not found.
type Scope struct {
	DocumentID   int64
	Identity     string
	IdentityType string
	Locator      string
	Create       bool
}

// explicit reports whether the scope names a particular document rather
// than falling through to the active/global context.
func (sc Scope) explicit() bool {
	return sc.DocumentID > 0 || sc.Identity != "" || sc.Locator != ""
}

// Service coordinates resolver and store operations.
type Service struct {
	db     store.MemoStore
	res    *resolver.Resolver
	data   *datadir.Dir
	active ActiveDocumentProvider
	notify EventFunc
}

// Option configures a Service.
type Option func(*Service)

// WithActiveDocument sets the provider for the UI's current document.
func WithActiveDocument(p ActiveDocumentProvider) Option {
	return func(s *Service) { s.active = p }
}

// WithEventFunc sets the mutation event callback.
func WithEventFunc(f EventFunc) Option {
	return func(s *Service) { s.notify = f }
}

// NewService creates a memo service.
func NewService(db store.MemoStore, res *resolver.Resolver, data *datadir.Dir, opts ...Option) *Service {
	s := &Service{db: db, res: res, data: data}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveDocument resolves the scope to a document per the stated
// precedence. Without Create, an absent document yields apperr.ErrNotFound.
func (s *Service) ResolveDocument(_ context.Context, sc Scope) (*models.Document, error) {
	if sc.DocumentID > 0 {
		doc, err := s.db.GetDocumentByID(sc.DocumentID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, apperr.ErrNotFound
		}
		return doc, nil
	}

	identity, identityType, display := sc.Identity, sc.IdentityType, ""
	switch {
	case identity != "":
		if identityType == "" {
			identityType = models.IdentityTypePath
		}
	case sc.Locator != "":
		id := s.res.Resolve(sc.Locator)
		identity, identityType, display = id.Identity, models.IdentityTypePath, id.DisplayName
	default:
		if s.active != nil {
			if loc, ok := s.active.CurrentLocator(); ok {
				id := s.res.Resolve(loc)
				identity, identityType, display = id.Identity, models.IdentityTypePath, id.DisplayName
				break
			}
		}
		identity, identityType, display = models.GlobalIdentity, models.IdentityTypeVirtual, models.GlobalDisplayName
	}

	if sc.Create {
		return s.db.GetOrCreateDocument(identity, identityType, display)
	}
	doc, err := s.db.FindDocument(identity, identityType)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperr.ErrNotFound
	}
	return doc, nil
}

// GetOrCreateGroup ensures the group for a tag, creating the document as
// needed. The fetched-existing path opens the group in multi-note mode.
func (s *Service) GetOrCreateGroup(ctx context.Context, tag string, sc Scope) (*models.Group, error) {
	display, normalized, err := normalizeTag(tag)
	if err != nil {
		return nil, err
	}
	sc.Create = true
	doc, err := s.ResolveDocument(ctx, sc)
	if err != nil {
		return nil, err
	}
	return s.db.EnsureGroup(doc.ID, display, normalized)
}

// emit publishes a mutation event when a callback is installed.
func (s *Service) emit(kind, document, tag string) {
	if s.notify != nil {
		s.notify(kind, document, tag)
	}
}
