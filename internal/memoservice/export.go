package memoservice

import (
	"context"
	"path/filepath"
)

// DefaultExportPath derives the export destination for the scope: a
// filesystem-safe name from the document's display name or identity under
// the data directory's export folder, or an all-documents file when the
// scope names no document. The target document is never created here.
func (s *Service) DefaultExportPath(ctx context.Context, sc Scope) (string, error) {
	name := "all-documents"
	if sc.explicit() {
		sc.Create = false
		doc, err := s.ResolveDocument(ctx, sc)
		if err != nil {
			return "", err
		}
		name = doc.DisplayName
		if name == "" {
			name = displayName(doc.Identity)
		}
	}
	return s.data.Resolve(filepath.Join("export", safeFilename(name)+".json"))
}

// ExportTo writes the scoped relational closure as JSON to path, deriving
// the default destination when path is empty. Destination directories are
// created as needed.
func (s *Service) ExportTo(ctx context.Context, path string, sc Scope) (string, error) {
	var documentID int64
	if sc.explicit() {
		sc.Create = false
		doc, err := s.ResolveDocument(ctx, sc)
		if err != nil {
			return "", err
		}
		documentID = doc.ID
	}
	if path == "" {
		p, err := s.DefaultExportPath(ctx, sc)
		if err != nil {
			return "", err
		}
		path = p
	}
	if err := s.db.ExportTo(path, documentID); err != nil {
		return "", err
	}
	return path, nil
}

func displayName(identity string) string {
	return filepath.Base(identity)
}
