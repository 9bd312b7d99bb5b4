package memoservice

import (
	"strings"

	"github.com/starford/naudiz/internal/apperr"
)

// normalizeTag applies the shared tag/alias normalization contract: trim
// surrounding whitespace, reject empty results, case-fold for the form used
// in uniqueness comparisons while preserving the trimmed casing for display.
func normalizeTag(raw string) (display, normalized string, err error) {
	display = strings.TrimSpace(raw)
	if display == "" {
		return "", "", apperr.ErrInvalidInput
	}
	return display, strings.ToLower(display), nil
}

// safeFilename derives a filesystem-safe file name from a display name or
// identity, replacing path separators and characters that are unsafe on
// common filesystems.
func safeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteByte('_')
		case r < 0x20:
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), " .")
	if out == "" {
		return "memos"
	}
	return out
}
