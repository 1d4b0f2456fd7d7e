// Package project keeps the ordered, persisted list of user projects and the
// current selection that new timer transitions are attributed to.
package project

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	// DefaultName seeds an empty registry.
	DefaultName = "General"
	// LegacyName labels history recorded without a project. Users cannot create it.
	LegacyName = "Uncategorized"
)

// Fold returns the caseless form of name used for every name comparison.
func Fold(name string) string {
	return cases.Fold().String(name)
}

// EqualFold reports whether two project names are the same ignoring case.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// IsReserved reports whether name collides with LegacyName.
func IsReserved(name string) bool {
	return EqualFold(strings.TrimSpace(name), LegacyName)
}

// Normalize trims every entry and drops blanks, the reserved name and
// case-insensitive duplicates, keeping the first occurrence.
func Normalize(names []string) []string {
	normalized := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || IsReserved(trimmed) {
			continue
		}
		key := Fold(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

// OrLegacy maps an empty or blank logged project to LegacyName.
func OrLegacy(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return LegacyName
	}
	return trimmed
}
