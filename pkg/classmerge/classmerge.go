// Package classmerge joins class-string fragments into a single class attribute value.
//
// Merge resolves conflicting Tailwind utilities with tailwind-merge: later fragments win on
// conflicting atomic rules, modifiers (hover:, md:, !) scope each conflict, and classes that are
// not Tailwind utilities are kept as written.
package classmerge

import (
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// MergeFunc is the signature shared by Merge and any replacement merge strategy.
type MergeFunc func(fragments ...string) string

// Merge returns the merged class string for the ordered fragments. Empty fragments are ignored.
func Merge(fragments ...string) string {
	joined := Join(fragments...)
	if joined == "" {
		return ""
	}
	return twmerge.Merge(joined)
}

// Join concatenates non-empty fragments with single spaces without resolving conflicts.
func Join(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if trimmed := strings.TrimSpace(fragment); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
