// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// Slugify converts a tool name to a canonical URL slug.
//
// Normalization rules:
//  1. Trim whitespace and lowercase
//  2. Replace spaces, underscores, and slashes with dashes
//  3. Remove non-alphanumeric characters (except dashes)
//  4. Collapse multiple dashes
//  5. Trim leading/trailing dashes
//
// Examples:
//
//	"Notion AI"      → "notion-ai"
//	"GPT-4 Turbo"    → "gpt-4-turbo"
//	"  Midjourney  " → "midjourney"
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Initials derives up to two uppercase initials from a name, for icon
// rendering when a tool record does not specify them.
func Initials(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	switch len(fields) {
	case 0:
		return ""
	case 1:
		r := []rune(fields[0])
		if len(r) == 1 {
			return strings.ToUpper(string(r[0]))
		}
		return strings.ToUpper(string(r[:2]))
	default:
		return strings.ToUpper(string([]rune(fields[0])[:1]) + string([]rune(fields[1])[:1]))
	}
}
