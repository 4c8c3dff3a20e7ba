// Package util provides small string helpers shared across onboard.
package util

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	nonAlphanumSep = regexp.MustCompile(`[^a-z0-9_-]`)
	multipleSeps   = regexp.MustCompile(`[-_]{2,}`)
)

// Slugify lowercases name, turns spaces into hyphens, strips everything
// outside [a-z0-9_-] and collapses runs of separators.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	s = nonAlphanumSep.ReplaceAllString(s, "")
	s = multipleSeps.ReplaceAllStringFunc(s, func(m string) string { return m[:1] })
	return strings.Trim(s, "-_")
}

// SafeFileName slugifies the base name of path and keeps its extension.
// An empty result becomes "file".
func SafeFileName(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	ext := strings.ToLower(filepath.Ext(base))
	stem := Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		stem = "file"
	}
	if ext = Slugify(strings.TrimPrefix(ext, ".")); ext != "" {
		return stem + "." + ext
	}
	return stem
}

// SuggestUserName builds a user name from first and last name.
func SuggestUserName(first, last string) string {
	return strings.ReplaceAll(Slugify(first+" "+last), "-", "_")
}
