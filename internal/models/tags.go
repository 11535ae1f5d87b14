// ABOUTME: Tag-set helpers shared by recipes and general notes.
// ABOUTME: Tags are trimmed, case-preserving, and never duplicated.

package models

import "strings"

// NormalizeTag trims surrounding whitespace from a tag name.
func NormalizeTag(name string) string {
	return strings.TrimSpace(name)
}

// HasTag reports whether tags contains name exactly.
func HasTag(tags []string, name string) bool {
	name = NormalizeTag(name)
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}

// AddTag returns a new slice with name appended unless it is empty or already present.
func AddTag(tags []string, name string) []string {
	name = NormalizeTag(name)
	out := append([]string(nil), tags...)
	if name == "" || HasTag(tags, name) {
		return out
	}
	return append(out, name)
}

// RemoveTag returns a new slice without name.
func RemoveTag(tags []string, name string) []string {
	name = NormalizeTag(name)
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != name {
			out = append(out, t)
		}
	}
	return out
}

// UniqueTags trims and de-duplicates tags, keeping first-seen order.
func UniqueTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		out = AddTag(out, t)
	}
	return out
}
