// Package scenario holds the maze data model: items, scenario nodes and the
// graph that links them, along with the CSV loader, deep copy and a
// read-only graph dump.
package scenario

import "unicode/utf8"

const (
	MaxNameLength        = 255  // bytes kept from item and node names
	MaxDescriptionLength = 1000 // bytes kept from node descriptions
	MaxNodes             = 1000 // highest accepted node ID
)

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
