// Package fsutil builds file names that are safe on common file systems.
package fsutil

import (
	"regexp"
	"strings"
	"unicode/utf8"

	twinicodo "github.com/anatolykoptev/go-twinicodo"
)

// maxNameBytes keeps names under the 255 byte limit of most file systems.
const maxNameBytes = 200

// invalidFileRunes matches characters forbidden in file names, control characters included.
var invalidFileRunes = regexp.MustCompile(`[<>"/\\|?*\x00-\x1F]`)

var multiSpace = regexp.MustCompile(`\s+`)

// SanitizeFilename makes name usable as a file name: ":" becomes "-", other forbidden
// characters become spaces, runs of whitespace collapse and trailing dots are dropped.
// An empty result becomes "untitled".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", "-")
	clean := invalidFileRunes.ReplaceAllString(name, " ")
	clean = multiSpace.ReplaceAllString(strings.TrimSpace(clean), " ")
	clean = strings.TrimRight(clean, ".")
	if clean == "" {
		return "untitled"
	}
	return truncate(clean, maxNameBytes)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// OutputName returns the default XML file name for q: <text>_<since>_<until>.xml.
func OutputName(q twinicodo.Query) string {
	base := q.Text + "_" + q.Since + "_" + q.Until
	return truncate(SanitizeFilename(base), maxNameBytes-len(".xml")) + ".xml"
}
