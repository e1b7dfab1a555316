package internal

import (
	"regexp"
	"strings"
)

// markerReplacer rewrites canonical markers into their post-markdown variants.
var markerReplacer = strings.NewReplacer(
	MarkerOpen, MarkerOpenExpanded,
	MarkerClose, MarkerCloseExpanded,
)

// ExpandMarkers turns a tag grammar written with canonical << and >> markers
// into a pattern that also accepts the forms markdown rendering leaves behind:
// entity-escaped characters (&lt; &gt;), any mix of raw and escaped
// characters, and an enclosing paragraph.
//
// Opening and closing markers are expanded independently, so
// "<p>&lt;<include f>&gt;</p>" matches the same grammar as "<<include f>>".
func ExpandMarkers(pattern string) string {
	return markerReplacer.Replace(pattern)
}

// CompileTagPattern expands the markers of a tag grammar and compiles it.
// It panics on an invalid grammar; grammars are package constants.
func CompileTagPattern(pattern string) *regexp.Regexp {
	return regexp.MustCompile(ExpandMarkers(pattern))
}
