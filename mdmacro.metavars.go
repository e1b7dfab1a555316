package mdmacro

import (
	"regexp"
	"strings"
)

// metavarPattern matches one "name: value" header line.
var metavarPattern = regexp.MustCompile(`^(\S+):\s*(.*)$`)

// ParseMetavars splits a page source into its metavar header and the
// markdown body. The header is the run of leading "name: value" lines; it
// ends at the first line that does not have that shape, which stays in
// the body. A later duplicate name overrides an earlier one.
//
//	title: Tutorial 100
//	skip_header: yes
//
//	# Tutorial
func ParseMetavars(source string) (map[string]string, string) {
	metavars := make(map[string]string)
	rest := source
	for rest != "" {
		line, tail, _ := strings.Cut(rest, "\n")
		m := metavarPattern.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
		if m == nil {
			break
		}
		metavars[m[1]] = m[2]
		rest = tail
	}
	return metavars, rest
}

// NormalizePageName maps a requested page to its stored name:
// "tuto", "tuto.md" and "tuto.html" all become "tuto.md".
func NormalizePageName(name string) string {
	name = strings.TrimSuffix(name, PageHTMLExtension)
	name = strings.TrimSuffix(name, PageExtension)
	return name + PageExtension
}

// pageTitle is the title used when a page has no "title" metavar.
func pageTitle(name string) string {
	return strings.TrimSuffix(name, PageExtension)
}
