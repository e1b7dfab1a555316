package internal

import (
	"regexp"
	"strings"
)

// Match is a single tag occurrence found in a text.
type Match struct {
	Start  int
	End    int // exclusive, past the trailing newline
	Text   string
	groups map[string]string
}

// Group returns the value of a named capture group, or "" when the group
// did not participate in the match.
func (m Match) Group(name string) string {
	return m.groups[name]
}

// FindMatches returns all non-overlapping matches of re in text, left to right.
func FindMatches(re *regexp.Regexp, text string) []Match {
	indexes := re.FindAllStringSubmatchIndex(text, -1)
	if len(indexes) == 0 {
		return nil
	}

	names := re.SubexpNames()
	matches := make([]Match, 0, len(indexes))
	for _, loc := range indexes {
		m := Match{
			Start:  loc[0],
			End:    loc[1],
			Text:   text[loc[0]:loc[1]],
			groups: make(map[string]string, len(names)),
		}
		for i, name := range names {
			if name == StringValueEmpty || loc[2*i] < 0 {
				continue
			}
			m.groups[name] = text[loc[2*i]:loc[2*i+1]]
		}
		matches = append(matches, m)
	}
	return matches
}

// ReplaceFunc produces the replacement for one match.
type ReplaceFunc func(m Match) (string, error)

// ReplaceMatches makes one left-to-right pass over text, replacing every
// match of re with the output of fn. Text between matches is copied
// verbatim and replacements are never scanned again.
// It returns the new text and the number of replaced occurrences.
// The first error from fn aborts the pass.
func ReplaceMatches(text string, re *regexp.Regexp, fn ReplaceFunc) (string, int, error) {
	matches := FindMatches(re, text)
	if len(matches) == 0 {
		return text, 0, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	end := 0
	for _, m := range matches {
		fragment, err := fn(m)
		if err != nil {
			return StringValueEmpty, 0, err
		}
		b.WriteString(text[end:m.Start])
		b.WriteString(fragment)
		end = m.End
	}
	b.WriteString(text[end:])

	return b.String(), len(matches), nil
}
