package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// CodeviewAttr is a key accepted in the key=value tail of a codeview tag.
type CodeviewAttr string

// Codeview attribute keys. This set is closed: any other key is rejected.
const (
	CodeviewAttrSelected      CodeviewAttr = "selected"
	CodeviewAttrGraph         CodeviewAttr = "graph"
	CodeviewAttrPrevious      CodeviewAttr = "previous"
	CodeviewAttrLang          CodeviewAttr = "lang"
	CodeviewAttrPreviousGraph CodeviewAttr = "previous_graph"
)

// codeviewAttrs lists the allowed keys in documentation order.
var codeviewAttrs = []CodeviewAttr{
	CodeviewAttrSelected,
	CodeviewAttrGraph,
	CodeviewAttrPrevious,
	CodeviewAttrLang,
	CodeviewAttrPreviousGraph,
}

// CodeviewAttrs returns the allowed codeview attribute keys.
func CodeviewAttrs() []CodeviewAttr {
	out := make([]CodeviewAttr, len(codeviewAttrs))
	copy(out, codeviewAttrs)
	return out
}

// ParseCodeviewAttr maps a raw key onto the closed set of attributes.
func ParseCodeviewAttr(key string) (CodeviewAttr, bool) {
	for _, attr := range codeviewAttrs {
		if string(attr) == key {
			return attr, true
		}
	}
	return StringValueEmpty, false
}

// CodeviewSection names one tab of a codeview.
type CodeviewSection string

// Codeview sections
const (
	SectionPlain         CodeviewSection = "plain"
	SectionDiff          CodeviewSection = "diff"
	SectionGraph         CodeviewSection = "graph"
	SectionPreviousGraph CodeviewSection = "previous_graph"
)

// IsKnown reports whether s names one of the four codeview sections.
// A known section is not necessarily enabled for a given codeview.
func (s CodeviewSection) IsKnown() bool {
	switch s {
	case SectionPlain, SectionDiff, SectionGraph, SectionPreviousGraph:
		return true
	default:
		return false
	}
}

var codeviewAttrPattern = regexp.MustCompile(PatternCodeviewAttr)

// ParseCodeviewAttrs splits the whitespace-separated key=value run of a
// codeview tag and validates every key against the allowed set.
// A repeated key keeps its last value.
func ParseCodeviewAttrs(raw string) (map[CodeviewAttr]string, error) {
	attrs := make(map[CodeviewAttr]string)
	for _, pair := range strings.Fields(raw) {
		m := codeviewAttrPattern.FindStringSubmatch(pair)
		if m == nil {
			return nil, NewMalformedPairError(TagNameCodeview, pair)
		}
		key := m[codeviewAttrPattern.SubexpIndex(GroupKey)]
		value := m[codeviewAttrPattern.SubexpIndex(GroupValue)]

		attr, ok := ParseCodeviewAttr(key)
		if !ok {
			return nil, NewKeyNotAllowedError(TagNameCodeview, pair, key)
		}
		attrs[attr] = value
	}
	return attrs, nil
}

// MalformedTagError reports a tag whose arguments do not fit its grammar.
// It aborts the resolution call it occurs in.
type MalformedTagError struct {
	Tag    string // tag name, e.g. "codeview"
	Pair   string // offending key=value text as written
	Key    string // rejected key, empty when the pair itself is ill-formed
	Reason string
}

// NewMalformedPairError creates an error for a pair that is not key=value shaped.
func NewMalformedPairError(tag, pair string) *MalformedTagError {
	return &MalformedTagError{
		Tag:    tag,
		Pair:   pair,
		Reason: ErrMsgMalformedCodeviewPair,
	}
}

// NewKeyNotAllowedError creates an error for a key outside the allowed set.
func NewKeyNotAllowedError(tag, pair, key string) *MalformedTagError {
	return &MalformedTagError{
		Tag:    tag,
		Pair:   pair,
		Key:    key,
		Reason: ErrMsgMalformedCodeviewPair,
	}
}

// Error implements the error interface.
func (e *MalformedTagError) Error() string {
	if e.Key != StringValueEmpty {
		return fmt.Sprintf(ErrFmtKeyNotAllowed, e.Reason, e.Pair, e.Key, ErrMsgCodeviewKeyNotAllowed)
	}
	return fmt.Sprintf(ErrFmtMalformedTag, e.Reason, e.Pair)
}
