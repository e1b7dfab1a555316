package internal

import (
	"regexp"
)

// TagResolver resolves every occurrence of one tag type.
type TagResolver interface {
	// TagName returns the tag this resolver handles, e.g. "codeview".
	TagName() string

	// Pattern returns the compiled, marker-expanded grammar of the tag.
	Pattern() *regexp.Regexp

	// Resolve produces the fragment replacing one occurrence.
	Resolve(m Match) (string, error)
}

// Compiled grammars, shared by all resolvers.
var (
	includePattern   = CompileTagPattern(PatternInclude)
	codediffPattern  = CompileTagPattern(PatternCodediff)
	togglablePattern = CompileTagPattern(PatternTogglable)
	codeviewPattern  = CompileTagPattern(PatternCodeview)
)

// IncludeResolver handles <<include file>>.
type IncludeResolver struct {
	fragments *Fragments
}

// NewIncludeResolver creates a new IncludeResolver.
func NewIncludeResolver(fragments *Fragments) *IncludeResolver {
	return &IncludeResolver{fragments: fragments}
}

// TagName returns the tag name for this resolver.
func (r *IncludeResolver) TagName() string { return TagNameInclude }

// Pattern returns the include grammar.
func (r *IncludeResolver) Pattern() *regexp.Regexp { return includePattern }

// Resolve returns the included file content, or the not-found placeholder.
func (r *IncludeResolver) Resolve(m Match) (string, error) {
	return r.fragments.Include(m.Group(GroupFile)), nil
}

// CodediffResolver handles <<codediff viewid file1 file2>>.
type CodediffResolver struct {
	fragments *Fragments
}

// NewCodediffResolver creates a new CodediffResolver.
func NewCodediffResolver(fragments *Fragments) *CodediffResolver {
	return &CodediffResolver{fragments: fragments}
}

// TagName returns the tag name for this resolver.
func (r *CodediffResolver) TagName() string { return TagNameCodediff }

// Pattern returns the codediff grammar.
func (r *CodediffResolver) Pattern() *regexp.Regexp { return codediffPattern }

// Resolve renders the codediff containers using the default language.
func (r *CodediffResolver) Resolve(m Match) (string, error) {
	return r.fragments.Codediff(
		m.Group(GroupViewID),
		m.Group(GroupFile1),
		m.Group(GroupFile2),
		StringValueEmpty,
	), nil
}

// TogglableResolver handles <<togglable_output viewid file "header">>.
type TogglableResolver struct {
	fragments *Fragments
}

// NewTogglableResolver creates a new TogglableResolver.
func NewTogglableResolver(fragments *Fragments) *TogglableResolver {
	return &TogglableResolver{fragments: fragments}
}

// TagName returns the tag name for this resolver.
func (r *TogglableResolver) TagName() string { return TagNameTogglable }

// Pattern returns the togglable grammar.
func (r *TogglableResolver) Pattern() *regexp.Regexp { return togglablePattern }

// Resolve renders the panel. Panels always start collapsed.
func (r *TogglableResolver) Resolve(m Match) (string, error) {
	return r.fragments.Togglable(
		m.Group(GroupViewID),
		m.Group(GroupFile),
		m.Group(GroupHeader),
		false,
	), nil
}

// CodeviewResolver handles <<codeview viewid main [key=value ...]>>.
type CodeviewResolver struct {
	fragments *Fragments
}

// NewCodeviewResolver creates a new CodeviewResolver.
func NewCodeviewResolver(fragments *Fragments) *CodeviewResolver {
	return &CodeviewResolver{fragments: fragments}
}

// TagName returns the tag name for this resolver.
func (r *CodeviewResolver) TagName() string { return TagNameCodeview }

// Pattern returns the codeview grammar.
func (r *CodeviewResolver) Pattern() *regexp.Regexp { return codeviewPattern }

// Resolve validates the key=value tail before generating anything.
func (r *CodeviewResolver) Resolve(m Match) (string, error) {
	attrs, err := ParseCodeviewAttrs(m.Group(GroupAttrs))
	if err != nil {
		return StringValueEmpty, err
	}
	args := NewCodeviewArgs(m.Group(GroupViewID), m.Group(GroupMain), attrs)
	return r.fragments.Codeview(args), nil
}

// RegisterBuiltins registers the four built-in tag resolvers.
func RegisterBuiltins(registry *Registry, fragments *Fragments) {
	registry.MustRegister(NewIncludeResolver(fragments))
	registry.MustRegister(NewCodediffResolver(fragments))
	registry.MustRegister(NewTogglableResolver(fragments))
	registry.MustRegister(NewCodeviewResolver(fragments))
}
