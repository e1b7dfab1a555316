package internal

import (
	"fmt"
	"strings"
)

// Locator resolves a bare filename to its content.
// When the file cannot be found it returns a placeholder naming the file
// and the calling tag instead of failing.
type Locator interface {
	Locate(filename, label string) string
}

// FragmentConfig holds the settings that shape generated HTML.
type FragmentConfig struct {
	// CodeURLPrefix is prepended to a codeview main file for its download link.
	CodeURLPrefix string
	// ImageURLPrefix is prepended to graph image names.
	ImageURLPrefix string
	// DiffHook is the client-side function invoked to compute a codediff.
	DiffHook string
	// DefaultLang is the diff language when a tag does not set one.
	DefaultLang string
}

// DefaultFragmentConfig returns the stock fragment settings.
func DefaultFragmentConfig() FragmentConfig {
	return FragmentConfig{
		CodeURLPrefix:  DefaultCodeURLPrefix,
		ImageURLPrefix: DefaultImageURLPrefix,
		DiffHook:       DefaultDiffHook,
		DefaultLang:    DefaultLang,
	}
}

// Fragments generates the HTML that replaces each tag type.
type Fragments struct {
	locator Locator
	config  FragmentConfig
}

// NewFragments creates a fragment generator reading files through locator.
// Empty config fields fall back to their defaults.
func NewFragments(locator Locator, config FragmentConfig) *Fragments {
	defaults := DefaultFragmentConfig()
	if config.CodeURLPrefix == StringValueEmpty {
		config.CodeURLPrefix = defaults.CodeURLPrefix
	}
	if config.ImageURLPrefix == StringValueEmpty {
		config.ImageURLPrefix = defaults.ImageURLPrefix
	}
	if config.DiffHook == StringValueEmpty {
		config.DiffHook = defaults.DiffHook
	}
	if config.DefaultLang == StringValueEmpty {
		config.DefaultLang = defaults.DefaultLang
	}
	return &Fragments{locator: locator, config: config}
}

// Config returns the effective fragment settings.
func (f *Fragments) Config() FragmentConfig {
	return f.config
}

// Include returns the raw content of file.
func (f *Fragments) Include(file string) string {
	return f.locator.Locate(file, TagNameInclude)
}

// Codediff emits two hidden containers with the contents of file1 and file2,
// an empty target container, and the hook that fills the target once the
// document is ready. Element ids are viewID+"_a", viewID+"_b" and
// viewID+"_diff".
func (f *Fragments) Codediff(viewID, file1, file2, lang string) string {
	if lang == StringValueEmpty {
		lang = f.config.DefaultLang
	}
	content1 := f.locator.Locate(file1, TagNameCodediff)
	content2 := f.locator.Locate(file2, TagNameCodediff)

	var b strings.Builder
	fmt.Fprintf(&b, htmlCodediffHidden, viewID+CodediffSuffixA, content1)
	fmt.Fprintf(&b, htmlCodediffHidden, viewID+CodediffSuffixB, content2)
	fmt.Fprintf(&b, htmlCodediffTarget, viewID+CodediffSuffixDiff, CodediffClass)
	fmt.Fprintf(&b, htmlCodediffHook, f.config.DiffHook, viewID, lang)
	return b.String()
}

// Togglable emits a collapsible panel whose body shows file inside a
// preformatted block.
func (f *Fragments) Togglable(viewID, file, header string, startExpanded bool) string {
	linkClass, bodyClass := togglableCollapsedLink, StringValueEmpty
	if startExpanded {
		linkClass, bodyClass = StringValueEmpty, togglableExpandedBody
	}

	var b strings.Builder
	fmt.Fprintf(&b, htmlTogglableHead, viewID, linkClass)
	fmt.Fprintf(&b, htmlTogglableHeader, header)
	fmt.Fprintf(&b, htmlTogglableBody, viewID, bodyClass)
	b.WriteString(f.locator.Locate(file, TagNameTogglable))
	b.WriteString(htmlTogglableTail)
	return b.String()
}

// CodeviewArgs are the arguments of one codeview tag.
type CodeviewArgs struct {
	ViewID        string
	Main          string
	Previous      string
	Selected      CodeviewSection
	Graph         string
	PreviousGraph string
	Lang          string
}

// NewCodeviewArgs builds codeview arguments from its positional values and
// validated attributes.
func NewCodeviewArgs(viewID, main string, attrs map[CodeviewAttr]string) CodeviewArgs {
	return CodeviewArgs{
		ViewID:        viewID,
		Main:          main,
		Previous:      attrs[CodeviewAttrPrevious],
		Selected:      CodeviewSection(attrs[CodeviewAttrSelected]),
		Graph:         attrs[CodeviewAttrGraph],
		PreviousGraph: attrs[CodeviewAttrPreviousGraph],
		Lang:          attrs[CodeviewAttrLang],
	}
}

// ActiveSection returns the section shown first. An explicit known section
// wins even when that section is not enabled, in which case no pane ends
// up active. Otherwise the diff is shown when a previous file is set.
func (a CodeviewArgs) ActiveSection() CodeviewSection {
	if a.Selected.IsKnown() {
		return a.Selected
	}
	if a.Previous != StringValueEmpty {
		return SectionDiff
	}
	return SectionPlain
}

// Codeview emits a pill bar and the matching tab panes: a download link and
// a plain view of the main file, plus optional graph, diff and
// previous-graph tabs. The diff pane embeds a codediff with id
// "diff-"+ViewID comparing Previous to Main.
func (f *Fragments) Codeview(args CodeviewArgs) string {
	active := args.ActiveSection()
	pill := func(s CodeviewSection) string {
		if s == active {
			return codeviewPillActive
		}
		return StringValueEmpty
	}
	pane := func(s CodeviewSection) string {
		if s == active {
			return codeviewPaneActive
		}
		return StringValueEmpty
	}

	var b strings.Builder
	b.WriteString(htmlCodeviewPillsOpen)
	fmt.Fprintf(&b, htmlCodeviewDownload, f.config.CodeURLPrefix, args.Main)
	if args.Graph != StringValueEmpty {
		fmt.Fprintf(&b, htmlCodeviewGraphPill, pill(SectionGraph), args.ViewID, args.Main)
	}
	fmt.Fprintf(&b, htmlCodeviewPlainPill, pill(SectionPlain), args.ViewID, args.Main)
	if args.Previous != StringValueEmpty {
		fmt.Fprintf(&b, htmlCodeviewDiffPill, pill(SectionDiff), args.ViewID, args.Previous, args.Main)
	}
	if args.PreviousGraph != StringValueEmpty {
		fmt.Fprintf(&b, htmlCodeviewPreviousGraphPill, pill(SectionPreviousGraph), args.ViewID, args.Previous)
	}
	b.WriteString(htmlCodeviewPillsClose)

	b.WriteString(htmlCodeviewContentOpen)

	fmt.Fprintf(&b, htmlCodeviewPlainPane, args.ViewID, pane(SectionPlain))
	b.WriteString(htmlCodeviewPreOpen)
	b.WriteString(f.locator.Locate(args.Main, TagNameCodeview))
	b.WriteString(htmlCodeviewPreClose)
	b.WriteString(htmlCodeviewPaneClose)

	if args.Graph != StringValueEmpty {
		fmt.Fprintf(&b, htmlCodeviewGraphPane, args.ViewID, pane(SectionGraph))
		fmt.Fprintf(&b, htmlCodeviewImage, f.config.ImageURLPrefix, args.Graph)
		b.WriteString(htmlCodeviewPaneClose)
	}

	if args.Previous != StringValueEmpty {
		fmt.Fprintf(&b, htmlCodeviewDiffPane, args.ViewID, pane(SectionDiff))
		b.WriteString(f.Codediff(DiffViewIDPrefix+args.ViewID, args.Previous, args.Main, args.Lang))
		b.WriteString(htmlCodeviewPaneClose)
	}

	if args.PreviousGraph != StringValueEmpty {
		fmt.Fprintf(&b, htmlCodeviewPreviousGraphPane, args.ViewID, pane(SectionPreviousGraph))
		fmt.Fprintf(&b, htmlCodeviewPreviousGraphImage, f.config.ImageURLPrefix, args.PreviousGraph)
		b.WriteString(htmlCodeviewPaneClose)
	}

	b.WriteString(htmlCodeviewContentClose)
	return b.String()
}
