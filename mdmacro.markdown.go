package mdmacro

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	goldhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// attrID is the attribute goldmark stores generated heading ids under.
const attrID = "id"

// MarkdownRenderer turns markdown into HTML and collects a table of
// contents from its headings.
//
// Raw HTML is passed through, which tag resolution depends on: a line such
// as "<<include foo.py>>" reaches the resolver as "<p>&lt;<include foo.py>&gt;</p>"
// rather than being dropped.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates a renderer with automatic heading ids.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(goldhtml.WithUnsafe()),
		),
	}
}

// Render converts source to HTML. toc is a nested <ul> linking every
// heading, or "" when there are none.
func (r *MarkdownRenderer) Render(source string) (out string, toc string, err error) {
	src := []byte(source)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return "", "", err
	}

	return buf.String(), renderTOC(collectHeadings(doc, src)), nil
}

type tocEntry struct {
	level int
	id    string
	title string
}

func collectHeadings(doc ast.Node, src []byte) []tocEntry {
	var entries []tocEntry
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		entry := tocEntry{level: heading.Level, title: nodeText(heading, src)}
		if v, ok := heading.AttributeString(attrID); ok {
			if id, ok := v.([]byte); ok {
				entry.id = string(id)
			}
		}
		entries = append(entries, entry)
		return ast.WalkSkipChildren, nil
	})
	return entries
}

// nodeText concatenates the plain text below n.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(nodeText(c, src))
		}
	}
	return b.String()
}

// renderTOC nests entries by heading level. A heading shallower than the
// first one is placed at the outermost level.
func renderTOC(entries []tocEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	var levels []int
	for _, e := range entries {
		if len(levels) == 0 || e.level > levels[len(levels)-1] {
			b.WriteString("<ul>\n")
			levels = append(levels, e.level)
		} else {
			b.WriteString("</li>\n")
			for len(levels) > 1 && e.level < levels[len(levels)-1] {
				levels = levels[:len(levels)-1]
				b.WriteString("</ul></li>\n")
			}
		}
		fmt.Fprintf(&b, `<li><a href="#%s">%s</a>`, html.EscapeString(e.id), html.EscapeString(e.title))
	}
	b.WriteString("</li>\n")
	for len(levels) > 1 {
		levels = levels[:len(levels)-1]
		b.WriteString("</ul></li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
