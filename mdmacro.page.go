package mdmacro

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Page is one rendered markdown page.
type Page struct {
	// Name is the normalized page name, e.g. "tuto-100.md".
	Name string

	// Title is the "title" metavar, defaulting to Name without ".md".
	Title string

	// Metavars holds the header fields, "title" always included.
	Metavars map[string]string

	// Markdown is the body after the metavar header.
	Markdown string

	// HTML is the rendered body with tags resolved and [TOC] substituted.
	HTML string

	// TOC is the nested heading list, "" for a page without headings.
	TOC string
}

// PageRenderer renders stored markdown pages through an Engine.
type PageRenderer struct {
	engine   *Engine
	storage  PageStorage
	markdown *MarkdownRenderer
	logger   *zap.Logger
}

// PageOption configures a PageRenderer.
type PageOption func(*PageRenderer)

// WithPageLogger sets the renderer logger. The engine logger is used by default.
func WithPageLogger(logger *zap.Logger) PageOption {
	return func(r *PageRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMarkdownRenderer replaces the default goldmark renderer.
func WithMarkdownRenderer(md *MarkdownRenderer) PageOption {
	return func(r *PageRenderer) {
		if md != nil {
			r.markdown = md
		}
	}
}

// NewPageRenderer creates a page renderer. storage may be nil when only
// RenderSource is used.
func NewPageRenderer(engine *Engine, storage PageStorage, opts ...PageOption) *PageRenderer {
	r := &PageRenderer{
		engine:   engine,
		storage:  storage,
		markdown: NewMarkdownRenderer(),
		logger:   engine.logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render loads the named page from storage and renders it.
// "tuto", "tuto.md" and "tuto.html" all name the same page.
func (r *PageRenderer) Render(ctx context.Context, name string) (*Page, error) {
	if name == "" {
		return nil, NewEmptyPageNameError()
	}
	if r.storage == nil {
		return nil, NewConfigError(ErrMsgNilPageStorage, FieldStorageDriver, "", nil)
	}

	name = NormalizePageName(name)
	stored, err := r.storage.Get(ctx, name)
	if err != nil {
		r.logger.Warn(LogMsgPageRenderFailed, zap.String(LogFieldPage, name), zap.Error(err))
		return nil, err
	}

	return r.RenderSource(name, stored.Source)
}

// RenderSource renders a page from its raw source: metavar header, then
// markdown, then tag resolution, then [TOC] substitution. Metavar lines
// never reach the tag resolver.
func (r *PageRenderer) RenderSource(name, source string) (*Page, error) {
	if name == "" {
		return nil, NewEmptyPageNameError()
	}
	name = NormalizePageName(name)

	metavars, body := ParseMetavars(source)
	if _, ok := metavars[MetavarTitle]; !ok {
		metavars[MetavarTitle] = pageTitle(name)
	}

	rendered, toc, err := r.markdown.Render(body)
	if err != nil {
		return nil, NewMarkdownError(name, err)
	}

	resolved, err := r.engine.Resolve(rendered)
	if err != nil {
		r.logger.Warn(LogMsgPageRenderFailed, zap.String(LogFieldPage, name), zap.Error(err))
		return nil, err
	}

	if toc != "" {
		resolved = strings.ReplaceAll(resolved, TOCPlaceholder, toc)
	}

	r.logger.Debug(LogMsgPageRendered,
		zap.String(LogFieldPage, name),
		zap.Int(LogFieldOutLen, len(resolved)),
	)

	return &Page{
		Name:     name,
		Title:    metavars[MetavarTitle],
		Metavars: metavars,
		Markdown: body,
		HTML:     resolved,
		TOC:      toc,
	}, nil
}

// Storage returns the page storage, which may be nil.
func (r *PageRenderer) Storage() PageStorage {
	return r.storage
}
