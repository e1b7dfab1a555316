// Package mdmacro expands macro tags embedded in markdown-rendered HTML.
//
// Pages are written in markdown and may contain macro tags on lines of
// their own:
//
//	<<include snippet.html>>
//	<<codediff cd1 old.py new.py>>
//	<<togglable_output out1 run.log "Output of the run">>
//	<<codeview cv1 new.py previous=old.py graph=jobs.png>>
//
// Tags are resolved after markdown rendering, so the markers may reach the
// resolver entity-escaped ("&lt;&lt;") or wrapped in a paragraph. All of
// those forms are accepted.
//
// # Basic Usage
//
// Create an engine with the directories that hold included files:
//
//	engine := mdmacro.MustNew(
//	    mdmacro.WithBaseDir("/srv/site"),
//	    mdmacro.WithIncludePaths("markdown", "code"),
//	)
//	out, err := engine.Resolve(renderedHTML)
//
// # Resolution Order
//
// Tags are resolved one type at a time: include, codediff,
// togglable_output, then codeview. Each stage makes a single pass over the
// output of the previous one, so an included file may contain codeview
// tags, but an included file is never searched for further includes.
//
// # Error Handling
//
// A missing include file is not an error: the tag is replaced by a
// placeholder naming the file. A codeview with an unknown or ill-formed
// key=value attribute fails the whole call with a *MalformedTagError. A tag
// missing one of its required arguments is left untouched.
//
//	out, err := engine.Resolve(html)
//	if mdmacro.IsMalformedTagError(err) {
//	    // show an error page
//	}
//
// # Pages
//
// PageRenderer runs the whole pipeline for a stored markdown page: header
// metavars, markdown rendering with heading ids and a table of contents,
// then tag resolution.
//
//	storage, _ := mdmacro.OpenStorage("filesystem", "/srv/site/markdown")
//	renderer := mdmacro.NewPageRenderer(engine, storage)
//	page, err := renderer.Render(ctx, "index")
package mdmacro
