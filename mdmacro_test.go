package mdmacro

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIncludeFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.txt":       {Data: []byte("HELLO\n")},
		"v1.py":           {Data: []byte("print('one')\n")},
		"v2.py":           {Data: []byte("print('two')\n")},
		"out.txt":         {Data: []byte("line 1\nline 2\n")},
		"jobs.png":        {Data: []byte("png")},
		"nested.md":       {Data: []byte("<<codediff nd v1.py v2.py>>\n")},
		"sub/section.txt": {Data: []byte("SECTION")},
	}
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithIncludeFS(testIncludeFS())}, opts...)
	engine, err := New(opts...)
	require.NoError(t, err)
	return engine
}

func TestNew_Defaults(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	assert.Equal(t, []string{TagInclude, TagCodediff, TagTogglable, TagCodeview}, engine.Tags())

	loc, ok := engine.Locator().(*DirLocator)
	require.True(t, ok)
	assert.Len(t, loc.Roots(), len(DefaultIncludePaths))
}

func TestNew_InvalidIncludeConfig(t *testing.T) {
	t.Run("empty include path", func(t *testing.T) {
		_, err := New(WithIncludePaths("markdown", ""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEmptyIncludePath)
	})

	t.Run("nil file system", func(t *testing.T) {
		_, err := New(WithIncludeFS(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNilLocator)

		var custom *cuserr.CustomError
		require.ErrorAs(t, err, &custom)
		field, ok := custom.GetMetadata(MetaKeyField)
		assert.True(t, ok)
		assert.Equal(t, FieldIncludePaths, field)
	})
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(WithIncludePaths(""))
	})
	assert.NotPanics(t, func() {
		MustNew()
	})
}

func TestEngine_Resolve_Identity(t *testing.T) {
	engine := newTestEngine(t)

	inputs := []string{
		"",
		"<h1>Title</h1>\n<p>No tags here.</p>\n",
		"<p>a &lt;&lt; b &gt;&gt; c</p>\n",
		"<<include>>\n",
		"<<unknown foo.txt>>\n",
		"<<togglable_output v out.txt no-quotes>>\n",
	}
	for _, in := range inputs {
		out, err := engine.Resolve(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestEngine_Resolve_Include(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name  string
		input string
	}{
		{"raw markers", "<<include hello.txt>>\n"},
		{"escaped markers", "&lt;&lt;include hello.txt&gt;&gt;\n"},
		{"markdown mangled", "<p>&lt;<include hello.txt>&gt;</p>\n"},
		{"mixed markers", "<p><&lt;include hello.txt&gt;></p>\n"},
		{"inner whitespace", "<< include   hello.txt >>  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.Resolve("<p>before</p>\n" + tt.input + "<p>after</p>\n")
			require.NoError(t, err)
			assert.Equal(t, "<p>before</p>\nHELLO\n<p>after</p>\n", out)
		})
	}
}

func TestEngine_Resolve_IncludeSubdirectory(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.Resolve("<<include sub/section.txt>>\n")
	require.NoError(t, err)
	assert.Equal(t, "SECTION", out)
}

func TestEngine_Resolve_IncludeNotFound(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.Resolve("<<include missing.txt>>\n")
	require.NoError(t, err)
	assert.Equal(t, "**include file missing.txt not found in include tag**", out)

	out, err = engine.Resolve("<<include ../etc/passwd>>\n")
	require.NoError(t, err)
	assert.Equal(t, "**include file ../etc/passwd not found in include tag**", out)
}

func TestEngine_Resolve_IncludedTagsResolveInLaterStages(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.Resolve("<<include nested.md>>\n")
	require.NoError(t, err)
	assert.Contains(t, out, `<pre id="nd_a" style="display:none">print('one')`)
	assert.Contains(t, out, `<pre id="nd_b" style="display:none">print('two')`)
	assert.Contains(t, out, `<pre id="nd_diff" class="r2lab-diff"></pre>`)
	assert.Contains(t, out, `r2lab_diff("nd", "python")`)
}

func TestEngine_Resolve_Codediff(t *testing.T) {
	engine := newTestEngine(t, WithDefaultLang("go"), WithDiffHook("show_diff"))

	out, err := engine.Resolve("&lt;&lt;codediff d1 v1.py v2.py&gt;&gt;\n")
	require.NoError(t, err)

	want := "<pre id=\"d1_a\" style=\"display:none\">print('one')\n</pre>\n" +
		"<pre id=\"d1_b\" style=\"display:none\">print('two')\n</pre>\n" +
		"<pre id=\"d1_diff\" class=\"r2lab-diff\"></pre>\n" +
		"<script>$(function(){show_diff(\"d1\", \"go\");})</script>"
	assert.Equal(t, want, out)
}

func TestEngine_Resolve_Togglable(t *testing.T) {
	engine := newTestEngine(t)

	in := "<p>&lt;<togglable_output t1 out.txt \"see the output\">&gt;</p>\n"
	out, err := engine.Resolve(in)
	require.NoError(t, err)

	assert.Contains(t, out, `id="togglable-t1"`)
	assert.Contains(t, out, `href="#t1-togglable-contents" class="panel-label togglable collapsed"`)
	assert.Contains(t, out, `<code title="click to hide / show the output area">see the output</code>`)
	assert.Contains(t, out, `<div id="t1-togglable-contents" class="panel-collapse collapse">`)
	assert.Contains(t, out, "<pre><code>\nline 1\nline 2\n")

	again, err := engine.Resolve(out)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestEngine_Resolve_CodeviewMainOnly(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.Resolve("<<codeview v v2.py>>\n")
	require.NoError(t, err)

	assert.Contains(t, out, `href="/code/v2.py"`)
	assert.Contains(t, out, "<div id=\"view-v-plain\"\nclass=\"tab-pane fade in active\"")
	assert.Contains(t, out, "print('two')")
	assert.NotContains(t, out, "view-v-diff")
	assert.NotContains(t, out, "view-v-graph")
}

func TestEngine_Resolve_CodeviewWithPrevious(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.Resolve("<<codeview v v2.py previous=v1.py>>\n")
	require.NoError(t, err)

	assert.Contains(t, out, "<div id=\"view-v-diff\"\nclass=\"tab-pane fade in active\"")
	assert.Contains(t, out, "<div id=\"view-v-plain\"\nclass=\"tab-pane fade \"")
	assert.Contains(t, out, `<pre id="diff-v_a" style="display:none">print('one')`)
	assert.Contains(t, out, `<pre id="diff-v_b" style="display:none">print('two')`)
	assert.Contains(t, out, `<pre id="diff-v_diff" class="r2lab-diff"></pre>`)
	assert.Contains(t, out, "v1.py ➾ v2.py")
}

func TestEngine_Resolve_CodeviewSelectedAndGraphs(t *testing.T) {
	engine := newTestEngine(t, WithImageURLPrefix("/img/"))

	out, err := engine.Resolve(
		"<<codeview v v2.py previous=v1.py graph=jobs.png previous_graph=old.png selected=graph lang=bash>>\n")
	require.NoError(t, err)

	assert.Contains(t, out, "<div id=\"view-v-graph\"\nclass=\"tab-pane fade in active\"")
	assert.Contains(t, out, "<div id=\"view-v-diff\"\nclass=\"tab-pane fade \"")
	assert.Contains(t, out, `<img src="/img/jobs.png"`)
	assert.Contains(t, out, "view-v-previous-graph")
	assert.Contains(t, out, `r2lab_diff("diff-v", "bash")`)
}

func TestEngine_Resolve_CodeviewSelectedDisabledSection(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.Resolve("<<codeview v v2.py selected=diff>>\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "in active")
}

func TestEngine_Resolve_MalformedCodeview(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Resolve("<p>ok</p>\n<<codeview v v2.py bogus=1>>\n")
	require.Error(t, err)
	assert.True(t, IsMalformedTagError(err))
	assert.Contains(t, err.Error(), "bogus=1")

	var malformed *MalformedTagError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, TagCodeview, malformed.Tag)
	assert.Equal(t, "bogus", malformed.Key)
}

func TestEngine_Resolve_CodeviewValueWithEqualsSign(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Resolve("<<codeview v v2.py previous=v1.py=x>>\n")
	require.Error(t, err)
	assert.True(t, IsMalformedTagError(err))

	var malformed *MalformedTagError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "previous=v1.py=x", malformed.Pair)
}

func TestEngine_Resolve_CodeviewAttrWithoutEqualsIsNotATag(t *testing.T) {
	engine := newTestEngine(t)

	in := "<<codeview v v2.py previous>>\n"
	out, err := engine.Resolve(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEngine_Resolve_PipelineOrder(t *testing.T) {
	engine := newTestEngine(t)

	// one of each, each on its own line
	in := strings.Join([]string{
		"<<codeview cv v2.py>>",
		"<<togglable_output tg out.txt \"h\">>",
		"<<codediff cd v1.py v2.py>>",
		"<<include hello.txt>>",
		"",
	}, "\n")

	out, err := engine.Resolve(in)
	require.NoError(t, err)

	assert.NotContains(t, out, "<<")
	assert.Less(t, strings.Index(out, "view-cv-plain"), strings.Index(out, "togglable-tg"))
	assert.Less(t, strings.Index(out, "togglable-tg"), strings.Index(out, "cd_diff"))
	assert.True(t, strings.HasSuffix(out, "HELLO\n"))
}

func TestEngine_ResolveTag(t *testing.T) {
	engine := newTestEngine(t)

	in := "<<include hello.txt>>\n<<codediff d v1.py v2.py>>\n"

	out, err := engine.ResolveTag(TagInclude, in)
	require.NoError(t, err)
	assert.Equal(t, "HELLO\n<<codediff d v1.py v2.py>>\n", out)

	_, err = engine.ResolveTag("nope", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownTag)

	_, err = engine.ResolveTag(TagCodeview, "<<codeview v a.py nope=1>>\n")
	require.Error(t, err)
	assert.True(t, IsMalformedTagError(err))
}

func TestEngine_WithLocator(t *testing.T) {
	engine, err := New(WithLocator(staticLocator("STATIC")))
	require.NoError(t, err)

	out, err := engine.Resolve("<<include anything.txt>>\n")
	require.NoError(t, err)
	assert.Equal(t, "STATIC", out)
}

func TestEngine_WithCodeURLPrefix(t *testing.T) {
	engine := newTestEngine(t, WithCodeURLPrefix("https://example.org/src/"))

	out, err := engine.Resolve("<<codeview v v2.py>>\n")
	require.NoError(t, err)
	assert.Contains(t, out, `href="https://example.org/src/v2.py"`)
}

type staticLocator string

func (s staticLocator) Locate(filename, label string) string {
	return string(s)
}
