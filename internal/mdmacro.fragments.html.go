package internal

// HTML building blocks for generated fragments. Values are inserted
// unescaped: included files are trusted page assets.

// Codediff fragment
const (
	htmlCodediffHidden = "<pre id=\"%s\" style=\"display:none\">%s</pre>\n"
	htmlCodediffTarget = "<pre id=\"%s\" class=\"%s\"></pre>\n"
	htmlCodediffHook   = "<script>$(function(){%s(\"%s\", \"%s\");})</script>"
	CodediffClass      = "r2lab-diff"
)

// Togglable fragment
const (
	htmlTogglableHead = `
<div class="container">
  <div class="panel-group" id="togglable-%[1]s">
    <div class="panel panel-default">
      <div class="panel-heading">
        <h4 class="panel-title">
          <a data-toggle="collapse" data-parent="#togglable-%[1]s"
            href="#%[1]s-togglable-contents" class="panel-label togglable%[2]s">
`
	htmlTogglableHeader = `<code title="click to hide / show the output area">%s</code>`
	htmlTogglableBody   = `
            </a>
        </h4>
      </div><!--/.panel-heading -->
      <div id="%s-togglable-contents" class="panel-collapse collapse%s">
        <div class="panel-body">
          <pre><code>
`
	htmlTogglableTail = `
          </code></pre>
        </div><!--/.panel-body -->
      </div><!--/.panel-collapse -->
    </div><!-- /.panel -->
  </div><!-- /.panel-group -->
</div><!-- /.container -->
`
	togglableCollapsedLink = " collapsed"
	togglableExpandedBody  = " in"
)

// Codeview fragment
const (
	htmlCodeviewPillsOpen  = "<ul class=\"nav nav-pills\">\n"
	htmlCodeviewPillsClose = "</ul>"
	htmlCodeviewDownload   = `<li class="navbar-right">
 <a class="default-click" href="%[1]s%[2]s"
  download target="_blank" title="Download %[2]s">
  <span class='fa fa-cloud-download'></span> %[2]s
 </a>
</li>
`
	htmlCodeviewGraphPill = `<li class="%s">
 <a href="#view-%s-graph" title="Display jobs graph for %s">
  Graph <span class="fa fa-compass"></span>
 </a>
</li>`
	htmlCodeviewPlainPill = `<li class="%s">
<a href="#view-%s-plain" title="Display %[3]s">%[3]s</a></li>
`
	htmlCodeviewDiffPill = `<li class="%s">
 <a href="#view-%s-diff" title="Outline diffs
 from %[3]s to %[4]s">%[3]s ➾ %[4]s</a></li>
`
	htmlCodeviewPreviousGraphPill = `<li class="%s">
 <a href="#view-%s-previous-graph" title="Display graph for %[3]s">
 Graph for %[3]s</a></li>
`
	htmlCodeviewContentOpen  = "<div class=\"tab-content\" markdown=\"0\">\n"
	htmlCodeviewContentClose = "</div><!-- pills targets-->"
	htmlCodeviewPlainPane    = `<div id="view-%s-plain"
class="tab-pane fade %s" markdown="0">`
	htmlCodeviewPreOpen   = "<pre>\n"
	htmlCodeviewPreClose  = "</pre>\n"
	htmlCodeviewPaneClose = "</div>"
	htmlCodeviewGraphPane = `<div id="view-%s-graph"
class="tab-pane fade %s">`
	htmlCodeviewImage    = `<img src="%s%s" style="max-width:100%%;">`
	htmlCodeviewDiffPane = `<div id="view-%s-diff"
class="tab-pane fade %s" markdown="0">`
	htmlCodeviewPreviousGraphPane = `<div id="view-%s-previous-graph"
class="tab-pane fade %s">`
	htmlCodeviewPreviousGraphImage = `<img src="%s%s"
style="max-width:100%%;">`
)

// Codeview activation classes
const (
	codeviewPillActive = "active"
	codeviewPaneActive = "in active"
)
