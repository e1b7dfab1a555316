package internal

// Tag name constants
const (
	TagNameInclude   = "include"
	TagNameCodediff  = "codediff"
	TagNameTogglable = "togglable_output"
	TagNameCodeview  = "codeview"
)

// PipelineOrder is the fixed order in which tag types are resolved.
// Each stage sees the output of the previous one.
var PipelineOrder = []string{
	TagNameInclude,
	TagNameCodediff,
	TagNameTogglable,
	TagNameCodeview,
}

// Canonical markers used in tag grammars before expansion
const (
	MarkerOpen  = "<<"
	MarkerClose = ">>"
)

// Expanded marker alternatives. Each of the two characters of a marker is
// matched independently so mixed forms like "&lt;<" are accepted.
const (
	MarkerOpenExpanded  = `(?:<p>)?(?:&lt;|<)(?:&lt;|<)`
	MarkerCloseExpanded = `(?:&gt;|>)(?:&gt;|>)(?:</p>)?`
)

// QuoteExpanded matches a double quote raw or entity-escaped, as
// markdown renderers that escape quotes in text leave it.
const QuoteExpanded = `(?:"|&quot;)`

// Tag grammars, written with canonical markers
const (
	PatternInclude = `<<\s*include\s+(?P<file>\S+)\s*>>\s*\n`

	PatternCodediff = `<<\s*codediff\s+(?P<viewid>\S+)` +
		`\s+(?P<file1>\S+)\s+(?P<file2>\S+)\s*>>\s*\n`

	PatternTogglable = `<<\s*togglable_output\s+(?P<viewid>\S+)` +
		`\s+(?P<file>\S+)\s+` + QuoteExpanded + `(?P<header>[^"]*?)` + QuoteExpanded + `\s*>>\s*\n`

	PatternCodeview = `<<\s*codeview\s+(?P<viewid>\S+)\s+` +
		`(?P<main>\S+)(?P<attrs>(?:\s+\S+=\S+)*)\s*>>\s*\n`

	// The key is greedy: in "a=b=c" the key is "a=b", which no allowed
	// key matches.
	PatternCodeviewAttr = `^(?P<key>\S+)=(?P<value>\S+)$`
)

// Capture group names
const (
	GroupFile   = "file"
	GroupFile1  = "file1"
	GroupFile2  = "file2"
	GroupViewID = "viewid"
	GroupHeader = "header"
	GroupMain   = "main"
	GroupAttrs  = "attrs"
	GroupKey    = "key"
	GroupValue  = "value"
)

// Fragment defaults
const (
	DefaultLang           = "python"
	DefaultCodeURLPrefix  = "/code/"
	DefaultImageURLPrefix = "/assets/code/"
	DefaultDiffHook       = "r2lab_diff"
	DiffViewIDPrefix      = "diff-"
)

// Codediff element id suffixes
const (
	CodediffSuffixA    = "_a"
	CodediffSuffixB    = "_b"
	CodediffSuffixDiff = "_diff"
)

// NotFoundFormat is the placeholder emitted when an included file cannot be found.
const NotFoundFormat = "**include file %s not found in %s tag**"

// Error message constants
const (
	ErrMsgMalformedCodeviewPair = "ill-formed tag in codeview"
	ErrMsgCodeviewKeyNotAllowed = "not allowed"
	ErrMsgNilTagResolver        = "tag resolver cannot be nil"
	ErrMsgEmptyTagName          = "tag resolver name cannot be empty"
	ErrMsgTagResolverExists     = "tag resolver already registered"
	ErrMsgTagResolverMissing    = "no tag resolver registered"
)

// Error format strings
const (
	ErrFmtTagMessage    = "%s: %s"
	ErrFmtMalformedTag  = "%s %s"
	ErrFmtKeyNotAllowed = "%s %s - %s %s"
	ErrFmtStageError    = "%s: %v"
)

// Log message constants
const (
	LogMsgRegistryCreated  = "tag registry created"
	LogMsgTagRegistered    = "tag resolver registered"
	LogMsgTagCollision     = "tag resolver registration collision - first-come-wins"
	LogMsgStageStart       = "resolving tag stage"
	LogMsgStageComplete    = "tag stage complete"
	LogMsgStageFailed      = "tag stage failed"
	LogMsgPipelineStart    = "starting tag pipeline"
	LogMsgPipelineComplete = "tag pipeline complete"
)

// Log field constants
const (
	LogFieldTagName  = "tag_name"
	LogFieldExisting = "existing"
	LogFieldMatches  = "matches"
	LogFieldInLen    = "input_len"
	LogFieldOutLen   = "output_len"
)

// String constants
const (
	StringValueEmpty = ""
)
