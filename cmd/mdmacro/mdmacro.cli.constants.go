package main

// Command names
const (
	CmdNameResolve = "resolve"
	CmdNameRender  = "render"
	CmdNameBuild   = "build"
	CmdNameWatch   = "watch"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagInput   = "input"
	FlagOutput  = "output"
	FlagConfig  = "config"
	FlagPage    = "page"
	FlagOutDir  = "out-dir"
	FlagJobs    = "jobs"
	FlagFormat  = "format"
	FlagQuiet   = "quiet"
	FlagVerbose = "verbose"
)

// Flag names - short form
const (
	FlagInputShort   = "i"
	FlagOutputShort  = "o"
	FlagConfigShort  = "c"
	FlagPageShort    = "p"
	FlagOutDirShort  = "O"
	FlagJobsShort    = "j"
	FlagFormatShort  = "F"
	FlagQuietShort   = "q"
	FlagVerboseShort = "v"
)

// Flag default values
const (
	FlagDefaultInput  = "-" // stdin
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatHTML = "html"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess      = 0
	ExitCodeError        = 1
	ExitCodeUsageError   = 2
	ExitCodeMalformedTag = 3
	ExitCodeInputError   = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgInvalidFlags      = "invalid arguments"
	ErrMsgMissingPage       = "page name required"
	ErrMsgMissingOutDir     = "output directory required"
	ErrMsgMissingOutputFile = "output file required"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgLoadConfigFailed  = "failed to load config"
	ErrMsgEngineFailed      = "failed to create engine"
	ErrMsgStorageFailed     = "failed to open page storage"
	ErrMsgResolveFailed     = "tag resolution failed"
	ErrMsgRenderFailed      = "page rendering failed"
	ErrMsgBuildFailed       = "site build failed"
	ErrMsgWatchFailed       = "watch failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgInvalidJobs       = "jobs must be positive"
)

// Help text templates
const (
	HelpMainUsage = `go-mdmacro - Markdown macro tag resolver CLI

Usage:
    mdmacro <command> [options]

Commands:
    resolve     Resolve macro tags in rendered HTML
    render      Render one markdown page to HTML
    build       Render every stored page into a directory
    watch       Re-render a page whenever its sources change
    version     Show version information
    help        Show help for a command

Use "mdmacro help <command>" for more information about a command.`

	HelpResolveUsage = `Resolve macro tags in rendered HTML

Usage:
    mdmacro resolve [options]

Options:
    -i, --input <file>      HTML input (default: stdin)
    -o, --output <file>     Output file (default: stdout)
    -c, --config <file>     YAML config file (include paths, URL prefixes)
    -v, --verbose           Log to stderr

Examples:
    mdmacro resolve -i page.html -o page.resolved.html
    pandoc tuto.md | mdmacro resolve -c mdmacro.yaml`

	HelpRenderUsage = `Render one markdown page to HTML

Usage:
    mdmacro render [options]

Options:
    -p, --page <name>       Page name: "tuto", "tuto.md" or "tuto.html"
    -c, --config <file>     YAML config file
    -o, --output <file>     Output file (default: stdout)
    -F, --format <format>   Output format: html, json (default: html)
    -v, --verbose           Log to stderr

Examples:
    mdmacro render -p tuto-100
    mdmacro render -p tuto-100 -c mdmacro.yaml -o tuto-100.html
    mdmacro render -p tuto-100 -F json`

	HelpBuildUsage = `Render every stored page into a directory

Usage:
    mdmacro build [options]

Options:
    -O, --out-dir <dir>     Output directory (required)
    -c, --config <file>     YAML config file
    -j, --jobs <n>          Concurrent renders (default: 4)
    -q, --quiet             Suppress the summary line
    -v, --verbose           Log to stderr

Examples:
    mdmacro build -O site
    mdmacro build -c mdmacro.yaml -O /srv/www -j 8`

	HelpWatchUsage = `Re-render a page whenever its sources change

Usage:
    mdmacro watch [options]

Options:
    -p, --page <name>       Page name
    -o, --output <file>     Output file (required)
    -c, --config <file>     YAML config file
    -v, --verbose           Log to stderr

Watches the markdown directory and every include directory. Stops on
interrupt.

Examples:
    mdmacro watch -p tuto-100 -o /tmp/tuto-100.html`

	HelpVersionUsage = `Show version information

Usage:
    mdmacro version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    mdmacro help [command]

Commands:
    resolve     Show help for resolve command
    render      Show help for render command
    build       Show help for build command
    watch       Show help for watch command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-mdmacro version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
	VersionsFileName    = "versions.yaml"
)

// Command output templates
const (
	BuildTextSummary = "built %d page(s) into %s"
	WatchTextWritten = "wrote %s"
)

// CLI metadata
const (
	CLIName        = "mdmacro"
	CLIDescription = "Markdown macro tag resolver CLI"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
