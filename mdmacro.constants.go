package mdmacro

import (
	"time"

	"github.com/itsatony/go-mdmacro/internal"
)

// Tag names
const (
	TagInclude   = internal.TagNameInclude
	TagCodediff  = internal.TagNameCodediff
	TagTogglable = internal.TagNameTogglable
	TagCodeview  = internal.TagNameCodeview
)

// Engine defaults
const (
	DefaultLang           = internal.DefaultLang
	DefaultCodeURLPrefix  = internal.DefaultCodeURLPrefix
	DefaultImageURLPrefix = internal.DefaultImageURLPrefix
	DefaultDiffHook       = internal.DefaultDiffHook
	DefaultMarkdownDir    = "markdown"
)

// DefaultIncludePaths are the include directories searched, in order,
// relative to the base directory.
var DefaultIncludePaths = []string{
	DefaultMarkdownDir,
	"templates",
	"code",
	"assets/code",
}

// Page constants
const (
	PageExtension     = ".md"
	PageHTMLExtension = ".html"
	TOCPlaceholder    = "[TOC]"
	MetavarTitle      = "title"
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Filesystem storage constants
const (
	FilesystemDirPermissions  = 0755
	FilesystemFilePermissions = 0644
)

// PostgreSQL storage defaults
const (
	PostgresTablePrefix            = "mdmacro_"
	PostgresDefaultMaxOpenConns    = 10
	PostgresDefaultMaxIdleConns    = 2
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// Build and watch defaults
const (
	DefaultBuildJobs     = 4
	DefaultWatchDebounce = 200 * time.Millisecond
	BuildOutputExtension = ".html"
)

// Metadata keys for errors
const (
	MetaKeyTag      = "tag"
	MetaKeyPage     = "page"
	MetaKeyPath     = "path"
	MetaKeyField    = "field"
	MetaKeyFilename = "filename"
)

// Log message constants
const (
	LogMsgEngineCreated      = "engine created"
	LogMsgResolveStart       = "resolving tags"
	LogMsgResolveComplete    = "tags resolved"
	LogMsgResolveFailed      = "tag resolution failed"
	LogMsgIncludeNotFound    = "include file not found"
	LogMsgIncludeRejected    = "include file name rejected"
	LogMsgIncludeFound       = "include file found"
	LogMsgPageRendered       = "page rendered"
	LogMsgPageRenderFailed   = "page render failed"
	LogMsgBuildStart         = "building pages"
	LogMsgBuildPageWritten   = "page written"
	LogMsgBuildComplete      = "build complete"
	LogMsgWatchStarted       = "watching for changes"
	LogMsgWatchEvent         = "change detected"
	LogMsgWatchRenderFailed  = "re-render failed"
	LogMsgWatchStopped       = "watcher stopped"
	LogMsgWatchError         = "watcher error"
	LogMsgWatchAddFailed     = "cannot watch directory"
	LogMsgStorageCloseFailed = "page storage close failed"
)

// Log field constants
const (
	LogFieldTag      = "tag"
	LogFieldFilename = "filename"
	LogFieldLabel    = "label"
	LogFieldRoot     = "root"
	LogFieldPage     = "page"
	LogFieldInLen    = "input_len"
	LogFieldOutLen   = "output_len"
	LogFieldCount    = "count"
	LogFieldJobs     = "jobs"
	LogFieldPath     = "path"
	LogFieldOp       = "op"
)
