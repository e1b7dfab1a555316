package mdmacro

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/itsatony/go-mdmacro/internal"
	"go.uber.org/zap"
)

// Locator resolves a bare filename to its content.
// label names the calling tag and only appears in the not-found placeholder.
type Locator interface {
	Locate(filename, label string) string
}

// DirLocator searches an ordered list of file systems for included files.
// It only reads files and is safe for concurrent use.
type DirLocator struct {
	roots  []fs.FS
	names  []string
	logger *zap.Logger
}

// NewDirLocator creates a locator over the given roots, searched in order.
func NewDirLocator(roots []fs.FS, logger *zap.Logger) *DirLocator {
	names := make([]string, len(roots))
	for i := range roots {
		names[i] = fmt.Sprintf("fs[%d]", i)
	}
	return newDirLocator(roots, names, logger)
}

// NewDirLocatorFromPaths creates a locator over directories relative to baseDir.
// Directories that do not exist are kept; they simply never match.
func NewDirLocatorFromPaths(baseDir string, dirs []string, logger *zap.Logger) *DirLocator {
	roots := make([]fs.FS, len(dirs))
	names := make([]string, len(dirs))
	for i, dir := range dirs {
		full := dir
		if !filepath.IsAbs(dir) {
			full = filepath.Join(baseDir, dir)
		}
		roots[i] = os.DirFS(full)
		names[i] = full
	}
	return newDirLocator(roots, names, logger)
}

func newDirLocator(roots []fs.FS, names []string, logger *zap.Logger) *DirLocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirLocator{
		roots:  append([]fs.FS(nil), roots...),
		names:  names,
		logger: logger,
	}
}

// Roots returns a description of each searched root, in search order.
func (l *DirLocator) Roots() []string {
	return append([]string(nil), l.names...)
}

// Locate returns the content of the first regular file named filename in
// the search roots. An empty filename yields "". A name that is absolute,
// climbs with "..", or is not found anywhere yields the placeholder
// "**include file {filename} not found in {label} tag**".
func (l *DirLocator) Locate(filename, label string) string {
	if filename == "" {
		return ""
	}

	if !validIncludeName(filename) {
		l.logger.Warn(LogMsgIncludeRejected,
			zap.String(LogFieldFilename, filename),
			zap.String(LogFieldLabel, label),
		)
		return NotFoundPlaceholder(filename, label)
	}

	for i, root := range l.roots {
		content, ok := readRegular(root, filename)
		if !ok {
			continue
		}
		l.logger.Debug(LogMsgIncludeFound,
			zap.String(LogFieldFilename, filename),
			zap.String(LogFieldRoot, l.names[i]),
		)
		return content
	}

	l.logger.Warn(LogMsgIncludeNotFound,
		zap.String(LogFieldFilename, filename),
		zap.String(LogFieldLabel, label),
	)
	return NotFoundPlaceholder(filename, label)
}

// NotFoundPlaceholder returns the text that stands in for a missing include.
func NotFoundPlaceholder(filename, label string) string {
	return fmt.Sprintf(internal.NotFoundFormat, filename, label)
}

// validIncludeName rejects absolute names, ".." segments and backslashes.
func validIncludeName(name string) bool {
	if strings.HasPrefix(name, "/") || strings.Contains(name, `\`) {
		return false
	}
	return fs.ValidPath(name)
}

// readRegular reads name from root if it is a regular file.
func readRegular(root fs.FS, name string) (string, bool) {
	info, err := fs.Stat(root, name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	data, err := fs.ReadFile(root, name)
	if err != nil {
		return "", false
	}
	return string(data), true
}
