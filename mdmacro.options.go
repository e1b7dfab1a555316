package mdmacro

import (
	"io/fs"

	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	baseDir        string
	includePaths   []string
	includeFS      []fs.FS
	locator        Locator
	defaultLang    string
	codeURLPrefix  string
	imageURLPrefix string
	diffHook       string
	logger         *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	paths := make([]string, len(DefaultIncludePaths))
	copy(paths, DefaultIncludePaths)
	return &engineConfig{
		baseDir:        ".",
		includePaths:   paths,
		defaultLang:    DefaultLang,
		codeURLPrefix:  DefaultCodeURLPrefix,
		imageURLPrefix: DefaultImageURLPrefix,
		diffHook:       DefaultDiffHook,
		logger:         nil,
	}
}

// WithBaseDir sets the directory include paths are relative to.
// Default: "."
func WithBaseDir(dir string) Option {
	return func(c *engineConfig) {
		if dir != "" {
			c.baseDir = dir
		}
	}
}

// WithIncludePaths replaces the ordered list of include directories.
// The first directory holding a requested file wins.
// Default: markdown, templates, code, assets/code
func WithIncludePaths(paths ...string) Option {
	return func(c *engineConfig) {
		c.includePaths = append([]string(nil), paths...)
	}
}

// WithIncludeFS searches the given file systems, in order, instead of
// directories on disk. Takes precedence over WithIncludePaths.
func WithIncludeFS(roots ...fs.FS) Option {
	return func(c *engineConfig) {
		c.includeFS = append([]fs.FS(nil), roots...)
	}
}

// WithLocator sets a custom file locator. Takes precedence over
// WithIncludeFS and WithIncludePaths.
func WithLocator(locator Locator) Option {
	return func(c *engineConfig) {
		c.locator = locator
	}
}

// WithDefaultLang sets the language passed to the client-side diff hook
// when a tag does not name one.
// Default: "python"
func WithDefaultLang(lang string) Option {
	return func(c *engineConfig) {
		if lang != "" {
			c.defaultLang = lang
		}
	}
}

// WithCodeURLPrefix sets the URL prefix of codeview download links.
// Default: "/code/"
func WithCodeURLPrefix(prefix string) Option {
	return func(c *engineConfig) {
		if prefix != "" {
			c.codeURLPrefix = prefix
		}
	}
}

// WithImageURLPrefix sets the URL prefix of codeview graph images.
// Default: "/assets/code/"
func WithImageURLPrefix(prefix string) Option {
	return func(c *engineConfig) {
		if prefix != "" {
			c.imageURLPrefix = prefix
		}
	}
}

// WithDiffHook sets the client-side function that renders codediffs.
// Default: "r2lab_diff"
func WithDiffHook(name string) Option {
	return func(c *engineConfig) {
		if name != "" {
			c.diffHook = name
		}
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
