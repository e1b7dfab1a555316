package mdmacro

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config field names, used in configuration errors
const (
	FieldBaseDir       = "base_dir"
	FieldIncludePaths  = "include_paths"
	FieldMarkdownDir   = "markdown_dir"
	FieldStorageDriver = "storage.driver"
)

// Config is the file form of an engine and page storage setup.
//
//	base_dir: /srv/site
//	include_paths: [markdown, templates, code, assets/code]
//	markdown_dir: markdown
//	default_lang: python
//	storage:
//	  driver: filesystem
type Config struct {
	BaseDir        string        `yaml:"base_dir"`
	IncludePaths   []string      `yaml:"include_paths"`
	MarkdownDir    string        `yaml:"markdown_dir"`
	DefaultLang    string        `yaml:"default_lang"`
	CodeURLPrefix  string        `yaml:"code_url_prefix"`
	ImageURLPrefix string        `yaml:"image_url_prefix"`
	DiffHook       string        `yaml:"diff_hook"`
	Storage        StorageConfig `yaml:"storage"`
}

// StorageConfig selects the page storage driver.
// An empty DSN for the filesystem driver means the markdown directory.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		BaseDir:        ".",
		IncludePaths:   append([]string(nil), DefaultIncludePaths...),
		MarkdownDir:    DefaultMarkdownDir,
		DefaultLang:    DefaultLang,
		CodeURLPrefix:  DefaultCodeURLPrefix,
		ImageURLPrefix: DefaultImageURLPrefix,
		DiffHook:       DefaultDiffHook,
		Storage: StorageConfig{
			Driver: StorageDriverNameFilesystem,
		},
	}
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, NewConfigError(ErrMsgConfigParseFailed, "", "", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. A relative base_dir is taken
// relative to the directory of the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError(ErrMsgConfigReadFailed, "", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}
	return cfg, nil
}

// Validate checks the settings that have no usable fallback.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return NewConfigError(ErrMsgInvalidConfigValue, FieldBaseDir, "", nil)
	}
	for _, p := range c.IncludePaths {
		if p == "" {
			return NewConfigError(ErrMsgEmptyIncludePath, FieldIncludePaths, "", nil)
		}
	}
	if c.MarkdownDir == "" {
		return NewConfigError(ErrMsgInvalidConfigValue, FieldMarkdownDir, "", nil)
	}
	if c.Storage.Driver == "" {
		return NewConfigError(ErrMsgInvalidConfigValue, FieldStorageDriver, "", nil)
	}
	return nil
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions(logger *zap.Logger) []Option {
	return []Option{
		WithBaseDir(c.BaseDir),
		WithIncludePaths(c.IncludePaths...),
		WithDefaultLang(c.DefaultLang),
		WithCodeURLPrefix(c.CodeURLPrefix),
		WithImageURLPrefix(c.ImageURLPrefix),
		WithDiffHook(c.DiffHook),
		WithLogger(logger),
	}
}

// NewEngine creates an engine from the configuration.
func (c *Config) NewEngine(logger *zap.Logger) (*Engine, error) {
	return New(c.EngineOptions(logger)...)
}

// MarkdownPath returns the directory holding markdown page sources.
func (c *Config) MarkdownPath() string {
	if filepath.IsAbs(c.MarkdownDir) {
		return c.MarkdownDir
	}
	return filepath.Join(c.BaseDir, c.MarkdownDir)
}

// IncludeDirs returns the include directories resolved against BaseDir.
func (c *Config) IncludeDirs() []string {
	dirs := make([]string, len(c.IncludePaths))
	for i, p := range c.IncludePaths {
		if filepath.IsAbs(p) {
			dirs[i] = p
		} else {
			dirs[i] = filepath.Join(c.BaseDir, p)
		}
	}
	return dirs
}

// OpenStorage opens the configured page storage. The filesystem driver
// defaults to the markdown directory.
func (c *Config) OpenStorage() (PageStorage, error) {
	dsn := c.Storage.DSN
	if dsn == "" && c.Storage.Driver == StorageDriverNameFilesystem {
		dsn = c.MarkdownPath()
	}
	return OpenStorage(c.Storage.Driver, dsn)
}

// WatchDirs returns the directories whose changes affect rendered pages:
// the include directories and the markdown directory.
func (c *Config) WatchDirs() []string {
	return append(c.IncludeDirs(), c.MarkdownPath())
}
