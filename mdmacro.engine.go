package mdmacro

import (
	"errors"

	"github.com/itsatony/go-mdmacro/internal"
	"go.uber.org/zap"
)

// Engine resolves macro tags in rendered HTML.
// It is immutable after New and safe for concurrent use.
type Engine struct {
	registry *internal.Registry
	pipeline *internal.Pipeline
	locator  Locator
	config   *engineConfig
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	locator, err := buildLocator(config, logger)
	if err != nil {
		return nil, err
	}

	fragments := internal.NewFragments(locator, internal.FragmentConfig{
		CodeURLPrefix:  config.codeURLPrefix,
		ImageURLPrefix: config.imageURLPrefix,
		DiffHook:       config.diffHook,
		DefaultLang:    config.defaultLang,
	})

	registry := internal.NewRegistry(logger)
	internal.RegisterBuiltins(registry, fragments)

	logger.Debug(LogMsgEngineCreated)
	return &Engine{
		registry: registry,
		pipeline: internal.NewPipeline(registry, internal.PipelineOrder, logger),
		locator:  locator,
		config:   config,
		logger:   logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// buildLocator picks the locator by precedence: explicit locator, file
// systems, then directories on disk.
func buildLocator(config *engineConfig, logger *zap.Logger) (Locator, error) {
	if config.locator != nil {
		return config.locator, nil
	}
	if len(config.includeFS) > 0 {
		for _, root := range config.includeFS {
			if root == nil {
				return nil, NewConfigError(ErrMsgNilLocator, FieldIncludePaths, "", nil)
			}
		}
		return NewDirLocator(config.includeFS, logger), nil
	}
	for _, p := range config.includePaths {
		if p == "" {
			return nil, NewConfigError(ErrMsgEmptyIncludePath, FieldIncludePaths, "", nil)
		}
	}
	return NewDirLocatorFromPaths(config.baseDir, config.includePaths, logger), nil
}

// Resolve replaces every recognized tag in html, one tag type at a time:
// include, codediff, togglable_output, then codeview.
// Text without tags is returned unchanged. A malformed codeview attribute
// fails the call with a *MalformedTagError.
func (e *Engine) Resolve(html string) (string, error) {
	e.logger.Debug(LogMsgResolveStart, zap.Int(LogFieldInLen, len(html)))

	out, err := e.pipeline.Run(html)
	if err != nil {
		return "", e.wrapError(err)
	}

	e.logger.Debug(LogMsgResolveComplete, zap.Int(LogFieldOutLen, len(out)))
	return out, nil
}

// ResolveTag runs a single resolution stage for tagName over html.
func (e *Engine) ResolveTag(tagName, html string) (string, error) {
	if !e.registry.Has(tagName) {
		return "", NewUnknownTagError(tagName)
	}
	out, _, err := e.pipeline.RunStage(tagName, html)
	if err != nil {
		return "", e.wrapError(&internal.StageError{Tag: tagName, Cause: err})
	}
	return out, nil
}

// wrapError hands malformed tags back as-is so callers can inspect them,
// and wraps anything else with the failing tag.
func (e *Engine) wrapError(err error) error {
	var malformed *MalformedTagError
	if errors.As(err, &malformed) {
		e.logger.Debug(LogMsgResolveFailed,
			zap.String(LogFieldTag, malformed.Tag),
			zap.Error(err),
		)
		return malformed
	}

	tag := ""
	var stageErr *internal.StageError
	if errors.As(err, &stageErr) {
		tag = stageErr.Tag
		err = stageErr.Cause
	}
	e.logger.Error(LogMsgResolveFailed, zap.String(LogFieldTag, tag), zap.Error(err))
	return NewResolveError(tag, err)
}

// Tags returns the tag names in resolution order.
func (e *Engine) Tags() []string {
	return e.pipeline.Order()
}

// Locator returns the file locator used for includes.
func (e *Engine) Locator() Locator {
	return e.locator
}
