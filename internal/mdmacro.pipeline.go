package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// Pipeline runs tag resolvers over a text, one stage per tag type, in a
// fixed order. Each stage makes a single pass over the output of the
// previous stage.
type Pipeline struct {
	registry *Registry
	order    []string
	logger   *zap.Logger
}

// NewPipeline creates a pipeline over registry. A nil order means PipelineOrder.
func NewPipeline(registry *Registry, order []string, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if order == nil {
		order = PipelineOrder
	}
	stages := make([]string, len(order))
	copy(stages, order)
	return &Pipeline{
		registry: registry,
		order:    stages,
		logger:   logger,
	}
}

// Order returns the stage order.
func (p *Pipeline) Order() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Run resolves every stage in order. A failing stage aborts the run with a
// *StageError naming the tag.
func (p *Pipeline) Run(text string) (string, error) {
	p.logger.Debug(LogMsgPipelineStart, zap.Int(LogFieldInLen, len(text)))

	for _, name := range p.order {
		out, _, err := p.RunStage(name, text)
		if err != nil {
			return StringValueEmpty, &StageError{Tag: name, Cause: err}
		}
		text = out
	}

	p.logger.Debug(LogMsgPipelineComplete, zap.Int(LogFieldOutLen, len(text)))
	return text, nil
}

// RunStage resolves the occurrences of a single tag type and reports how
// many were replaced.
func (p *Pipeline) RunStage(name, text string) (string, int, error) {
	resolver, ok := p.registry.Get(name)
	if !ok {
		return StringValueEmpty, 0, NewRegistryError(ErrMsgTagResolverMissing, name)
	}

	p.logger.Debug(LogMsgStageStart, zap.String(LogFieldTagName, name))
	out, count, err := ReplaceMatches(text, resolver.Pattern(), resolver.Resolve)
	if err != nil {
		p.logger.Debug(LogMsgStageFailed,
			zap.String(LogFieldTagName, name),
			zap.Error(err),
		)
		return StringValueEmpty, 0, err
	}

	p.logger.Debug(LogMsgStageComplete,
		zap.String(LogFieldTagName, name),
		zap.Int(LogFieldMatches, count),
	)
	return out, count, nil
}

// StageError reports which pipeline stage failed.
type StageError struct {
	Tag   string
	Cause error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf(ErrFmtStageError, e.Tag, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StageError) Unwrap() error {
	return e.Cause
}
