package internal

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Registry manages tag resolver registration with first-come-wins semantics.
// It is thread-safe for concurrent read/write access.
type Registry struct {
	resolvers map[string]TagResolver
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewRegistry creates a new tag resolver registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRegistryCreated)
	return &Registry{
		resolvers: make(map[string]TagResolver),
		logger:    logger,
	}
}

// Register adds a resolver to the registry.
// If a resolver for the same tag already exists, returns an error
// but does not panic (first-come-wins semantics).
func (r *Registry) Register(resolver TagResolver) error {
	if resolver == nil {
		return NewRegistryError(ErrMsgNilTagResolver, StringValueEmpty)
	}

	tagName := resolver.TagName()
	if tagName == StringValueEmpty {
		return NewRegistryError(ErrMsgEmptyTagName, StringValueEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.resolvers[tagName]; exists {
		r.logger.Warn(LogMsgTagCollision,
			zap.String(LogFieldTagName, tagName),
			zap.String(LogFieldExisting, existing.TagName()),
		)
		return NewRegistryError(ErrMsgTagResolverExists, tagName)
	}

	r.resolvers[tagName] = resolver
	r.logger.Debug(LogMsgTagRegistered, zap.String(LogFieldTagName, tagName))
	return nil
}

// MustRegister adds a resolver and panics if registration fails.
// Use this for built-in resolvers that must always be available.
func (r *Registry) MustRegister(resolver TagResolver) {
	if err := r.Register(resolver); err != nil {
		panic(err)
	}
}

// Get retrieves a resolver by tag name.
func (r *Registry) Get(tagName string) (TagResolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolver, exists := r.resolvers[tagName]
	return resolver, exists
}

// Has checks if a resolver is registered for the given tag name.
func (r *Registry) Has(tagName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.resolvers[tagName]
	return exists
}

// RegistryError represents a registry operation error
type RegistryError struct {
	Message string
	TagName string
}

// NewRegistryError creates a new registry error
func NewRegistryError(message, tagName string) *RegistryError {
	return &RegistryError{
		Message: message,
		TagName: tagName,
	}
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.TagName != StringValueEmpty {
		return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.TagName)
	}
	return e.Message
}
