package mdmacro

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of PageStorage.
// It is primarily intended for testing and development.
type MemoryStorage struct {
	mu     sync.RWMutex
	pages  map[string]*StoredPage
	closed bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage instance.
// The connection string is ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (PageStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory page storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		pages: make(map[string]*StoredPage),
	}
}

// Get retrieves a page by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	page, ok := s.pages[name]
	if !ok {
		return nil, NewPageNotFoundError(name)
	}
	return copyStoredPage(page), nil
}

// Save creates or replaces a page.
func (s *MemoryStorage) Save(ctx context.Context, page *StoredPage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateStoredPage(page); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	page.UpdatedAt = time.Now()
	s.pages[page.Name] = copyStoredPage(page)
	return nil
}

// Delete removes a page.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.pages[name]; !ok {
		return NewPageNotFoundError(name)
	}
	delete(s.pages, name)
	return nil
}

// List returns all page names in lexical order.
func (s *MemoryStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	names := make([]string, 0, len(s.pages))
	for name := range s.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists checks if a page exists.
func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	_, ok := s.pages[name]
	return ok, nil
}

// Close marks the storage closed and drops all pages.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.pages = nil
	return nil
}
