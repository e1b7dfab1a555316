package mdmacro

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// StoredPage is a markdown page source held by a storage backend.
type StoredPage struct {
	// Name is the normalized page name, always ending in ".md".
	// Names may contain slash-separated directories.
	Name string `json:"name"`

	// Source is the raw markdown, metavar header included.
	Source string `json:"source"`

	// UpdatedAt is set by the storage on Save.
	UpdatedAt time.Time `json:"updated_at"`
}

// PageStorage is the interface for pluggable page source backends.
// Implementations must be safe for concurrent use.
type PageStorage interface {
	// Get retrieves a page by name.
	// Returns an error satisfying IsPageNotFound if the page doesn't exist.
	Get(ctx context.Context, name string) (*StoredPage, error)

	// Save creates or replaces a page. UpdatedAt is set by the storage.
	Save(ctx context.Context, page *StoredPage) error

	// Delete removes a page.
	// Returns an error satisfying IsPageNotFound if the page doesn't exist.
	Delete(ctx context.Context, name string) error

	// List returns all page names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Exists checks if a page with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// Close releases any resources held by the storage.
	Close() error
}

// StorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a new storage instance. The connection string format
	// is driver-specific.
	Open(connectionString string) (PageStorage, error)
}

// Storage driver registry
var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// Panics if driver is nil or the name is already taken.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens page storage using the named driver.
//
//	storage, err := mdmacro.OpenStorage("memory", "")
//	storage, err := mdmacro.OpenStorage("filesystem", "/srv/site/markdown")
func OpenStorage(driverName, connectionString string) (PageStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered storage drivers, sorted.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Storage error message constants
const (
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgNilStoredPage           = "stored page cannot be nil"
	ErrMsgInvalidPageName         = "invalid page name"
)

// NewStorageDriverNotFoundError creates an error for a missing storage driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgStorageDriverNotFound,
		Name:    name,
	}
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{
		Message: ErrMsgStorageClosed,
	}
}

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg += ": " + e.Name
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// validateStoredPage checks a page before it is written.
// Stored names must carry the ".md" extension.
func validateStoredPage(page *StoredPage) error {
	if page == nil {
		return &StorageError{Message: ErrMsgNilStoredPage}
	}
	if err := validatePageName(page.Name); err != nil {
		return err
	}
	if !strings.HasSuffix(page.Name, PageExtension) {
		return &StorageError{Message: ErrMsgInvalidPageName, Name: page.Name}
	}
	return nil
}

// validatePageName rejects names that could escape a storage root.
func validatePageName(name string) error {
	if name == "" {
		return NewEmptyPageNameError()
	}
	if !validIncludeName(name) || strings.HasSuffix(name, "/") {
		return &StorageError{Message: ErrMsgInvalidPageName, Name: name}
	}
	return nil
}

func copyStoredPage(page *StoredPage) *StoredPage {
	cp := *page
	return &cp
}
