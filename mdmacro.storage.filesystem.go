package mdmacro

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FilesystemStorage stores pages as plain markdown files under a root
// directory. A page name maps directly to a relative path:
//
//	<root>/
//	  index.md
//	  tuto-100/
//	    intro.md
//
// This is the layout the markdown directory of a site already has, so the
// same tree serves as include root and page store.
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a new FilesystemStorage instance.
// The connection string is the root directory path.
func (d *FilesystemStorageDriver) Open(connectionString string) (PageStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// Filesystem storage error messages
const (
	ErrMsgInvalidStorageRoot = "storage root directory cannot be empty"
	ErrMsgCreateStorageDir   = "failed to create storage directory"
	ErrMsgReadPageFailed     = "failed to read page"
	ErrMsgWritePageFailed    = "failed to write page"
	ErrMsgDeletePageFailed   = "failed to delete page"
	ErrMsgListPagesFailed    = "failed to list pages"
)

// NewFilesystemStorage creates a new filesystem-based page storage.
// The root directory will be created if it doesn't exist.
func NewFilesystemStorage(root string) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{
			Message: ErrMsgCreateStorageDir,
			Name:    root,
			Cause:   err,
		}
	}

	return &FilesystemStorage{
		root: root,
	}, nil
}

// Root returns the storage root directory.
func (s *FilesystemStorage) Root() string {
	return s.root
}

// Get retrieves a page by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*StoredPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validatePageName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	path := s.pagePath(name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil, NewPageNotFoundError(name)
		}
		return nil, &StorageError{Message: ErrMsgReadPageFailed, Name: name, Cause: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadPageFailed, Name: name, Cause: err}
	}

	return &StoredPage{
		Name:      name,
		Source:    string(data),
		UpdatedAt: info.ModTime(),
	}, nil
}

// Save writes the page source, creating parent directories as needed.
func (s *FilesystemStorage) Save(ctx context.Context, page *StoredPage) error {
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

	path := s.pagePath(page.Name)
	if err := os.MkdirAll(filepath.Dir(path), FilesystemDirPermissions); err != nil {
		return &StorageError{Message: ErrMsgCreateStorageDir, Name: page.Name, Cause: err}
	}
	if err := os.WriteFile(path, []byte(page.Source), FilesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgWritePageFailed, Name: page.Name, Cause: err}
	}

	if info, err := os.Stat(path); err == nil {
		page.UpdatedAt = info.ModTime()
	}
	return nil
}

// Delete removes a page file. Emptied directories are left in place.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validatePageName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if err := os.Remove(s.pagePath(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewPageNotFoundError(name)
		}
		return &StorageError{Message: ErrMsgDeletePageFailed, Name: name, Cause: err}
	}
	return nil
}

// List walks the root and returns every ".md" file as a slash-separated name.
func (s *FilesystemStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), PageExtension) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, &StorageError{Message: ErrMsgListPagesFailed, Name: s.root, Cause: err}
	}

	sort.Strings(names)
	return names, nil
}

// Exists checks if a page file exists.
func (s *FilesystemStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validatePageName(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	info, err := os.Stat(s.pagePath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &StorageError{Message: ErrMsgReadPageFailed, Name: name, Cause: err}
	}
	return info.Mode().IsRegular(), nil
}

// Close marks the storage closed. Files are left untouched.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *FilesystemStorage) pagePath(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}
