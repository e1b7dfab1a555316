package mdmacro

import (
	"errors"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-mdmacro/internal"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Resolution errors
	ErrMsgResolveFailed = "tag resolution failed"
	ErrMsgUnknownTag    = "unknown tag"

	// Configuration errors
	ErrMsgConfigReadFailed   = "failed to read config file"
	ErrMsgConfigParseFailed  = "failed to parse config"
	ErrMsgInvalidConfigValue = "invalid configuration value"
	ErrMsgEmptyIncludePath   = "include path cannot be empty"
	ErrMsgNilLocator         = "file locator cannot be nil"

	// Page errors
	ErrMsgPageNotFound      = "page not found"
	ErrMsgEmptyPageName     = "page name cannot be empty"
	ErrMsgMarkdownFailed    = "markdown rendering failed"
	ErrMsgNilPageStorage    = "page storage cannot be nil"
	ErrMsgWriteOutputFailed = "failed to write rendered page"
)

// Error code constants for categorization
const (
	ErrCodeResolve = "MDMACRO_RESOLVE"
	ErrCodeConfig  = "MDMACRO_CONFIG"
	ErrCodePage    = "MDMACRO_PAGE"
	ErrCodeRender  = "MDMACRO_RENDER"
)

// MalformedTagError reports a tag whose arguments do not fit its grammar,
// such as a codeview attribute outside the allowed key set.
type MalformedTagError = internal.MalformedTagError

// IsMalformedTagError reports whether err is, or wraps, a *MalformedTagError.
func IsMalformedTagError(err error) bool {
	var malformed *MalformedTagError
	return errors.As(err, &malformed)
}

// NewResolveError wraps a failure of one resolution stage.
func NewResolveError(tagName string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeResolve, ErrMsgResolveFailed).
		WithMetadata(MetaKeyTag, tagName)
}

// NewUnknownTagError creates an error for a tag no resolver handles.
func NewUnknownTagError(tagName string) error {
	return cuserr.NewValidationError(ErrCodeResolve, ErrMsgUnknownTag).
		WithMetadata(MetaKeyTag, tagName)
}

// NewConfigError creates a configuration error.
// field names the offending setting, path the config file if any.
func NewConfigError(msg, field, path string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return err.
		WithMetadata(MetaKeyField, field).
		WithMetadata(MetaKeyPath, path)
}

// ErrPageNotFound is the cause wrapped by every page-not-found error.
var ErrPageNotFound = errors.New(ErrMsgPageNotFound)

// NewPageNotFoundError creates an error for a page missing from storage.
func NewPageNotFoundError(name string) error {
	return cuserr.WrapStdError(ErrPageNotFound, ErrCodePage, ErrMsgPageNotFound).
		WithMetadata(MetaKeyPage, name)
}

// NewEmptyPageNameError creates an error for an empty page name.
func NewEmptyPageNameError() error {
	return cuserr.NewValidationError(ErrCodePage, ErrMsgEmptyPageName)
}

// NewMarkdownError wraps a markdown rendering failure.
func NewMarkdownError(name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgMarkdownFailed).
		WithMetadata(MetaKeyPage, name)
}

// IsPageNotFound reports whether err signals a page missing from storage.
func IsPageNotFound(err error) bool {
	return errors.Is(err, ErrPageNotFound)
}
