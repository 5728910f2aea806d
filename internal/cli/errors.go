// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Library errors
	ErrLibraryNotFound     = "LIBRARY_NOT_FOUND"
	ErrLibraryNotSpecified = "LIBRARY_NOT_SPECIFIED"
	ErrConfigInvalid       = "CONFIG_INVALID"

	// File errors
	ErrFileNotFound       = "FILE_NOT_FOUND"
	ErrFileExists         = "FILE_EXISTS"
	ErrFileReadError      = "FILE_READ_ERROR"
	ErrFileWriteError     = "FILE_WRITE_ERROR"
	ErrFileOutsideLibrary = "FILE_OUTSIDE_LIBRARY"

	// Document errors
	ErrNoMetadataBlock = "NO_METADATA_BLOCK"
	ErrUnknownKind     = "UNKNOWN_KIND"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnMoveFailed        = "MOVE_FAILED"
	WarnInvalidStatus     = "INVALID_STATUS"
	WarnIndexUpdateFailed = "INDEX_UPDATE_FAILED"
	WarnSkippedDocument   = "SKIPPED_DOCUMENT"
)
