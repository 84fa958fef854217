package errors

import (
	"errors"
)

var (
	// Parameter Errors
	ErrSchemaViolation = errors.New("parameter declaration violates schema")
	ErrInvalidValue    = errors.New("invalid value")
	ErrNotFound        = errors.New("parameter not found")
	ErrEndOfInput      = errors.New("end of input")

	// Template Errors
	ErrInvalidTemplate   = errors.New("invalid workflow template")
	ErrUnsupportedFile   = errors.New("unsupported file format")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrPathNotAccessible = errors.New("path is not accessible")

	// File & Directory Errors
	ErrFileNotFound     = errors.New("file not found")
	ErrFileReadError    = errors.New("error reading file")
	ErrFileWriteError   = errors.New("error writing file")
	ErrDirNotFound      = errors.New("directory not found")
	ErrPermissionDenied = errors.New("permission denied")

	// Compression Errors
	ErrDecompressionFailed    = errors.New("decompression failed")
	ErrUnsupportedCompression = errors.New("unsupported compression format")

	// Hash Errors
	ErrInvalidHasher = errors.New("invalid hasher")

	// Configuration Errors
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrConfigParseError = errors.New("error parsing configuration")
)
