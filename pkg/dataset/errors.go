package dataset

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrEmptyDataset      = errors.New("dataset contains no settlements")
	ErrUnknownSource     = errors.New("unknown dataset source")
	ErrInvalidRecord     = errors.New("invalid record")
)

// LoadError provides structured error information for dataset loading.
type LoadError struct {
	Op     string // e.g. "decode", "open", "query"
	Source string // file path, s3 URL or table name
	Line   int    // 1-based line or record number, 0 when not applicable
	Cause  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s (record %d): %v", e.Op, e.Source, e.Line, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

func newLoadError(op, source string, line int, cause error) *LoadError {
	return &LoadError{Op: op, Source: source, Line: line, Cause: cause}
}
