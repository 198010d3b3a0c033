package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidOperation    = NewDomainError("INVALID_OPERATION", "Operation is not valid for this resource")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrDepthExceeded       = NewDomainError("MAX_DEPTH_EXCEEDED", "Maximum tree depth exceeded")
	ErrHasChildren         = NewDomainError("HAS_CHILDREN", "Resource still has child resources")
	ErrHasDependents       = NewDomainError("HAS_DEPENDENTS", "Resource is still referenced by other records")
)

// StorageError wraps an unexpected error from the storage layer.
// It always implies the surrounding transaction was rolled back.
type StorageError struct {
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Err)
}

// Unwrap returns the underlying storage error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError. Domain errors pass through
// untouched so validation failures keep their kind.
func NewStorageError(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return &StorageError{Err: err}
}

// IsStorageError reports whether err is (or wraps) a StorageError
func IsStorageError(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
