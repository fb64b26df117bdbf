package errors

import (
	"errors"
	"fmt"
)

// Error types for better error classification and handling

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeDecode          ErrorType = "decode"
	ErrorTypeUnknownField    ErrorType = "unknown_field"
	ErrorTypeMissingIdentity ErrorType = "missing_identity"
	ErrorTypeEmptyUpdate     ErrorType = "empty_update"
	ErrorTypeCrypto          ErrorType = "crypto"
	ErrorTypeIO              ErrorType = "io"
	ErrorTypeNetwork         ErrorType = "network"
	ErrorTypeInternal        ErrorType = "internal"
)

// DomainError represents a structured error with type and context
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *DomainError) Is(target error) bool {
	if other, ok := target.(*DomainError); ok {
		return e.Type == other.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errorType ErrorType, message string, cause error) *DomainError {
	return &DomainError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Specification and request errors

func NewValidationError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeValidation, message, cause)
}

func NewDecodeError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeDecode, message, cause)
}

func NewUnknownFieldError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeUnknownField, message, cause)
}

func NewMissingIdentityError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeMissingIdentity, message, cause)
}

func NewEmptyUpdateError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeEmptyUpdate, message, cause)
}

func NewCryptoError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeCrypto, message, cause)
}

// System errors

func NewIOError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeIO, message, cause)
}

func NewNetworkError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeNetwork, message, cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeInternal, message, cause)
}

// Error checking helpers

func IsValidationError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeValidation
}

func IsDecodeError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeDecode
}

func IsUnknownFieldError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeUnknownField
}

func IsMissingIdentityError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeMissingIdentity
}

func IsEmptyUpdateError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeEmptyUpdate
}

func IsCryptoError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeCrypto
}

func IsIOError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeIO
}

func IsNetworkError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeNetwork
}

func IsInternalError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == ErrorTypeInternal
}

// Error aggregation for bulk operations
type ErrorCollection struct {
	Errors []error
}

func (e *ErrorCollection) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred: %v", len(e.Errors), e.Errors[0])
}

func (e *ErrorCollection) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *ErrorCollection) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ErrorCollection) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// NewErrorCollection creates a new error collection
func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{
		Errors: make([]error, 0),
	}
}
