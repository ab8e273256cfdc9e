package errors

import "errors"

var (
	// ErrNoCustomerMapping indicates that the user has no associated Stripe customer
	ErrNoCustomerMapping = errors.New("no customer mapping found for user")

	// ErrProductNotFound indicates that the requested product exists neither in
	// the cache nor in the external catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateProduct indicates a product with the same name already exists
	// for the campaign
	ErrDuplicateProduct = errors.New("product already exists for campaign")

	// ErrInsufficientPermissions indicates the caller's role does not allow the
	// requested catalog mutation
	ErrInsufficientPermissions = errors.New("insufficient permissions for this operation")
)

// ValidationError carries a user-facing message for malformed input (HTTP 400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ProviderError wraps a failure from the external system of record (HTTP 500).
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// CacheSyncError marks a local mirror write that failed after the external
// write succeeded. Logged as a warning, never surfaced to the caller: the
// external system remains the source of truth and a later read re-derives
// the cache.
type CacheSyncError struct {
	Entity string
	Err    error
}

func (e *CacheSyncError) Error() string {
	return "failed to mirror " + e.Entity + " to cache: " + e.Err.Error()
}

func (e *CacheSyncError) Unwrap() error {
	return e.Err
}
