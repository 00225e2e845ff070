package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInputIncomplete indicates a missing currency selection or a non-positive amount.
// No call to the rate service is made when this is returned.
var ErrInputIncomplete = errors.New("input incomplete")

// ErrNetwork indicates a transport failure while reaching the rate service.
var ErrNetwork = errors.New("unable to connect to the rate service")

// ErrService indicates that the rate service answered with a non-success response.
var ErrService = errors.New("rate service error")

// ErrRateUnavailable indicates that the target currency is missing from the rate table.
var ErrRateUnavailable = errors.New("currency not available")

// ServiceError carries the details of a non-success response from the rate service.
// It matches ErrService with errors.Is.
type ServiceError struct {
	StatusCode int
	ErrorType  string // "error-type" reported by the service, if any
}

func (e *ServiceError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("%s: status %d (%s)", ErrService, e.StatusCode, e.ErrorType)
	}
	return fmt.Sprintf("%s: status %d", ErrService, e.StatusCode)
}

func (e *ServiceError) Unwrap() error {
	return ErrService
}
