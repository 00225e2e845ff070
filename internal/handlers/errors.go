package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/forexflex/internal/apperrors"
)

const msgInputIncomplete = "Please complete all fields and enter a valid amount."

// conversionFailure is how a failed conversion is reported to the user.
type conversionFailure struct {
	status  int
	message string
	warning bool // input problems render as a warning instead of an error
}

// describeConversionError maps a converter error to its status code and user-facing message.
func describeConversionError(err error, toCode string) conversionFailure {
	var serviceErr *apperrors.ServiceError
	switch {
	case errors.Is(err, apperrors.ErrInputIncomplete), errors.Is(err, apperrors.ErrValidation):
		return conversionFailure{status: http.StatusBadRequest, message: msgInputIncomplete, warning: true}
	case errors.Is(err, apperrors.ErrRateUnavailable):
		return conversionFailure{status: http.StatusNotFound, message: fmt.Sprintf("Currency %s is not available.", toCode)}
	case errors.As(err, &serviceErr):
		return conversionFailure{status: http.StatusBadGateway, message: fmt.Sprintf("Error: Unable to fetch exchange rate. Status code: %d", serviceErr.StatusCode)}
	case errors.Is(err, apperrors.ErrNetwork):
		return conversionFailure{status: http.StatusServiceUnavailable, message: fmt.Sprintf("Error: Unable to connect to the API. Details: %s", networkCause(err))}
	default:
		return conversionFailure{status: http.StatusInternalServerError, message: "Something went wrong. Please try again."}
	}
}

// networkCause strips the sentinel prefix from a wrapped network error.
func networkCause(err error) string {
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			if !errors.Is(e, apperrors.ErrNetwork) {
				return e.Error()
			}
		}
	}
	return err.Error()
}
