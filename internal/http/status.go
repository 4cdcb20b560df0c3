package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	inErrors "github.com/Alturino/shopping/internal/errors"
)

func StatusFromError(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, inErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, inErrors.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrConflict),
		errors.Is(err, inErrors.ErrEmailRegistered),
		errors.Is(err, inErrors.ErrStorageConflict):
		return http.StatusConflict
	case errors.Is(err, inErrors.ErrInvalidCredentials),
		errors.Is(err, inErrors.ErrEmptyAuth),
		errors.Is(err, inErrors.ErrEmptySubject),
		errors.Is(err, inErrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.As(err, &validationErrs), errors.Is(err, inErrors.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var publicErrors = []error{
	inErrors.ErrNotFound,
	inErrors.ErrInvalidQuantity,
	inErrors.ErrEmptyCart,
	inErrors.ErrEmailRegistered,
	inErrors.ErrConflict,
	inErrors.ErrStorageConflict,
	inErrors.ErrInvalidCredentials,
	inErrors.ErrEmptyAuth,
	inErrors.ErrEmptySubject,
	inErrors.ErrTokenInvalid,
	inErrors.ErrInvalidRequest,
}

// MessageFromError returns the client facing message for err. Wrapped internal context
// is dropped and unknown errors collapse to the generic 500 text.
func MessageFromError(err error) string {
	for _, publicErr := range publicErrors {
		if errors.Is(err, publicErr) {
			return publicErr.Error()
		}
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs.Error()
	}
	return http.StatusText(http.StatusInternalServerError)
}
