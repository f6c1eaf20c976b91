package http

import (
	"errors"
	"net/http"

	"github.com/Komy007/kkshop-sub000/internal/app/product/domain"
)

// errMalformedRequest marks a body or query parameter that could not be parsed.
var errMalformedRequest = errors.New("malformed request")

// statusFor maps domain errors to HTTP status codes and client-facing
// messages. Unknown errors get a generic message so internals never leak.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errMalformedRequest),
		errors.Is(err, domain.ErrInvalidSubmission),
		errors.Is(err, domain.ErrUnsupportedLanguage):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrDuplicateSKU):
		return http.StatusConflict, domain.ErrDuplicateSKU.Error()

	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, domain.ErrProductNotFound.Error()

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
