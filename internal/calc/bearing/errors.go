package bearing

import (
	"errors"
	"net/http"
)

// Fatal configuration errors. Any of these aborts the evaluation and no
// verdict set is produced.
var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrNonPositiveDimension = errors.New("non-positive dimension")
	ErrNonPositiveNetArea   = errors.New("non-positive net area")
	ErrUnknownMaterial      = errors.New("unknown material")
)

// IsFatal reports whether err is one of the engine's configuration errors.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrNonPositiveDimension) ||
		errors.Is(err, ErrNonPositiveNetArea) ||
		errors.Is(err, ErrUnknownMaterial)
}

// StatusFor maps an evaluation error to an HTTP status.
func StatusFor(err error) int {
	if IsFatal(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
