package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy shared by the normalizer and the CRUD handlers. Handlers
// map these onto HTTP statuses; the batch loader reports them per record.
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrReferentialConflict = errors.New("still referenced")
)

func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

func ConstraintViolation(detail string) error {
	return fmt.Errorf("%s: %w", detail, ErrConstraintViolation)
}

func ReferentialConflict(detail string) error {
	return fmt.Errorf("%s: %w", detail, ErrReferentialConflict)
}

// HttpStatus translates a taxonomy error into the status the access layer
// responds with. Unknown errors are treated as internal.
func HttpStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, ErrReferentialConflict):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyOrder):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
