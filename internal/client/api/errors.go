package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tasklist/internal/common"
)

var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// Is maps status codes onto the shared sentinels so callers can use
// errors.Is(err, common.ErrorNotFound) and friends.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusBadRequest:
		return target == common.ErrValidation
	case http.StatusUnauthorized:
		return target == common.ErrorUnauthenticated || target == common.ErrorUnauthorized
	case http.StatusForbidden:
		return target == common.ErrInvalidToken
	case http.StatusNotFound:
		return target == common.ErrorNotFound
	case http.StatusInternalServerError:
		return target == common.ErrorInternal
	}
	return false
}
