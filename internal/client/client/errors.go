package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/freelancehub/internal/common"
)

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return target == common.ErrorValidation
	case http.StatusNotFound:
		return target == common.ErrorNotFound
	case http.StatusConflict:
		return target == common.ErrorAlreadyExists
	}
	return false
}
