package nosh

import (
	"errors"
	"fmt"
)

// ErrServer indicates a failed server call.
var ErrServer = errors.New("error when trying to get response from nosh server")

// APIError carries the structured error code the server returned.
type APIError struct {
	StatusCode int
	Code       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s; status=%d code=%s", ErrServer.Error(), e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%s; status=%d", ErrServer.Error(), e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return ErrServer
}
