package pim

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth is returned when PIM rejects credentials or sign-in response has no token.
	ErrAuth = errors.New("pim authentication failed")
	// ErrTransport is returned when PIM can't be reached.
	ErrTransport = errors.New("pim transport failure")
	// ErrDecode is returned when PIM response body is malformed.
	ErrDecode = errors.New("can't decode pim response")
	// ErrAsset is returned when image can't be downloaded or saved.
	ErrAsset = errors.New("can't download pim asset")
)

// StatusError is returned when PIM responds with status different than 200 OK.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pim api error: HTTP %d - %s", e.StatusCode, e.Body)
}
