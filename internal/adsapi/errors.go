package adsapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers everything that kept a well-formed answer from
	// arriving: connection failures and non-2xx replies. Retrying may help.
	ErrTransport = errors.New("error fetching ads")
	// ErrFormat means a 2xx reply whose body is not {"ads": [...]}.
	ErrFormat = errors.New("unexpected response format")
)

// APIError is a non-2xx reply from the backend. The backend reports
// validation and scrape failures as {"error": "..."}.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned http %d", e.Status)
	}
	return fmt.Sprintf("backend returned http %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrTransport
}
