// Package entities contains core business entities and errors.
package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPRURL signals a PR link that does not match .../<owner>/<repo>/pull/<number>.
	ErrInvalidPRURL = errors.New("invalid pull request url")
	// ErrFetchTimeout signals that a GitHub fetch exceeded its time bound.
	ErrFetchTimeout = errors.New("github fetch timed out")
)

// MissingFieldError signals a required field absent from an otherwise
// successful GitHub response.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field in response: %s", e.Field)
}

// APIStatusError signals a non-2xx response from the GitHub API.
type APIStatusError struct {
	StatusCode int
}

func (e *APIStatusError) Error() string {
	return fmt.Sprintf("github api status %d", e.StatusCode)
}
