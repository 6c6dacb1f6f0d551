// Package apierr holds the error taxonomy shared by the Twitch clients.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// maxBodyLen caps how much of an upstream body is kept on an error.
const maxBodyLen = 4096

// NetworkError is a transport failure: DNS, refused connection, timeout.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError is returned for rejected credentials (401/403, and 400 from the token endpoint).
type AuthError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: status %d, url: %s, body: %s", e.StatusCode, e.URL, e.Body)
}

// NotFoundError is returned for 404 responses.
type NotFoundError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: status %d, url: %s, body: %s", e.StatusCode, e.URL, e.Body)
}

// UpstreamError is any other non-2xx response.
type UpstreamError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API request failed: status %d, url: %s, body: %s", e.StatusCode, e.URL, e.Body)
}

// FromStatus maps a non-2xx status to its taxonomy error. authCodes lists the
// statuses the caller treats as credential failures; nil means 401 and 403.
func FromStatus(statusCode int, body []byte, url string, authCodes ...int) error {
	if len(authCodes) == 0 {
		authCodes = []int{http.StatusUnauthorized, http.StatusForbidden}
	}

	text := string(body)
	if len(text) > maxBodyLen {
		text = text[:maxBodyLen]
	}

	for _, code := range authCodes {
		if statusCode == code {
			return &AuthError{StatusCode: statusCode, Body: text, URL: url}
		}
	}

	if statusCode == http.StatusNotFound {
		return &NotFoundError{StatusCode: statusCode, Body: text, URL: url}
	}

	return &UpstreamError{StatusCode: statusCode, Body: text, URL: url}
}

// IsSuccess reports whether the status is 2xx.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// StatusCode extracts the upstream status from err, or 0 if it carries none.
func StatusCode(err error) int {
	var (
		authErr     *AuthError
		notFoundErr *NotFoundError
		upstreamErr *UpstreamError
	)

	switch {
	case errors.As(err, &authErr):
		return authErr.StatusCode
	case errors.As(err, &notFoundErr):
		return notFoundErr.StatusCode
	case errors.As(err, &upstreamErr):
		return upstreamErr.StatusCode
	default:
		return 0
	}
}
