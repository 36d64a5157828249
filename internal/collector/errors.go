package collector

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies an upstream fetch failure.
type ErrorKind int

const (
	// Unauthorized means the API rejected the credential (HTTP 401/403).
	Unauthorized ErrorKind = iota
	// RateLimited means the API quota is exhausted (HTTP 429).
	RateLimited
	// NetworkError covers timeouts, connection failures and any other
	// non-2xx status.
	NetworkError
	// MalformedResponse means a 2xx response had an unexpected shape.
	MalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case RateLimited:
		return "rate limited"
	case NetworkError:
		return "network error"
	case MalformedResponse:
		return "malformed response"
	default:
		return "unknown"
	}
}

// FetchError is a classified upstream failure for one resource. It is
// surfaced to the caller instead of an empty or garbage payload so the
// engine never computes on missing data.
type FetchError struct {
	Kind     ErrorKind
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Resource, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Resource, e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }

// classifyStatus maps a non-2xx HTTP status to an ErrorKind.
func classifyStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return Unauthorized
	case http.StatusTooManyRequests:
		return RateLimited
	default:
		return NetworkError
	}
}

func fetchErr(kind ErrorKind, resource string, err error) *FetchError {
	return &FetchError{Kind: kind, Resource: resource, Err: err}
}

func statusErr(resource string, status int, body []byte) *FetchError {
	return fetchErr(classifyStatus(status), resource,
		fmt.Errorf("status %d: %s", status, truncate(body, 200)))
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
