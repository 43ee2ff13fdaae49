package transport

import "errors"

// Sentinel errors mapped from API status codes by mapAPIError.
// Callers match them with [errors.Is]; the wrapped message retains the
// status code and response body for diagnostics.
var (
	// ErrUnauthorized indicates rejected credentials or an access token
	// the server no longer accepts (HTTP 401).
	ErrUnauthorized = errors.New("pathao: unauthorized")

	// ErrNotFound indicates a resource that does not exist, e.g. an
	// unknown city or zone identifier (HTTP 404).
	ErrNotFound = errors.New("pathao: not found")

	// ErrTooManyRequests indicates the API's rate limit was hit
	// (HTTP 429). The transport retries these automatically up to the
	// configured attempt ceiling.
	ErrTooManyRequests = errors.New("pathao: too many requests")

	// ErrServerError indicates a 5xx response from the API.
	ErrServerError = errors.New("pathao: server error")

	// ErrBadEnvelope indicates a response that decoded but did not carry
	// the expected {"data": ...} envelope structure.
	ErrBadEnvelope = errors.New("pathao: invalid response structure")
)
