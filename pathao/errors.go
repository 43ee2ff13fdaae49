package pathao

import "errors"

var (
	// ErrMissingCredentials indicates that one or more required
	// credential fields (client id, client secret, username, password)
	// were absent from both explicit construction and the environment.
	// This is the only sanctioned configuration failure mode; the
	// wrapped message names the missing fields.
	ErrMissingCredentials = errors.New("pathao: missing required configuration")

	// ErrInvalidEnvironment indicates an environment selector other
	// than "sandbox" or "production".
	ErrInvalidEnvironment = errors.New(`pathao: environment must be "sandbox" or "production"`)

	// ErrLocationNotFound indicates a city, zone or area name that does
	// not exist in Pathao's reference data, even after a cache refresh.
	// The wrapped message may carry a closest-match suggestion.
	ErrLocationNotFound = errors.New("pathao: location not found")

	// ErrEmptyName indicates a blank name passed to a location lookup.
	ErrEmptyName = errors.New("pathao: name must not be empty")

	// ErrClosed indicates an operation on a client after Close.
	ErrClosed = errors.New("pathao: client is closed")
)
