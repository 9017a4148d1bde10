package story

import "errors"

var (
	// ErrConfiguration means the server cannot talk to the provider at all,
	// e.g. the API key is missing.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidInput means the caller sent a request missing required fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream covers transport failures, timeouts and non-2xx provider responses.
	ErrUpstream = errors.New("upstream error")
	// ErrContractViolation means the provider answered with text that does not
	// parse or does not have the required shape.
	ErrContractViolation = errors.New("contract violation")
)
