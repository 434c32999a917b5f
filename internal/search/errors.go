package search

import "errors"

var (
	// ErrEmptyQuery is returned when the text query is missing or blank.
	ErrEmptyQuery = errors.New("query parameter is required")

	// ErrInvalidImage is returned when the upload is empty or not an image.
	ErrInvalidImage = errors.New("file must be an image")

	// ErrFallbackRequired is returned when a Service is built without a fallback dataset.
	ErrFallbackRequired = errors.New("fallback dataset required")

	// ErrModelRequired is returned by the semantic resolvers when no model is configured.
	ErrModelRequired = errors.New("AI model not configured")

	// ErrNoFallbackMatch is returned when a live-store fault could not be
	// recovered from the fallback dataset. It wraps the original fault.
	ErrNoFallbackMatch = errors.New("no fallback match after store failure")

	// errMalformedResponse marks model output that does not satisfy the JSON contract.
	errMalformedResponse = errors.New("malformed model response")
)
