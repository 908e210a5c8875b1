package spec

import "errors"

var (
	// ErrNotFound indicates the spec source is missing or unreachable.
	ErrNotFound = errors.New("spec source not found")

	// ErrParse indicates the spec content is not a valid OpenAPI document.
	ErrParse = errors.New("failed to parse spec")

	// ErrEmptySpec indicates the document declares no endpoints. This is a
	// terminal condition for the request, not retried.
	ErrEmptySpec = errors.New("no endpoints found")
)
