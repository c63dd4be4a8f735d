package loader

import "fmt"

// HTTPError is returned when a document request completes with a non-2xx status.
type HTTPError struct {
	Resource string
	Status   int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s returned status %d", e.Resource, e.Status)
}

// ParseError is returned when a document body is not well-formed XML.
type ParseError struct {
	Resource string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Resource, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingElementError reports a well-formed document without an expected
// entry. It is never retried.
type MissingElementError struct {
	Resource string
	Element  string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("%s has no %s", e.Resource, e.Element)
}
