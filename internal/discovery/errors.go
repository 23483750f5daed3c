package discovery

import (
	"errors"
	"fmt"
)

// Kind classifies discovery failures.
type Kind int

const (
	// KindDiscovery is the umbrella kind for unexpected failures during
	// parsing or catalog construction.
	KindDiscovery Kind = iota
	// KindFetch covers network, status and body-decoding failures while
	// retrieving the spec document.
	KindFetch
	// KindInvalidDocument covers structural validation and dialect
	// detection failures.
	KindInvalidDocument
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch failure"
	case KindInvalidDocument:
		return "invalid document"
	default:
		return "discovery failure"
	}
}

// Error is the single error type surfaced by the engine. URL is the spec
// URL the failing discovery call was issued for, when known.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s for %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with the given kind and spec URL.
func NewError(kind Kind, url string, err error) *Error {
	return &Error{Kind: kind, URL: url, Err: err}
}

// Wrap returns err unchanged if it is already a discovery Error, otherwise
// wraps it under KindDiscovery. A nil err returns nil.
func Wrap(url string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return NewError(KindDiscovery, url, err)
}

// IsKind reports whether err is a discovery Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
