// internal/dict/dict.go
//
// Dictionary lookup clients.
// Responsibilities:
//   - Define the Client interface the validation pipeline consumes.
//   - Distinguish "word not found" (a definitive answer) from "dictionary
//     unavailable" (a transient failure the caller may retry).
//
// Implementations:
//   - HTTPClient (http.go):  open-dictionary search API over HTTP.
//   - Static     (static.go): bundled offline dictionary, used when no
//     API base URL is configured.
//   - Cache      (cache.go): read-through SQLite cache around another client.
package dict

import (
	"context"
	"errors"
)

// ErrUnavailable is returned (wrapped) whenever a lookup could not produce
// a definitive answer: network failure, non-200 response, malformed payload.
// It never means "word not found" — that is Result.Exists == false with a
// nil error.
var ErrUnavailable = errors.New("dict: dictionary unavailable")

// Result is the outcome of a successful lookup.
type Result struct {
	Exists     bool
	POS        string
	Definition string
}

// Client answers whether a word exists in the dictionary.
type Client interface {
	// Lookup resolves a word. err wraps ErrUnavailable on transient
	// failure; Result is only meaningful when err is nil.
	Lookup(ctx context.Context, word string) (Result, error)
	// Name identifies the backend for logs and diagnostics.
	Name() string
}
