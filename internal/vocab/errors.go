package vocab

import (
	"errors"
	"strings"
)

var (
	// ErrCompilerFailed means the compiler could not be started or exited non-zero.
	ErrCompilerFailed = errors.New("class compiler failed")
	// ErrInvalidResponse means the compiler output was not a JSON array of strings.
	ErrInvalidResponse = errors.New("class compiler returned an invalid response")
	// ErrInvalidRequest means the request failed the request schema.
	ErrInvalidRequest = errors.New("invalid class extraction request")
	// ErrOutputTooLarge means the compiler output exceeded the buffer ceiling.
	ErrOutputTooLarge = errors.New("class compiler output exceeds the size limit")
)

// ExtractionError is a failed vocabulary extraction. Detail carries the
// compiler diagnostic text (its stderr, or the decode or schema failure).
type ExtractionError struct {
	Err    error
	Detail string
}

func (e *ExtractionError) Error() string {
	detail := strings.TrimSpace(e.Detail)
	if detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + detail
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
