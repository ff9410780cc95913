package validate

import "fmt"

// InvariantError reports input the node model promises never to produce, such
// as a literal whose value cannot come from its raw text. It terminates the
// validation of the current sink.
type InvariantError struct {
	Msg string
	Err error
}

func (e *InvariantError) Error() string {
	if e.Err == nil {
		return "invariant violation: " + e.Msg
	}
	return fmt.Sprintf("invariant violation: %s: %v", e.Msg, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// invariant aborts the current validation call. Validator entry points recover
// the panic and return it as an error.
func invariant(err error, format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...), Err: err})
}
