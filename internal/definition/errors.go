package definition

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by *Error. Use errors.Is to branch on them.
var (
	ErrUnknownKind   = errors.New("unknown query kind")
	ErrUnknownField  = errors.New("unknown field")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidType   = errors.New("invalid type")
	ErrUnsupported   = errors.New("unsupported document format")
	ErrInvalidSyntax = errors.New("invalid syntax")
)

// Error reports a problem at a path inside a document, e.g.
// "query.bool.filter[1].term.value".
type Error struct {
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorf(path string, cause error, format string, args ...any) *Error {
	return &Error{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}
