package mdinline

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedToken reports a token kind the parser cannot dispatch.
	ErrUnsupportedToken = errors.New("unsupported token")
	// ErrUnknownFormat reports an encoding format name that is not recognised.
	ErrUnknownFormat = errors.New("unknown format")
)

// UnsupportedTokenError is returned by Parse when a token reaches dispatch
// without a defined tree shape. The whole input is rejected.
type UnsupportedTokenError struct {
	Kind TokenKind
	// Index is the position of the token in the slice passed to Parse.
	Index int
}

func (e *UnsupportedTokenError) Error() string {
	return fmt.Sprintf("parse: %v: %s (%q) at token %d", ErrUnsupportedToken, e.Kind, Token{Kind: e.Kind}.Literal(), e.Index)
}

func (e *UnsupportedTokenError) Unwrap() error {
	return ErrUnsupportedToken
}
