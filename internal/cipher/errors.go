package cipher

import (
	"errors"
	"fmt"
)

// ErrorKind classifies cipher failures.
type ErrorKind string

// KindKey marks a malformed key. It is always recoverable by supplying a valid key or none.
const KindKey ErrorKind = "KeyError"

// Error is returned by ciphers that reject their input.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

var (
	// ErrKeyNotSquare is returned by Hill when the key length is not a perfect square.
	ErrKeyNotSquare = &Error{Kind: KindKey, Msg: "Key length must be a perfect square"}
	// ErrKeyNotLetters is returned by Hill when the key contains anything but ASCII letters.
	ErrKeyNotLetters = &Error{Kind: KindKey, Msg: "Key must contain only letters"}
)

// IsKeyError reports whether err, or anything it wraps, is a KeyError.
func IsKeyError(err error) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Kind == KindKey
}
