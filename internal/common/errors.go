package common

import (
	"errors"
	"fmt"
)

// Kind classifies every failure reported by the filter packages.
type Kind uint8

const (
	KindConfiguration Kind = iota + 1
	KindSize
	KindParse
	KindIncompatibleOperand
	KindIndex
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindSize:
		return "size"
	case KindParse:
		return "parse"
	case KindIncompatibleOperand:
		return "incompatible operand"
	case KindIndex:
		return "index"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Error is the single error type surfaced by bitvector and bloom.
// Op names the failing operation, Err optionally carries the cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := "bloom: " + e.Op + ": " + e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match for any *Error of the same Kind, which lets the kind
// sentinels below be used with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == ""
}

// Kind sentinels for errors.Is.
var (
	ErrConfiguration       = &Error{Kind: KindConfiguration}
	ErrSize                = &Error{Kind: KindSize}
	ErrParse               = &Error{Kind: KindParse}
	ErrIncompatibleOperand = &Error{Kind: KindIncompatibleOperand}
	ErrIndex               = &Error{Kind: KindIndex}
)

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, op string, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrapf builds an *Error of the given kind around cause.
func Wrapf(kind Kind, op string, cause error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
