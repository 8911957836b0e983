package bloom

import "opal/internal/common"

// Error is the error type returned by every operation in this package.
// Match kinds with errors.Is against the Err* sentinels or with KindOf.
type Error = common.Error

// Kind classifies an Error.
type Kind = common.Kind

const (
	KindConfiguration       = common.KindConfiguration
	KindSize                = common.KindSize
	KindParse               = common.KindParse
	KindIncompatibleOperand = common.KindIncompatibleOperand
	KindIndex               = common.KindIndex
)

var (
	ErrConfiguration       = common.ErrConfiguration
	ErrSize                = common.ErrSize
	ErrParse               = common.ErrParse
	ErrIncompatibleOperand = common.ErrIncompatibleOperand
	ErrIndex               = common.ErrIndex
)

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	return common.KindOf(err)
}
