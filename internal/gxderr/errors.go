// Package gxderr defines the error kinds shared by the codec registry and
// the archive engine.
package gxderr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Callers distinguish failures with errors.Is, not type
// assertions — per-kind error structs exist only where a kind carries data
// (BlockHashMismatchError).
var (
	ErrIO                   = errors.New("gxd: io error")
	ErrBadMagic             = errors.New("gxd: bad magic")
	ErrCorruptFooter        = errors.New("gxd: corrupt footer")
	ErrUnsupportedAlgorithm = errors.New("gxd: unsupported algorithm")
	ErrCodec                = errors.New("gxd: codec error")
	ErrGlobalHashMismatch   = errors.New("gxd: global hash mismatch")
	ErrInvalidArgument      = errors.New("gxd: invalid argument")
)

// Wrap annotates cause with kind so errors.Is(result, kind) still succeeds.
func Wrap(kind error, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %v", kind, cause)
}

// Wrapf is Wrap with a formatted detail message in place of an error value.
func Wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{kind}, args...)...)
}

// BlockHashMismatchError reports the one error kind that carries data: which
// block failed verification.
type BlockHashMismatchError struct {
	ID int
}

func (e *BlockHashMismatchError) Error() string {
	return fmt.Sprintf("gxd: block %d hash mismatch", e.ID)
}

// Is lets errors.Is(err, &BlockHashMismatchError{}) match regardless of ID,
// mirroring how the sentinel kinds above are matched.
func (e *BlockHashMismatchError) Is(target error) bool {
	_, ok := target.(*BlockHashMismatchError)
	return ok
}
