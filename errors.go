// errors.go - sentinel error kinds for the query engine and collection API

package doclite

import (
	"github.com/pkg/errors"
)

// Sentinel error kinds. Callers compare with errors.Is; wrapped instances
// carry a stack trace courtesy of github.com/pkg/errors so write-path and
// planner failures are diagnosable without a debugger attached.
var (
	// ErrMalformedQuery is returned when a query document fails to compile
	// into a predicate tree (unknown operator, empty field path, non-array
	// $and/$or operand, several operators on one field), and by
	// ParseDocument for text that is not valid JSON. A non-array operand
	// for $in/$nin/$all is reported as ErrTypeMismatch instead.
	ErrMalformedQuery = errors.New("doclite: malformed query")

	// ErrInvalidPath names a field path that cannot be resolved or
	// assigned. No operation in this package returns it: UpdateOne's $set
	// writes each key as a top-level field without resolving a path.
	ErrInvalidPath = errors.New("doclite: invalid field path")

	// ErrDuplicateKey is returned when a write would create two entries
	// with the same indexed key in a unique index.
	ErrDuplicateKey = errors.New("doclite: duplicate key")

	// ErrTypeMismatch is returned when an operator's operand has the wrong
	// shape, e.g. a non-array RHS for $in.
	ErrTypeMismatch = errors.New("doclite: type mismatch")

	// ErrCancelled names a cancelled or timed-out operation. No operation
	// in this package returns it: a Cursor carries no context or deadline
	// and runs until its candidates are exhausted or it is closed.
	ErrCancelled = errors.New("doclite: cancelled")

	// ErrNotFound is returned by FindOne and Query.One when no document
	// matches.
	ErrNotFound = errors.New("doclite: not found")
)

// wrapf adds a stack trace and caller-supplied context to a sentinel error
// without losing errors.Is compatibility with the sentinel itself.
func wrapf(sentinel error, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, format, args...)
}
