package internal

import "github.com/pkg/errors"

// Threading errors through every geometric predicate the sweep calls would
// bury the algorithm. Instead, we panic with one of the error kinds below, and
// the public API recovers to convert to an error.

var (
	// A ray that must hit a known edge (by the sweep's invariants) does not.
	// The scene breaks the preconditions, or the numbers degenerated.
	ErrGeometryInconsistency = errors.New("geometry inconsistency")

	// A vertex would have more than two incident edges.
	ErrDegreeViolation = errors.New("degree violation")

	// Two edges were compared along a ray that misses one of them.
	ErrAmbiguousOrdering = errors.New("ambiguous ordering")

	// The scene fails validation (overlap, nesting, viewpoint inside).
	ErrInvalidScene = errors.New("invalid scene")
)

// Runtime errors also implement error, so our panics carry a private wrapper
// to keep a nil dereference from being reported as a bad scene.
type visibilityPanic struct {
	err error
}

// Panic with an error of the given kind.
func fatalf(kind error, format string, args ...interface{}) {
	panic(visibilityPanic{errors.Wrapf(kind, format, args...)})
}

func HandleVisibilityPanicRecover(r interface{}) error {
	if r != nil {
		if p, ok := r.(visibilityPanic); ok {
			return p.err
		}
		panic(r)
	}
	return nil
}
