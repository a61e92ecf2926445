package sep

import "fmt"

// Kind categorizes engine failures the way callers are expected to branch on,
// per the error handling design: never exceptions for control flow.
type Kind int

const (
	// KindNone is the zero value; never attached to a non-nil error.
	KindNone Kind = iota
	// KindAllocationFailure means a working array could not be obtained.
	KindAllocationFailure
	// KindInvalidInput means the graph or QP state violates a data-model
	// invariant (asymmetric pattern, non-positive weight, self-edge, x
	// outside [0,1] at QP init).
	KindInvalidInput
	// KindInvariantViolation means an internal assertion failed; only
	// raised when Options.DoExpensiveChecks is set.
	KindInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case KindAllocationFailure:
		return "allocation failure"
	case KindInvalidInput:
		return "invalid input"
	case KindInvariantViolation:
		return "invariant violation"
	default:
		return "unknown"
	}
}

// E is the engine's categorical error type. Index is -1 when no single
// offending vertex/edge is cheap to report.
type E struct {
	Kind    Kind
	Index   int
	Message string
}

func (e *E) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s (index %d)", e.Kind, e.Message, e.Index)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errAlloc(msg string) error {
	return &E{Kind: KindAllocationFailure, Index: -1, Message: msg}
}

func errInvalidAt(msg string, index int) error {
	return &E{Kind: KindInvalidInput, Index: index, Message: msg}
}

func errInvalid(msg string) error {
	return &E{Kind: KindInvalidInput, Index: -1, Message: msg}
}

func errInvariant(msg string) error {
	return &E{Kind: KindInvariantViolation, Index: -1, Message: msg}
}

// KindOf unwraps err (if it is, or wraps, an *E) and reports its Kind.
// Returns KindNone for a nil error and for an error that isn't one of ours.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	if e, ok := err.(*E); ok {
		return e.Kind
	}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return KindOf(u.Unwrap())
	}
	return KindNone
}
