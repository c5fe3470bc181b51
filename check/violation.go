package check

import (
	"fmt"
	"runtime"
)

// PredicateError is the failure of a single contract predicate, carrying the
// human-readable rendering of the condition that did not hold.
type PredicateError struct {
	Condition string
}

func (e *PredicateError) Error() string {
	return e.Condition
}

// That evaluates a contract condition.
// It returns nil when cond holds, otherwise a [*PredicateError] rendering the
// condition from format and args. Condition functions in a [Spec] are expected
// to be built from That expressions:
//
//	Pre: func() error { return check.That(n <= 0, "n <= 0, got %d", n) },
func That(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return &PredicateError{Condition: fmt.Sprintf(format, args...)}
}

// Violation describes one failed contract check.
// In the default failure mode violations are reported and the process
// terminates; in [ModePanic] the engine panics with the *Violation so harness
// code can recover it.
type Violation struct {
	Category Category
	// File and Line locate the guard declaration (or the Code call site) that
	// the violated condition belongs to. File is empty if the location could
	// not be determined.
	File string
	Line int
	// Err is the predicate failure. For a precondition rejected across an
	// override chain it joins the failures of every declared level.
	Err error
}

func (v *Violation) Error() string {
	if v.File == "" {
		return fmt.Sprintf("%s violation: %v", v.Category, v.Err)
	}
	return fmt.Sprintf("%s violation at %s:%d: %v", v.Category, v.File, v.Line, v.Err)
}

// Unwrap exposes the underlying predicate failure to [errors.Is] and [errors.As].
func (v *Violation) Unwrap() error {
	return v.Err
}

// Code evaluates an implementation check immediately at the point it appears
// in a function body, outside of any guard phase. A non-nil result is reported
// as an [ImplementationCheck] violation.
func Code(fn func() error) {
	if !Enabled() {
		return
	}
	if err := fn(); err != nil {
		file, line := callerLocation(2)
		fail(&Violation{Category: ImplementationCheck, File: file, Line: line, Err: err})
	}
}

func callerLocation(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", 0
	}
	return file, line
}
