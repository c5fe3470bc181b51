package check

import "errors"

var (
	// ErrUncapturedOldValue marks a read of an [Old] cell before anything was
	// captured into it. This is an integration bug in the contract wiring,
	// not a contract violation, so it surfaces as a catchable panic instead
	// of going through the failure handlers.
	ErrUncapturedOldValue = errors.New("old value read before capture")
	// ErrUnboundResult is the [Result] counterpart of [ErrUncapturedOldValue].
	ErrUnboundResult = errors.New("result read before binding")
)

// OldValueError is the panic value raised by [Old.Get] on an uncaptured cell.
// It unwraps to [ErrUncapturedOldValue].
type OldValueError struct{}

func (e *OldValueError) Error() string {
	return ErrUncapturedOldValue.Error()
}

func (e *OldValueError) Unwrap() error {
	return ErrUncapturedOldValue
}

// ResultError is the panic value raised by [Result.Get] on an unbound slot.
// It unwraps to [ErrUnboundResult].
type ResultError struct{}

func (e *ResultError) Error() string {
	return ErrUnboundResult.Error()
}

func (e *ResultError) Unwrap() error {
	return ErrUnboundResult
}

// Old is a snapshot cell for postconditions and panic guarantees. It starts
// empty, is populated exactly once during the guard's capture phase, and is
// read-only afterwards: mutations of the live object cannot change what a
// postcondition observes through it.
type Old[T any] struct {
	captured bool
	val      T
}

// NewOld returns an empty cell. Declare cells before the guard so the
// contract's closures can share them:
//
//	oldN := check.NewOld[int]()
//	g := check.Public(c, cls, check.Spec{
//		Old:  func() { oldN.Capture(c.Value) },
//		Post: func() error { return check.That(c.Value() == oldN.Get()-1, "value() == old-1") },
//	})
func NewOld[T any]() *Old[T] {
	return &Old[T]{}
}

// Capture evaluates fn exactly once and freezes the returned value.
// The cell stores whatever fn returns by value; when T is a mutable aggregate
// (slice, map, pointer-bearing struct), fn must return a deep enough copy
// that later mutation of the live object cannot reach the snapshot.
// Capturing into an already-populated cell is a misuse panic.
func (o *Old[T]) Capture(fn func() T) {
	if o.captured {
		panic(errors.New("old value captured twice"))
	}
	o.val = fn()
	o.captured = true
}

// Get returns the frozen value. It panics with a [*OldValueError] if nothing
// was captured, which happens when a condition reads a cell the contract's
// Old function never populated.
func (o *Old[T]) Get() T {
	if !o.captured {
		panic(&OldValueError{})
	}
	return o.val
}

// Captured reports whether the cell holds a value. Conditions shared between
// guards that sometimes skip capture (a chain with no postconditions, say)
// can use it to degrade gracefully.
func (o *Old[T]) Captured() bool {
	return o.captured
}

// Result is the shared result slot for a non-void guarded function. The
// most-derived body binds it once; every level's postcondition reads the same
// value through it.
type Result[T any] struct {
	bound bool
	val   T
}

// NewResult returns an unbound result slot.
func NewResult[T any]() *Result[T] {
	return &Result[T]{}
}

// Bind stores the function's result and returns it, so the body can bind and
// return in one statement:
//
//	return res.Bind(c.n)
//
// Binding twice is a misuse panic: the result belongs to the most-derived
// body alone.
func (r *Result[T]) Bind(v T) T {
	if r.bound {
		panic(errors.New("result bound twice"))
	}
	r.val = v
	r.bound = true
	return v
}

// Get returns the bound result. It panics with a [*ResultError] if the body
// never bound one.
func (r *Result[T]) Get() T {
	if !r.bound {
		panic(&ResultError{})
	}
	return r.val
}
