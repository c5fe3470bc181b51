package check

import (
	"sync/atomic"
)

// Spec describes the contract for one call activation. Every field is
// optional; an omitted condition is vacuously true. At most one of each kind
// of condition runs per activation, in the fixed phase order documented on
// [Guard].
type Spec struct {
	// Method is the identity of the virtual method declaring this contract.
	// It may be nil for non-virtual functions, but must be set on any contract
	// that participates in an override chain so the resolver can deduplicate
	// ancestors shared between bases.
	Method *Method

	// Invariant is an explicit invariant for guards that have no class or
	// object to derive one from, such as [Function] guards. For member guards
	// invariants come from the [Class] and the [Checked] interface instead.
	Invariant func() error

	// Pre asserts constraints on the call's inputs.
	Pre func() error

	// Old captures old values into [Old] cells. It runs exactly once, after
	// preconditions pass and before the body, and only if some level of the
	// chain declares a Post or Except that could read the captured values.
	Old func()

	// Post asserts constraints that must hold after a body that returned
	// normally.
	Post func() error

	// Except asserts constraints that must hold after a body that panicked.
	Except func() error

	// Overrides lists the contracts of the methods this one overrides, in
	// declaration/base-list order. Ancestor contracts may carry their own
	// Overrides; the guard flattens the whole tree for the activation.
	Overrides []Spec
}

// PreconditionPolicy selects how preconditions combine across an override
// chain. The classic subcontracting rule is [PreconditionOr]; the stricter
// reading, where an override must restate the weakened precondition it wants,
// is available as [PreconditionDerivedOnly].
type PreconditionPolicy int32

const (
	// PreconditionOr accepts the call if no level of the chain declares a
	// precondition, or if at least one declared precondition holds. The call
	// is rejected only when every declared precondition fails, and the
	// violation joins all of their failures.
	PreconditionOr PreconditionPolicy = iota
	// PreconditionDerivedOnly evaluates only the most-derived contract's
	// precondition and ignores ancestor preconditions entirely.
	PreconditionDerivedOnly
)

var prePolicy atomic.Int32

// SetPreconditionPolicy switches the chain combination rule for
// preconditions. The default is [PreconditionOr].
func SetPreconditionPolicy(p PreconditionPolicy) {
	prePolicy.Store(int32(p))
}

func preconditionPolicy() PreconditionPolicy {
	return PreconditionPolicy(prePolicy.Load())
}

// flatten resolves the override chain into evaluation order: the spec itself
// first, then ancestors depth-first in declaration order. A contract whose
// Method was already seen is dropped, so a diamond ancestor is checked exactly
// once. The result is fixed for the activation.
func (s *Spec) flatten() []*Spec {
	if len(s.Overrides) == 0 {
		return []*Spec{s}
	}
	var (
		out  []*Spec
		seen = make(map[*Method]bool)
		walk func(sp *Spec)
	)
	walk = func(sp *Spec) {
		if sp.Method != nil {
			if seen[sp.Method] {
				return
			}
			seen[sp.Method] = true
		}
		out = append(out, sp)
		for i := range sp.Overrides {
			walk(&sp.Overrides[i])
		}
	}
	walk(s)
	return out
}
