package check

import (
	"errors"
	"fmt"
)

type guardState uint8

const (
	stateCreated guardState = iota
	stateEntryChecked
	stateBodyRunning
	stateCompleted
)

type callKind uint8

const (
	kindFunction callKind = iota
	kindPublic
	kindConstructor
	kindDestructor
)

// Guard brackets one guarded call activation.
//
// Construction runs the entry phases in order: entry invariants,
// preconditions, old value capture. The guarded body then runs in the calling
// function, outside the guard's control. [Guard.End] runs the exit phases:
// exit invariants, then postconditions on a clean exit or panic guarantees on
// a panicking one. End fires exactly once; a second call is a no-op.
//
// A guard constructed while the engine is already evaluating a check for the
// same object (or class) is inert: none of its phases run. The same applies
// when checking is disabled or compiled out.
type Guard struct {
	kind  callKind
	chain []*Spec
	obj   any
	cls   *Class
	key   any
	file  string
	line  int
	state guardState
	inert bool
}

// Function guards a free, private, or protected function: no class invariants
// apply unless the spec carries an explicit Invariant.
func Function(spec Spec) *Guard {
	return begin(kindFunction, nil, nil, spec)
}

// Public guards a public member function of cls called on obj. Static and
// instance invariants are checked at entry and exit. obj must be the receiver
// pointer (it keys invariant suppression) and may implement [Checked].
func Public(obj any, cls *Class, spec Spec) *Guard {
	return begin(kindPublic, obj, cls, spec)
}

// Constructor guards a constructor body. Entry never checks the instance
// invariant, since the object is not established yet; a clean exit checks it,
// a panicking exit does not.
func Constructor(obj any, cls *Class, spec Spec) *Guard {
	return begin(kindConstructor, obj, cls, spec)
}

// Destructor guards a destructor (Close-like) body. Entry checks invariants
// as usual; a clean exit checks only the static invariant, since a destroyed
// object has no instance invariants left to hold, while a panicking exit
// checks the instance invariant too because the object survived.
func Destructor(obj any, cls *Class, spec Spec) *Guard {
	return begin(kindDestructor, obj, cls, spec)
}

func begin(kind callKind, obj any, cls *Class, spec Spec) *Guard {
	g := &Guard{kind: kind, obj: obj, cls: cls, key: suppressKey(obj, cls)}
	if !Enabled() || (g.key != nil && isChecking(g.key)) {
		g.inert = true
		return g
	}
	g.file, g.line = callerLocation(3)
	g.chain = spec.flatten()
	g.validateChain()

	g.runChecks(EntryInvariant, g.invariantFuncs(EntryInvariant, false))
	g.state = stateEntryChecked
	g.checkPreconditions()
	g.captureOld()
	g.state = stateBodyRunning
	return g
}

// validateChain catches a contract wired into a hierarchy it does not belong
// to. This is an integration bug in the caller, not a contract violation, so
// it panics with a plain error instead of going through the failure handlers.
func (g *Guard) validateChain() {
	if g.cls == nil {
		return
	}
	for _, sp := range g.chain {
		if sp.Method != nil && !g.cls.extends(sp.Method.class) {
			panic(fmt.Errorf("contract for %s does not belong to the hierarchy of class %s", sp.Method, g.cls.name))
		}
	}
}

// End performs the exit-phase checks and must be deferred directly by the
// guarded function:
//
//	g := check.Public(obj, cls, spec)
//	defer g.End()
//
// Deferring anything other than End itself (a wrapper closure calling it, for
// example) hides the in-flight panic from End's recover and makes a panicking
// exit look clean.
//
// On the panicking path End re-panics with the original value after the exit
// checks. If an exit check's handler itself panics while the body's panic is
// in flight, that is a double fault and the process terminates regardless of
// the failure mode.
func (g *Guard) End() {
	if g.inert || g.state == stateCompleted {
		return
	}
	g.state = stateCompleted

	if r := recover(); r != nil {
		func() {
			defer func() {
				if f := recover(); f != nil {
					doubleFault(r, f)
				}
			}()
			g.runChecks(ExitInvariant, g.invariantFuncs(ExitInvariant, true))
			g.runChecks(ExceptGuarantee, g.conditionFuncs(func(sp *Spec) func() error { return sp.Except }))
		}()
		panic(r)
	}

	g.runChecks(ExitInvariant, g.invariantFuncs(ExitInvariant, false))
	g.runChecks(Postcondition, g.conditionFuncs(func(sp *Spec) func() error { return sp.Post }))
}

// invariantFuncs collects the invariant checks that apply to one phase.
// Only the most-derived contract's invariants are considered: base invariants
// are implied by construction order, and rechecking them at entry would
// produce false failures on partially-constructed state.
//
// The static invariant always applies. The instance invariant follows the
// constructor/destructor rules from the guard kind documentation.
func (g *Guard) invariantFuncs(cat Category, panicking bool) []func() error {
	var fns []func() error
	if inv := g.chain[0].Invariant; inv != nil {
		fns = append(fns, inv)
	}
	if g.cls != nil {
		if static := g.cls.staticInvariant(); static != nil {
			fns = append(fns, static)
		}
	}
	if chk, ok := g.obj.(Checked); ok {
		applies := true
		switch g.kind {
		case kindConstructor:
			applies = cat == ExitInvariant && !panicking
		case kindDestructor:
			applies = cat == EntryInvariant || panicking
		}
		if applies {
			fns = append(fns, chk.Invariant)
		}
	}
	return fns
}

func (g *Guard) conditionFuncs(pick func(*Spec) func() error) []func() error {
	var fns []func() error
	for _, sp := range g.chain {
		if fn := pick(sp); fn != nil {
			fns = append(fns, fn)
		}
	}
	return fns
}

// checkPreconditions combines declared preconditions across the chain under
// the configured policy. Under [PreconditionOr] the first passing level
// accepts the call; the violation raised when all levels fail joins every
// level's error so the diagnostic shows what was tried.
func (g *Guard) checkPreconditions() {
	var declared []*Spec
	if preconditionPolicy() == PreconditionDerivedOnly {
		if g.chain[0].Pre != nil {
			declared = append(declared, g.chain[0])
		}
	} else {
		for _, sp := range g.chain {
			if sp.Pre != nil {
				declared = append(declared, sp)
			}
		}
	}
	if len(declared) == 0 {
		return
	}

	release := g.raiseChecking()
	defer release()
	var errs []error
	for _, sp := range declared {
		err := sp.Pre()
		if err == nil {
			return
		}
		errs = append(errs, err)
	}
	g.fail(Precondition, errors.Join(errs...))
}

// captureOld runs every level's old value capture exactly once, in chain
// order. Captures are skipped entirely when no level declares a Post or
// Except, since nothing could read them.
func (g *Guard) captureOld() {
	needed := false
	for _, sp := range g.chain {
		if sp.Post != nil || sp.Except != nil {
			needed = true
			break
		}
	}
	if !needed {
		return
	}
	for _, sp := range g.chain {
		if sp.Old != nil {
			sp.Old()
		}
	}
}

// runChecks evaluates condition functions in order with the suppression depth
// raised, reporting the first failure as a violation of cat.
func (g *Guard) runChecks(cat Category, fns []func() error) {
	if len(fns) == 0 {
		return
	}
	release := g.raiseChecking()
	defer release()
	for _, fn := range fns {
		if err := fn(); err != nil {
			g.fail(cat, err)
			return
		}
	}
}

func (g *Guard) raiseChecking() func() {
	if g.key == nil {
		return func() {}
	}
	raiseChecking(g.key)
	return func() {
		lowerChecking(g.key)
	}
}

func (g *Guard) fail(cat Category, err error) {
	fail(&Violation{Category: cat, File: g.file, Line: g.line, Err: err})
}
