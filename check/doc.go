/*
Package check is the contract checking engine.

A guarded call builds a [Spec] describing its contract and hands it to one of the guard constructors, then defers the guard's End so exit checks run on every path out of the call:

	func (c *Counter) Set(n int) {
		g := check.Public(c, counterClass, check.Spec{
			Pre:  func() error { return check.That(n <= 0, "n <= 0") },
			Post: func() error { return check.That(c.Value() == n, "value() == n") },
		})
		defer g.End()
		c.n = n
	}

Guard construction checks class invariants at entry, preconditions, and captures old values.
End checks class invariants at exit, then postconditions if the body returned normally, or panic guarantees if the body panicked (the panic resumes after the guarantee checks).
End must be deferred directly by the guarded function, otherwise it cannot tell a panicking exit from a clean one.

Overriding methods list the contracts of the methods they override in [Spec.Overrides].
Preconditions combine across the chain according to the configured [PreconditionPolicy]; postconditions and panic guarantees from every level must all hold.
An ancestor reachable through two embedding paths is checked once, keyed by [Method] identity.

Instance invariants are declared by implementing [Checked] on the guarded type, static invariants by [Class.SetStaticInvariant].
While the engine evaluates a check for an object, further guards on that same object are inert, so an invariant may freely call other contracted methods of its type.

Violations are routed to per-category handlers.
The default handler reports the violation and terminates the process; [SetFailureMode] with [ModePanic] makes violations panic with a catchable [*Violation] instead, which is what test harnesses want.
To remove all checking overhead, build with the 'nocontracts' tag.
*/
package check
