package check

// Category identifies the kind of contract check that produced a [Violation].
type Category int

const (
	// Precondition checks constrain the inputs of a call and are the caller's responsibility.
	Precondition Category = iota
	// Postcondition checks constrain the outcome of a call that returned normally.
	Postcondition
	// EntryInvariant checks run on the object before the guarded body.
	EntryInvariant
	// ExitInvariant checks run on the object after the guarded body, on both the clean and the panicking path.
	ExitInvariant
	// ExceptGuarantee checks constrain the state left behind by a body that panicked.
	ExceptGuarantee
	// ImplementationCheck is an implementation check evaluated immediately by [Code].
	ImplementationCheck

	categoryCount = int(ImplementationCheck) + 1
)

func (c Category) String() string {
	switch c {
	case Precondition:
		return "precondition"
	case Postcondition:
		return "postcondition"
	case EntryInvariant:
		return "entry invariant"
	case ExitInvariant:
		return "exit invariant"
	case ExceptGuarantee:
		return "exception guarantee"
	case ImplementationCheck:
		return "check"
	default:
		return "unknown"
	}
}
