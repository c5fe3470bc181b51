package check

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/saylorsolutions/dbc/syncx"
	"golang.org/x/term"
)

// Handler receives a contract violation for one [Category].
// A handler either terminates the process or panics; returning normally makes
// the engine continue as if the check had passed, which is only sensible for
// tooling that collects violations.
type Handler func(*Violation)

// FailureMode selects the default handler behavior for every category.
type FailureMode int

const (
	// ModeTerminate reports the violation and exits the process.
	// This is the default: a violated contract is a programmer error, and
	// continuing on corrupted state is worse than dying.
	ModeTerminate FailureMode = iota
	// ModePanic panics with the [*Violation] so callers can recover it.
	// Code that catches a violation accepts responsibility for not resuming
	// normal operation afterwards.
	ModePanic
)

var (
	handlerMux sync.RWMutex
	handlers   [categoryCount]Handler
	mode       = ModeTerminate

	// exit is swapped out by tests that need to observe termination.
	exit = os.Exit
)

// SetFailureMode switches the default handler for all categories at once.
// Handlers installed with [SetHandler] are unaffected.
//
// Like the rest of the handler registry this is meant to be called during
// program (or test) setup, not concurrently with active checking.
func SetFailureMode(m FailureMode) {
	syncx.LockFunc(&handlerMux, func() {
		mode = m
	})
}

// SetHandler installs a handler for one category, replacing any previous one.
// A nil handler restores the default selected by [SetFailureMode].
func SetHandler(cat Category, h Handler) {
	syncx.LockFunc(&handlerMux, func() {
		handlers[cat] = h
	})
}

func handlerFor(cat Category) Handler {
	return syncx.RLockFuncT(&handlerMux, func() Handler {
		if h := handlers[cat]; h != nil {
			return h
		}
		if mode == ModePanic {
			return panicOnFailure
		}
		return terminateOnFailure
	})
}

func fail(v *Violation) {
	handlerFor(v.Category)(v)
}

func panicOnFailure(v *Violation) {
	panic(v)
}

func terminateOnFailure(v *Violation) {
	report(v)
	exit(1)
}

func report(v *Violation) {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		_, _ = fmt.Fprintf(os.Stderr, "\x1b[1;31m%s\x1b[0m\n", v.Error())
		return
	}
	slog.Error("contract violation",
		"category", v.Category.String(),
		"location", fmt.Sprintf("%s:%d", v.File, v.Line),
		"condition", v.Err,
	)
}

// doubleFault handles a violation handler panicking during exit checks while
// the guarded body's own panic is still in flight. Letting the two collide
// would lose one of them, so this always terminates regardless of the
// configured failure mode.
func doubleFault(inFlight, exitFailure any) {
	slog.Error("double fault: contract exit check failed while a panic was propagating",
		"in_flight", fmt.Sprint(inFlight),
		"exit_failure", fmt.Sprint(exitFailure),
	)
	exit(2)
}
