// Package checktest helps tests exercise contracted code. It flips the
// engine's failure mode to panic for the duration of a test, captures the
// violation a function raises, and restores the default mode on cleanup.
//
// The failure mode and handler registry are process-wide, so tests using this
// package must not run in parallel with each other.
package checktest

import (
	"testing"

	"github.com/saylorsolutions/dbc/check"
)

// Capture runs fn in [check.ModePanic] and returns the violation it raised,
// or nil if it completed cleanly. Panics that are not violations propagate.
func Capture(t testing.TB, fn func()) *check.Violation {
	t.Helper()
	check.SetFailureMode(check.ModePanic)
	t.Cleanup(func() {
		check.SetFailureMode(check.ModeTerminate)
	})

	var captured *check.Violation
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			v, ok := r.(*check.Violation)
			if !ok {
				panic(r)
			}
			captured = v
		}()
		fn()
	}()
	return captured
}

// ExpectViolation asserts that fn raises a violation of the given category
// and returns it for further inspection.
func ExpectViolation(t testing.TB, cat check.Category, fn func()) *check.Violation {
	t.Helper()
	v := Capture(t, fn)
	if v == nil {
		t.Fatalf("expected a %s violation, got none", cat)
	}
	if v.Category != cat {
		t.Fatalf("expected a %s violation, got: %v", cat, v)
	}
	return v
}

// ExpectOK asserts that fn completes without raising any violation.
func ExpectOK(t testing.TB, fn func()) {
	t.Helper()
	if v := Capture(t, fn); v != nil {
		t.Fatalf("expected no violation, got: %v", v)
	}
}
