package check_test

import (
	"errors"
	"testing"

	"github.com/saylorsolutions/dbc/check"
	"github.com/stretchr/testify/require"
)

func TestViolationDiagnostics(t *testing.T) {
	var got *check.Violation
	check.SetHandler(check.Precondition, func(v *check.Violation) {
		got = v
	})
	t.Cleanup(func() {
		check.SetHandler(check.Precondition, nil)
	})

	g := check.Function(check.Spec{
		Pre: func() error { return check.That(false, "n > %d", 10) },
	})
	defer g.End()

	require.NotNil(t, got)
	require.Equal(t, check.Precondition, got.Category)
	require.NotEmpty(t, got.File, "the diagnostic must carry the guard's source location")
	require.Positive(t, got.Line)
	require.Contains(t, got.Error(), "precondition violation")
	require.Contains(t, got.Error(), "n > 10")

	var pred *check.PredicateError
	require.ErrorAs(t, got, &pred)
	require.Equal(t, "n > 10", pred.Condition)
}

func TestTerminateModeExits(t *testing.T) {
	var codes []int
	restore := check.StubExit(func(code int) {
		codes = append(codes, code)
	})
	defer restore()

	g := check.Function(check.Spec{
		Pre: func() error { return check.That(false, "never holds") },
	})
	defer g.End()
	require.Equal(t, []int{1}, codes)
}

func TestPanicModeRaisesViolation(t *testing.T) {
	check.SetFailureMode(check.ModePanic)
	t.Cleanup(func() {
		check.SetFailureMode(check.ModeTerminate)
	})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		v, ok := r.(*check.Violation)
		require.True(t, ok)
		require.Equal(t, check.Precondition, v.Category)
	}()
	check.Function(check.Spec{
		Pre: func() error { return check.That(false, "never holds") },
	})
}

func TestDoubleFaultTerminates(t *testing.T) {
	var codes []int
	restore := check.StubExit(func(code int) {
		codes = append(codes, code)
	})
	defer restore()
	check.SetFailureMode(check.ModePanic)
	t.Cleanup(func() {
		check.SetFailureMode(check.ModeTerminate)
	})

	boom := errors.New("boom")
	require.PanicsWithValue(t, boom, func() {
		g := check.Function(check.Spec{
			Except: func() error { return check.That(false, "state was restored") },
		})
		defer g.End()
		panic(boom)
	})
	require.Equal(t, []int{2}, codes, "a guarantee failure colliding with the body's panic must terminate")
}

func TestCodeImplementationCheck(t *testing.T) {
	var got []*check.Violation
	check.SetHandler(check.ImplementationCheck, func(v *check.Violation) {
		got = append(got, v)
	})
	t.Cleanup(func() {
		check.SetHandler(check.ImplementationCheck, nil)
	})

	check.Code(func() error { return check.That(true, "fine") })
	require.Empty(t, got)

	check.Code(func() error { return check.That(false, "broken interim state") })
	require.Len(t, got, 1)
	require.Equal(t, check.ImplementationCheck, got[0].Category)
	require.Contains(t, got[0].Error(), "broken interim state")
}
