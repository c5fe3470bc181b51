package checktest_test

import (
	"testing"

	"github.com/saylorsolutions/dbc/check"
	"github.com/saylorsolutions/dbc/checktest"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	v := checktest.Capture(t, func() {
		g := check.Function(check.Spec{
			Pre: func() error { return check.That(false, "never holds") },
		})
		defer g.End()
	})
	require.NotNil(t, v)
	require.Equal(t, check.Precondition, v.Category)

	require.Nil(t, checktest.Capture(t, func() {
		g := check.Function(check.Spec{
			Pre: func() error { return check.That(true, "holds") },
		})
		defer g.End()
	}))
}

func TestCaptureLeavesOtherPanicsAlone(t *testing.T) {
	require.PanicsWithValue(t, "not a violation", func() {
		checktest.Capture(t, func() {
			panic("not a violation")
		})
	})
}
