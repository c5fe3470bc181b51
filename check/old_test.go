package check_test

import (
	"testing"

	"github.com/saylorsolutions/dbc/check"
	"github.com/stretchr/testify/require"
)

func TestOldValueFrozenAtCapture(t *testing.T) {
	live := 5
	oldValue := check.NewOld[int]()
	oldValue.Capture(func() int { return live })
	live = 9
	require.Equal(t, 5, oldValue.Get(), "mutating the live state must not reach the snapshot")
	require.True(t, oldValue.Captured())
}

func TestOldValueUncapturedAccess(t *testing.T) {
	oldValue := check.NewOld[string]()
	require.False(t, oldValue.Captured())
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, check.ErrUncapturedOldValue)
	}()
	oldValue.Get()
}

func TestOldValueCapturedTwice(t *testing.T) {
	oldValue := check.NewOld[int]()
	oldValue.Capture(func() int { return 1 })
	require.PanicsWithError(t, "old value captured twice", func() {
		oldValue.Capture(func() int { return 2 })
	})
	require.Equal(t, 1, oldValue.Get())
}

func TestOldValueDeepCopy(t *testing.T) {
	live := []int{1, 2, 3}
	oldValue := check.NewOld[[]int]()
	// The capture function owns the depth of the copy.
	oldValue.Capture(func() []int {
		cp := make([]int, len(live))
		copy(cp, live)
		return cp
	})
	live[0] = 99
	require.Equal(t, []int{1, 2, 3}, oldValue.Get())
}

func TestResultBindAndGet(t *testing.T) {
	res := check.NewResult[int]()
	require.Equal(t, 7, res.Bind(7), "Bind returns the value so the body can bind and return in one statement")
	require.Equal(t, 7, res.Get())
}

func TestResultUnboundAccess(t *testing.T) {
	res := check.NewResult[int]()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, check.ErrUnboundResult)
	}()
	res.Get()
}

func TestResultBoundTwice(t *testing.T) {
	res := check.NewResult[int]()
	res.Bind(1)
	require.PanicsWithError(t, "result bound twice", func() {
		res.Bind(2)
	})
}
