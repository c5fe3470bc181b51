package check

import "sync/atomic"

var disabled atomic.Bool

// Disable turns off all contract checking at runtime: guards constructed
// while disabled are inert for their whole activation.
// This is concurrency safe, but it is a global setting and affects every
// goroutine; production builds that never want checks should use the
// 'nocontracts' build tag instead, which removes the cost entirely.
func Disable() {
	disabled.Store(true)
}

// Enable re-enables contract checking after a call to [Disable]. It cannot
// bring checks back in a binary built with the 'nocontracts' tag.
func Enable() {
	disabled.Store(false)
}

// Enabled reports whether contract checks currently run.
func Enabled() bool {
	return compiledIn && !disabled.Load()
}
