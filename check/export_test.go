package check

// StubExit replaces the process-exit hook so tests can observe termination
// paths. The returned function restores the real hook.
func StubExit(fn func(code int)) (restore func()) {
	prev := exit
	exit = fn
	return func() {
		exit = prev
	}
}
