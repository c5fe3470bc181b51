// Package syncx holds the small locking helpers the registries in this
// module lean on: run a function with a lock held instead of sprinkling
// Lock/defer Unlock pairs around every map access.
package syncx

import "sync"

// LockFunc runs fn with mux held.
func LockFunc(mux sync.Locker, fn func()) {
	mux.Lock()
	defer mux.Unlock()
	fn()
}

// LockFuncT runs fn with mux held and returns its result.
func LockFuncT[T any](mux sync.Locker, fn func() T) T {
	mux.Lock()
	defer mux.Unlock()
	return fn()
}

// RLocker is the read side of a [sync.RWMutex].
type RLocker interface {
	RLock()
	RUnlock()
}

// RLockFuncT runs fn with the read lock held and returns its result.
func RLockFuncT[T any](mux RLocker, fn func() T) T {
	mux.RLock()
	defer mux.RUnlock()
	return fn()
}
