//go:build nocontracts

package check

const compiledIn = false
