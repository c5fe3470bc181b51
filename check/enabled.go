//go:build !nocontracts

package check

// compiledIn is false when building with the 'nocontracts' tag, which lets
// the compiler reduce every guard to an inert value.
const compiledIn = true
