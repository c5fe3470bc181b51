/*
Package dbc provides runtime Design-by-Contract enforcement for Go: preconditions, postconditions, class invariants, and panic guarantees checked at well-defined points around a call.
The interesting parts live in the check package; this root package only anchors the module documentation.

Contracts are plain data (a check.Spec of condition functions) handed to a scoped guard that brackets the guarded body with defer.
Overriding methods compose their contracts with the contracts of the methods they override, following the usual subcontracting rules: an override may weaken preconditions, while postconditions and invariants from every level must still hold.

Checks can be turned off at runtime with check.Disable, or compiled out entirely with the 'nocontracts' build tag.
*/
package dbc
