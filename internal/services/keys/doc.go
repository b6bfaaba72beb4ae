// Package keys implements the key manager: add, switch, check and list SSH
// identities kept in the key-storage directory.
//
// Each operation validates its preconditions against the store and then
// drives the collaborators in a fixed order. A failing step aborts the rest
// of the operation. Earlier side effects are never rolled back; they are
// reported through domain.PartialStateError instead.
package keys
