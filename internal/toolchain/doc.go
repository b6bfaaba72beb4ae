// Package toolchain implements the collaborators the key manager drives.
//
// Backends
//
//   - Exec           ssh-keygen, ssh-add and ssh run as subprocesses
//   - NativeGenerator writes ed25519 key pairs in-process
//   - SocketAgent    talks to ssh-agent over SSH_AUTH_SOCK
//
// Exec is the default for every capability. The other two are selected by
// configuration (OCTOKEY_GENERATOR=native, OCTOKEY_AGENT=socket).
package toolchain
