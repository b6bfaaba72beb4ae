// Package crypto holds the few key primitives octokey performs in-process.
//
// Contents
//
//   - Ed25519 key pair generation encoded the way ssh-keygen writes it
//     (GenerateEd25519: OpenSSH private key PEM and an authorized_keys line)
//   - Public key inspection for listings (ParsePublicKey, Fingerprint)
//
// # Notes
//
// Everything else (agent storage, the SSH handshake) is delegated to
// external tools. Callers should wipe returned private key bytes with
// memzero.Zero once written.
package crypto
