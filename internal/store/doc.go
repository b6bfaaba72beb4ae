// Package store provides read access to the key-storage directory.
//
// The directory (normally ~/.ssh) is a flat set of {name} / {name}.pub file
// pairs. There is no index or manifest: the directory listing is the index.
// KeyDir never creates, renames or removes anything; key files are written
// by the key generator.
package store
