// Package memzero wipes secrets held in memory.
package memzero

import "runtime"

// Zero overwrites b with zeros. Private key PEM buffers are passed here once
// they have been written to disk.
func Zero(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
