// Package app wires application dependencies for the CLI.
//
// It loads Config from the environment, resolves the key-storage directory
// once, and builds the store, toolchain backends and key manager that the
// commands use.
package app
