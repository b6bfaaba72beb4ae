// Package commands defines the octokey CLI and wires dependencies for subcommands.
//
// Commands
//
//   - add <name>     Generate a key pair, load it into ssh-agent, print the public key
//   - switch <name>  Replace every ssh-agent identity with the named key
//   - check          Show which account the remote accepts the agent's identity as
//   - list           List keys in the key directory
//
// # Implementation
//
// The root command loads configuration from OCTOKEY_* variables and flags,
// builds a zap logger and the key manager before any subcommand runs, and
// hands the process streams to the external tools so their prompts and
// output reach the terminal.
package commands
