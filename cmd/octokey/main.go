package main

import (
	"os"

	"octokey/cmd/octokey/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
