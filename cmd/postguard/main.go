package main

import (
	"os"

	"github.com/postguard-dev/postguard/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
