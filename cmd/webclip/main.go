// Package main is the entry point for the webclip CLI.
package main

import (
	"os"

	"github.com/clipkit/webclip/cmd/webclip/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
