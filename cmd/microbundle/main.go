// Package main is the microbundle command.
package main

import (
	"os"

	"github.com/PatrickMcKenzier/microbundle/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
