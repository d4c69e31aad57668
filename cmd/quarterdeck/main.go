// Package main provides the Quarterdeck admin console CLI.
package main

import (
	"os"

	"github.com/quarterdeck-labs/quarterdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
