// Package main provides the openshelf library catalog CLI.
package main

import (
	"os"

	"github.com/openshelf/openshelf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
