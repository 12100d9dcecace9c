// Package main provides the formbot CLI and dashboard server.
package main

import (
	"os"

	"github.com/leapstack-labs/formbot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
