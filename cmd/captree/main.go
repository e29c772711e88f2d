// Package main provides the captree CLI entrypoint.
package main

import (
	"os"

	"github.com/captree-labs/captree/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
