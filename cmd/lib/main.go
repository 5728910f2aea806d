// Package main is the entry point for the lib CLI tool.
package main

import (
	"os"

	"github.com/WallySa7/the-library-sub001/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
