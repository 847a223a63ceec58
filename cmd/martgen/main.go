// Package main is the entry point for martgen.
package main

import (
	"fmt"
	"os"

	"github.com/dmartlab/martgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
