// Package main is the entry point for the clickstream generator CLI.
package main

import (
	"os"

	"github.com/data-sculptor/aws-lakehouse-clickstream/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
