// Package main is the entry point for the ingest CLI binary.
package main

import (
	"os"

	"github.com/okian/statsboard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
