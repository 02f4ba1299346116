// Package main is the entry point of the pdpsim command-line tool.
package main

import "github.com/sarchlab/pdpsim/pdpsim/cmd"

// Set with -ldflags at build time.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
