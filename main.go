package main

import (
	"mgas/cmd"
)

// main delegates to cmd.Execute, which parses arguments, runs the selected
// command and exits non-zero on failure.
func main() {
	cmd.Execute()
}
