// Package main is the entry point for the cmdpal CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/runger/cmdpal/internal/cmd"
)

func main() {
	err := cmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, cmd.ErrCancelled):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
