//go:build windows

package cmd

import (
	"fmt"
	"os"
)

// checkTTY reports whether an interactive console is available.
func checkTTY() error {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return fmt.Errorf("no console available: %w", err)
	}
	if fi.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("no console available")
	}
	return nil
}

// openTTY returns the console for interactive input/output.
func openTTY() (*os.File, error) {
	f, err := os.OpenFile("CONIN$", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("cannot open console: %w", err)
	}
	return f, nil
}

// termWidth returns 0 on Windows; callers fall back to no truncation.
func termWidth() int {
	return 0
}
