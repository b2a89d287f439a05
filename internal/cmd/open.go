package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/shlex"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/cmdpal/internal/command"
	"github.com/runger/cmdpal/internal/picker"
)

var openPrint bool

// ErrCancelled is returned by open when the user dismisses the palette
// without selecting a command. The binary exits 2 so shell wrappers can
// tell cancellation apart from failure.
var ErrCancelled = errors.New("cancelled")

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the interactive palette",
	Long: `Open the interactive palette in the terminal.

Selecting a command records it in the recency list and dispatches its
action: "run" actions are executed, "url" and "view" targets are
printed to stdout for the caller (e.g. a shell wrapper) to handle.`,
	Args: cobra.NoArgs,
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVar(&openPrint, "print", false, "print the selected action instead of dispatching it")
	addEligibilityFlags(openCmd)

	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if err := checkTTY(); err != nil {
		return err
	}
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb is not supported")
	}

	a, closeApp, err := newApp()
	if err != nil {
		return err
	}
	defer closeApp()

	provider := &picker.PaletteProvider{
		Palette: a.palette,
		Context: a.eligibility(),
	}

	// Open /dev/tty for TUI input/output since stdout carries the
	// dispatch target. Color profile is detected from the real tty:
	// under $(cmdpal open) stdout is a pipe and lipgloss would default
	// to Ascii.
	tty, err := openTTY()
	if err != nil {
		return err
	}
	defer tty.Close()
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	p := tea.NewProgram(picker.NewModel(provider),
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	m, ok := finalModel.(picker.Model)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}

	item := m.Result()
	if item == nil {
		return ErrCancelled
	}

	selected, err := a.palette.Record(cmd.Context(), item.ID)
	if err != nil {
		return err
	}
	return dispatch(selected)
}

// dispatch interprets the selected command's action descriptor.
func dispatch(cmd command.Command) error {
	if openPrint {
		fmt.Printf("%s\t%s\n", cmd.Action.Kind, cmd.Action.Target)
		return nil
	}

	switch cmd.Action.Kind {
	case command.ActionRun:
		argv, err := shlex.Split(cmd.Action.Target)
		if err != nil {
			return fmt.Errorf("invalid run action for %s: %w", cmd.ID, err)
		}
		if len(argv) == 0 {
			return fmt.Errorf("empty run action for %s", cmd.ID)
		}
		c := exec.Command(argv[0], argv[1:]...)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()

	case command.ActionURL, command.ActionView:
		// Printed for the shell wrapper to open.
		fmt.Println(cmd.Action.Target)
		return nil

	default:
		return fmt.Errorf("unknown action kind %q for %s", cmd.Action.Kind, cmd.ID)
	}
}
