package command

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Registry.Get for unknown command IDs.
var ErrNotFound = errors.New("command not found")

// Registry is an immutable, insertion-ordered catalog of commands.
// Iteration order is stable within a session, which the search
// tie-breaks rely on for reproducible results.
type Registry struct {
	commands []Command
	byID     map[string]int
}

// NewRegistry builds a registry from the given commands. Duplicate or
// empty IDs are rejected.
func NewRegistry(commands []Command) (*Registry, error) {
	r := &Registry{
		commands: make([]Command, 0, len(commands)),
		byID:     make(map[string]int, len(commands)),
	}
	for _, cmd := range commands {
		if cmd.ID == "" {
			return nil, fmt.Errorf("command with title %q has empty id", cmd.Title)
		}
		if _, exists := r.byID[cmd.ID]; exists {
			return nil, fmt.Errorf("duplicate command id %q", cmd.ID)
		}
		r.byID[cmd.ID] = len(r.commands)
		r.commands = append(r.commands, cmd)
	}
	return r, nil
}

// Get looks up a command by ID.
func (r *Registry) Get(id string) (Command, error) {
	idx, ok := r.byID[id]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.commands[idx], nil
}

// Has reports whether the registry contains the given ID.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns the commands in insertion order. The returned slice is a
// copy so caller mutation cannot affect the registry.
func (r *Registry) All() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}
