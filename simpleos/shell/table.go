// Package shell matches input lines against a fixed command table.
package shell

import "fmt"

// Command is a named zero-argument action.
type Command struct {
	Name string
	Run  func()
}

// Table is an ordered, immutable list of commands.
type Table struct {
	cmds []Command
}

// NewTable validates cmds and keeps them in the given order.
func NewTable(cmds ...Command) (*Table, error) {
	seen := make(map[string]struct{}, len(cmds))
	for _, cmd := range cmds {
		if cmd.Name == "" {
			return nil, fmt.Errorf("shell table: empty command name")
		}
		if cmd.Run == nil {
			return nil, fmt.Errorf("shell table: %q has no handler", cmd.Name)
		}
		if _, ok := seen[cmd.Name]; ok {
			return nil, fmt.Errorf("shell table: duplicate command %q", cmd.Name)
		}
		seen[cmd.Name] = struct{}{}
	}
	return &Table{cmds: append([]Command(nil), cmds...)}, nil
}

// Lookup returns the first command whose name equals name exactly.
func (t *Table) Lookup(name string) (Command, bool) {
	for _, cmd := range t.cmds {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// Names returns command names in table order.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.cmds))
	for _, cmd := range t.cmds {
		out = append(out, cmd.Name)
	}
	return out
}
