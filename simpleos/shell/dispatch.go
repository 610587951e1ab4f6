package shell

// Printer renders text on the terminal.
type Printer interface {
	Print(s string)
}

// Dispatcher runs input lines against a Table.
type Dispatcher struct {
	table *Table
	out   Printer
}

func NewDispatcher(table *Table, out Printer) *Dispatcher {
	return &Dispatcher{table: table, out: out}
}

// Dispatch runs the command named by line and reports whether one matched.
// Otherwise it prints "Unknown command: <line>". There is no special case for
// an empty line; it simply matches nothing.
func (d *Dispatcher) Dispatch(line string) bool {
	if cmd, ok := d.table.Lookup(line); ok {
		cmd.Run()
		return true
	}
	d.out.Print("Unknown command: " + line + "\n")
	return false
}
