package shell

// Screen is the terminal surface the builtins need.
type Screen interface {
	Printer
	Clear()
}

// Power performs host power actions. Either call may never return.
type Power interface {
	Restart()
	Shutdown()
}

// Builtins returns the built-in commands in table order.
func Builtins(scr Screen, pw Power) []Command {
	return []Command{
		{Name: "restart", Run: func() {
			scr.Print("Restarting...\n")
			pw.Restart()
		}},
		{Name: "shutdown", Run: func() {
			scr.Print("Attempting shutdown...\n")
			pw.Shutdown()
		}},
		{Name: "clear", Run: scr.Clear},
	}
}

// NewBuiltinTable builds the standard command table.
func NewBuiltinTable(scr Screen, pw Power) (*Table, error) {
	return NewTable(Builtins(scr, pw)...)
}
