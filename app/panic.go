package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"simple/hal"
)

// panicAttr is white on red.
const panicAttr = 0x4f

// kernelPanic reports a panic that escaped the kernel: the log gets the
// value and stack, the screen gets a panic page.
func kernelPanic(h hal.HAL, value any) error {
	stack := debug.Stack()

	l := h.Logger()
	l.WriteLineString(fmt.Sprintf("SimpleOS panic: %v", value))
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		l.WriteLineString(line)
	}

	lines := []string{
		"SimpleOS panic:",
		fmt.Sprintf("panic: %v", value),
		"stack:",
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	drawPanic(h.Display().Text(), lines)

	return fmt.Errorf("kernel panic: %v", value)
}

// drawPanic paints lines on the text screen, wrapping long ones, until the
// screen is full.
func drawPanic(t hal.TextMode, lines []string) {
	mem := t.Memory()
	cols, rows := t.Columns(), t.Rows()
	for i := 0; i+1 < len(mem) && i < cols*rows*2; i += 2 {
		mem[i] = ' '
		mem[i+1] = panicAttr
	}

	row := 0
	for _, line := range lines {
		for row < rows {
			chunk, rest := takeBytes(line, cols)
			off := row * cols * 2
			for j := 0; j < len(chunk); j++ {
				mem[off+j*2] = chunk[j]
			}
			row++
			line = strings.TrimLeft(rest, " ")
			if line == "" {
				break
			}
		}
	}
	_ = t.Present(0)
}

func takeBytes(s string, n int) (prefix, rest string) {
	if n <= 0 {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	return s[:n], s[n:]
}
