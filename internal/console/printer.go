package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Printer writes operator-facing lines, coloring them when the destination
// is a terminal.
type Printer struct {
	out      io.Writer
	colorize bool
}

// NewPrinter builds a printer that auto-detects color support for out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, colorize: shouldColorize(out)}
}

// NewPlainPrinter builds a printer that never emits color codes.
func NewPlainPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Writer exposes the underlying destination.
func (p *Printer) Writer() io.Writer { return p.out }

// Plain prints an uncolored line.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}

// Success prints a green line.
func (p *Printer) Success(format string, args ...any) {
	p.colored(ansiGreen, format, args...)
}

// Warn prints a yellow line.
func (p *Printer) Warn(format string, args ...any) {
	p.colored(ansiYellow, format, args...)
}

// Alert prints a red line.
func (p *Printer) Alert(format string, args ...any) {
	p.colored(ansiRed, format, args...)
}

// Info prints a blue line.
func (p *Printer) Info(format string, args ...any) {
	p.colored(ansiBlue, format, args...)
}

func (p *Printer) colored(color string, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if p.colorize {
		fmt.Fprint(p.out, color, line, ansiReset, "\n")
		return
	}
	fmt.Fprintln(p.out, line)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
