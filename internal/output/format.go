// Package output provides terminal output helpers for the changelogmd CLI:
// colored status lines, a debug logger, and a spinner for long-running work.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes status lines to a writer, with or without styling.
type Printer struct {
	out     io.Writer
	plain   bool
	symbols Symbols
}

// NewPrinter returns a Printer for w. Styling is dropped when plain is set or
// w is not a color-capable terminal.
func NewPrinter(w io.Writer, plain bool) *Printer {
	caps := DetectTerminalCapabilities(w)
	if plain {
		caps.SupportsColor = false
		caps.SupportsUnicode = false
	}
	return &Printer{
		out:     w,
		plain:   !caps.SupportsColor,
		symbols: SelectSymbols(caps),
	}
}

// Success prints a green checkmark followed by the message.
func (p *Printer) Success(format string, args ...any) {
	p.status(color.New(color.FgGreen, color.Bold), p.symbols.Checkmark, fmt.Sprintf(format, args...))
}

// Failure prints a red failure marker followed by the message.
func (p *Printer) Failure(format string, args ...any) {
	p.status(color.New(color.FgRed, color.Bold), p.symbols.Failure, fmt.Sprintf(format, args...))
}

// Info prints a dimmed line.
func (p *Printer) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.plain {
		fmt.Fprintln(p.out, msg)
		return
	}
	fmt.Fprintln(p.out, color.New(color.Faint).Sprint(msg))
}

func (p *Printer) status(c *color.Color, marker, msg string) {
	if p.plain {
		fmt.Fprintf(p.out, "%s %s\n", marker, msg)
		return
	}
	c.EnableColor()
	fmt.Fprintf(p.out, "%s %s\n", c.Sprint(marker), msg)
}

// DebugLogger returns a printf-style logger that writes dimmed "[debug]" lines to w.
func DebugLogger(w io.Writer) func(format string, args ...any) {
	dim := color.New(color.Faint).SprintFunc()
	return func(format string, args ...any) {
		fmt.Fprintln(w, dim("[debug] "+fmt.Sprintf(format, args...)))
	}
}
