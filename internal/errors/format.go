package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/changelogmd/internal/changelog"
	"github.com/ariel-frischer/changelogmd/internal/output"
	"github.com/ariel-frischer/changelogmd/internal/yamlcheck"
	"github.com/fatih/color"
)

// detail is one "label: value" line locating an error.
type detail struct {
	label string
	value string
}

// details pulls the file, operation and YAML position out of the errors
// wrapped by err.
func details(err *CLIError) []detail {
	var out []detail

	var engineErr *changelog.Error
	if stderrors.As(err, &engineErr) {
		if engineErr.Path != "" {
			out = append(out, detail{"file", engineErr.Path})
		}
		out = append(out, detail{"while", engineErr.Op})
	}

	var syntaxErr *yamlcheck.SyntaxError
	if stderrors.As(err, &syntaxErr) && syntaxErr.Line > 0 {
		pos := fmt.Sprintf("line %d, column %d", syntaxErr.Line, syntaxErr.Column)
		if syntaxErr.File != "" {
			pos = syntaxErr.File + " " + pos
		}
		out = append(out, detail{"at", pos})
	}
	return out
}

// Format renders err for the terminal. Markers and colors follow caps.
func Format(err *CLIError, caps output.TerminalCapabilities) string {
	if err == nil {
		return ""
	}

	paint := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if caps.SupportsColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	red := paint(color.FgRed, color.Bold)
	yellow := paint(color.FgYellow)
	dim := paint(color.Faint)
	cyan := paint(color.FgCyan)
	green := paint(color.FgGreen, color.Bold)

	symbols := output.SelectSymbols(caps)
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s: %s\n", red(symbols.Failure), yellow(err.Category), err.Message)

	ds := details(err)
	width := 0
	for _, d := range ds {
		width = max(width, len(d.label))
	}
	for _, d := range ds {
		fmt.Fprintf(&sb, "    %s %s\n", dim(fmt.Sprintf("%-*s", width+1, d.label+":")), d.value)
	}

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\nUsage: %s\n", cyan(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", green("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  - %s\n", step)
		}
	}

	return sb.String()
}

// FprintError prints err to w. Colors and unicode markers are used only when
// w is a capable terminal and plain is not set.
func FprintError(w io.Writer, err *CLIError, plain bool) {
	if err == nil {
		return
	}
	caps := output.DetectTerminalCapabilities(w)
	if plain {
		caps.SupportsColor = false
		caps.SupportsUnicode = false
	}
	fmt.Fprint(w, Format(err, caps))
}
