package output

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows activity on a terminal. On non-terminals it prints nothing.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner returns a spinner writing to w with the given suffix message.
func NewSpinner(w io.Writer, message string, plain bool) *Spinner {
	caps := DetectTerminalCapabilities(w)
	if plain || !caps.IsTTY {
		return &Spinner{}
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Start begins animating.
func (sp *Spinner) Start() {
	if sp.s != nil {
		sp.s.Start()
	}
}

// Stop halts the animation and clears the spinner line.
func (sp *Spinner) Stop() {
	if sp.s != nil {
		sp.s.Stop()
	}
}

// Active reports whether the spinner animates.
func (sp *Spinner) Active() bool {
	return sp.s != nil
}
