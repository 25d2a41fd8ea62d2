package changelog

import "fmt"

// Diagnostic is one validation finding. Line is 1-based; zero means the
// finding applies to the whole file.
type Diagnostic struct {
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("Line %d: %s", d.Line, d.Message)
	}
	return d.Message
}

// Report collects the results of validating one changelog. Warnings and
// info never affect validity.
type Report struct {
	Path     string       `json:"path" yaml:"path"`
	Errors   []Diagnostic `json:"errors" yaml:"errors"`
	Warnings []Diagnostic `json:"warnings" yaml:"warnings"`
	Info     []Diagnostic `json:"info" yaml:"info"`
}

// Valid returns true if the report has no errors.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Report) addError(line int, format string, args ...any) {
	r.Errors = append(r.Errors, Diagnostic{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) addWarning(line int, format string, args ...any) {
	r.Warnings = append(r.Warnings, Diagnostic{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) addInfo(format string, args ...any) {
	r.Info = append(r.Info, Diagnostic{Message: fmt.Sprintf(format, args...)})
}
