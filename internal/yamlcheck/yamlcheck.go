// Package yamlcheck reports YAML syntax errors with their position so config
// files and changelog sources can point at the offending line.
package yamlcheck

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SyntaxError is a YAML parse failure located in its input. Line and Column
// are 1-based; zero means the parser did not report a position.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	loc := e.File
	if e.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Column)
	}
	if loc == "" {
		return e.Message
	}
	return loc + ": " + e.Message
}

var positionPattern = regexp.MustCompile(`^yaml: line (\d+):(?: column (\d+):)? `)

// Check parses every document in data. It returns nil for valid or blank
// input and a *SyntaxError otherwise. file only labels the error.
func Check(data []byte, file string) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return newSyntaxError(err, file)
		}
	}
}

func newSyntaxError(err error, file string) *SyntaxError {
	msg := err.Error()
	m := positionPattern.FindStringSubmatch(msg)
	if m == nil {
		return &SyntaxError{File: file, Message: msg}
	}

	line, _ := strconv.Atoi(m[1])
	column := 1
	if m[2] != "" {
		column, _ = strconv.Atoi(m[2])
	}
	return &SyntaxError{File: file, Line: line, Column: column, Message: msg[len(m[0]):]}
}
