package changelog

import (
	_ "embed"
	"strings"
)

//go:embed template.md
var template string

// Template returns the embedded starter changelog with the project name
// substituted. An empty project reads "this project".
func Template(project string) string {
	if strings.TrimSpace(project) == "" {
		project = "this project"
	}
	return strings.ReplaceAll(template, "{{project}}", project)
}

// NewFromTemplate returns a document holding the starter changelog with a
// link reference for Unreleased when ownerRepo is known.
func NewFromTemplate(project, ownerRepo string) *Document {
	d := Parse(Template(project))
	d.SynthesizeLinks(ownerRepo)
	return d
}
