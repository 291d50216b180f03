package server

import (
	"html/template"
	"io/fs"
)

// ParseTemplate parses a page template from the embedded static filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(StaticFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}
