// Package schemas embeds the JSON Schemas for the documents the builder exchanges.
package schemas

import "embed"

// TemplateDataFile is the schema for the canonical Template Data document
const TemplateDataFile = "template_data.schema.json"

//go:embed *.schema.json
var files embed.FS

// Read returns the raw contents of an embedded schema file
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files
func Names() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
