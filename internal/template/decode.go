package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a base template from disk. JSON and YAML are both accepted,
// selected by file extension; everything under Properties decodes into
// map[string]any.
func Load(path string) (*Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	var t Template
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to parse YAML template %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to parse JSON template %s: %w", path, err)
		}
	}

	if t.Resources == nil {
		t.Resources = make(map[string]*Resource)
	}
	return &t, nil
}

// Marshal serializes the template as indented CloudFormation JSON.
func (t *Template) Marshal() ([]byte, error) {
	out, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}
	return append(out, '\n'), nil
}

// Write serializes the template and writes it to path.
func (t *Template) Write(path string) error {
	out, err := t.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write template %s: %w", path, err)
	}
	return nil
}
