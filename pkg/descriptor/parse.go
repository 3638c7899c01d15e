package descriptor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape for a document type: a name plus its ordered
// field descriptors. Services that publish a bare descriptor array are also
// accepted.
type document struct {
	DocumentType string `json:"documentType" yaml:"documentType"`
	Fields       List   `json:"fields" yaml:"fields"`
}

// ParseJSON decodes a descriptor document from JSON. Both the wrapped
// {documentType, fields} shape and a bare descriptor array are accepted.
func ParseJSON(data []byte) (string, List, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list List
		if err := json.Unmarshal(data, &list); err != nil {
			return "", nil, fmt.Errorf("descriptor: parse json: %w", err)
		}
		return "", list, list.Validate()
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", nil, fmt.Errorf("descriptor: parse json: %w", err)
	}
	return doc.DocumentType, doc.Fields, doc.Fields.Validate()
}

// ParseYAML decodes a descriptor document from YAML.
func ParseYAML(data []byte) (string, List, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Fields) > 0 {
		return doc.DocumentType, doc.Fields, doc.Fields.Validate()
	}

	var list List
	if err := yaml.Unmarshal(data, &list); err != nil {
		return "", nil, fmt.Errorf("descriptor: parse yaml: %w", err)
	}
	return "", list, list.Validate()
}

// LoadFile reads a descriptor document from disk, selecting the decoder by
// file extension (.yaml/.yml vs everything else as JSON).
func LoadFile(path string) (string, List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}
