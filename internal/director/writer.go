package director

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an on-disk document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks JSON for .json files and YAML otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode serializes an asset.
func Encode(a *Asset, format Format) ([]byte, error) {
	return EncodeDocument(Serialize(a), format)
}

// EncodeDocument encodes an already serialized document.
func EncodeDocument(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML, "":
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// DecodeDocument parses a document without building the tree.
func DecodeDocument(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return &doc, nil
}

// Decode parses and deserializes an asset.
func Decode(data []byte, format Format, reg *Registry) (*Asset, error) {
	doc, err := DecodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	return Deserialize(doc, reg)
}

// WriteAsset writes an asset to a YAML or JSON file
func WriteAsset(a *Asset, path string) error {
	data, err := Encode(a, FormatFromPath(path))
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadAsset reads an asset from a YAML or JSON file
func ReadAsset(path string, reg *Registry) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	a, err := Decode(data, FormatFromPath(path), reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}
