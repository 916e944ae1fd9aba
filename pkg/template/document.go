// Package template patches the bundled stage template into a working
// document for one conversion call.
//
// The template is vendor-owned JSON with many fields this module does not
// model; patching therefore operates on a generic map so every unknown
// field round-trips untouched. Only three things are ever mutated: the
// first mechanical product's configured options, its name fields, and the
// first interconnected axis's name fields.
package template

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/mcdgen/pkg/domain"
)

// Document is a mutable copy of the stage template.
type Document struct {
	data map[string]any
}

// Load reads a template document from disk.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a template document from raw JSON.
func Parse(raw []byte) (*Document, error) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Document{data: data}, nil
}

// Patch merges the spec into the document. Option values overwrite or
// extend the first mechanical product's ConfiguredOptions; the stage type
// renames the product and the axis display name; the axis name renames the
// first interconnected axis. Nothing else is touched.
func (d *Document) Patch(spec domain.StageSpec) error {
	products, ok := d.data["MechanicalProducts"].([]any)
	if !ok || len(products) == 0 {
		return fmt.Errorf("MechanicalProducts not found in template")
	}
	product, ok := products[0].(map[string]any)
	if !ok {
		return fmt.Errorf("MechanicalProducts entry is not an object")
	}

	options, _ := product["ConfiguredOptions"].(map[string]any)
	if options == nil {
		options = make(map[string]any)
	}
	for k, v := range spec.Options {
		options[k] = v
	}
	product["ConfiguredOptions"] = options

	if spec.StageType != "" {
		product["Name"] = spec.StageType
		product["DisplayName"] = spec.StageType
	}

	if axes, ok := d.data["InterconnectedAxes"].([]any); ok && len(axes) > 0 {
		if axis, ok := axes[0].(map[string]any); ok {
			if spec.Axis != "" {
				axis["Name"] = spec.Axis
			}
			if spec.StageType != "" {
				if mech, ok := axis["MechanicalAxis"].(map[string]any); ok {
					mech["DisplayName"] = spec.StageType
				}
			}
		}
	}
	return nil
}

// Bytes renders the document as indented JSON.
func (d *Document) Bytes() ([]byte, error) {
	out, err := json.MarshalIndent(d.data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode working document: %w", err)
	}
	return out, nil
}

// WriteTo persists the document, overwriting any previous working copy.
func (d *Document) WriteTo(path string) error {
	out, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write working document: %w", err)
	}
	return nil
}
