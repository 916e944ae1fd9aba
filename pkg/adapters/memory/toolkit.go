// Package memory implements an in-memory ports.Toolkit.
//
// It stands in for the vendor engine in tests and offline runs: documents
// are parsed with encoding/json, "calculation" attaches canned
// configuration files, and every operation can be primed with warnings.
// It performs none of the vendor's validation or math.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/aretw0/mcdgen/pkg/domain"
	"github.com/aretw0/mcdgen/pkg/ports"
)

// Toolkit is a configurable stand-in for the vendor engine.
// The zero value is usable; fields may be set before first use.
type Toolkit struct {
	// Version is stamped on definitions produced by conversion.
	Version string
	// FileVersions overrides the software version reported per read path.
	FileVersions map[string]string
	// Files are the configuration entries attached by Calculate.
	Files map[string][]byte

	// Warnings primed per operation.
	ConvertWarnings   domain.Warnings
	JSONWarnings      domain.Warnings
	CalculateWarnings domain.Warnings

	mu    sync.Mutex
	calls map[string]int
}

// New returns a Toolkit reporting a supported software version.
func New() *Toolkit {
	return &Toolkit{Version: "2.11.0"}
}

// Calls reports how many times the named operation ran.
func (t *Toolkit) Calls(op string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls[op]
}

func (t *Toolkit) record(op string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.calls == nil {
		t.calls = make(map[string]int)
	}
	t.calls[op]++
}

// Parse implements ports.Toolkit.
func (t *Toolkit) Parse(ctx context.Context, document []byte) (ports.Document, error) {
	t.record("parse")
	var doc map[string]any
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// ConvertToMCD implements ports.Toolkit.
func (t *Toolkit) ConvertToMCD(ctx context.Context, doc ports.Document) (ports.Definition, domain.Warnings, error) {
	t.record("convertToMcd")
	data, ok := doc.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("document was not produced by this toolkit")
	}
	return &Definition{version: t.Version, doc: data}, t.ConvertWarnings, nil
}

// ConvertToJSON implements ports.Toolkit.
func (t *Toolkit) ConvertToJSON(ctx context.Context, def ports.Definition) ([]byte, domain.Warnings, error) {
	t.record("convertToJson")
	d, ok := def.(*Definition)
	if !ok {
		return nil, nil, fmt.Errorf("definition was not produced by this toolkit")
	}
	out, err := json.MarshalIndent(d.doc, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return out, t.JSONWarnings, nil
}

// Calculate implements ports.Toolkit.
func (t *Toolkit) Calculate(ctx context.Context, def ports.Definition) (ports.Definition, domain.Warnings, error) {
	t.record("calculate")
	d, ok := def.(*Definition)
	if !ok {
		return nil, nil, fmt.Errorf("definition was not produced by this toolkit")
	}
	return &Definition{version: d.version, doc: d.doc, files: t.Files, calculated: true}, t.CalculateWarnings, nil
}

// ReadDefinition implements ports.Toolkit.
func (t *Toolkit) ReadDefinition(ctx context.Context, path string) (ports.Definition, error) {
	t.record("readFromFile")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("read configuration file: %w", err)
	}
	version := t.Version
	if v, ok := t.FileVersions[path]; ok {
		version = v
	}
	return &Definition{version: version}, nil
}

// Definition is the in-memory ports.Definition.
type Definition struct {
	version    string
	doc        map[string]any
	files      map[string][]byte
	calculated bool
}

// SoftwareVersion implements ports.Definition.
func (d *Definition) SoftwareVersion() string { return d.version }

// Calculated reports whether this definition came out of Calculate.
func (d *Definition) Calculated() bool { return d.calculated }

// WriteTo implements ports.Definition. The payload is a placeholder; real
// MCD encoding is vendor-owned.
func (d *Definition) WriteTo(path string) error {
	payload, err := json.Marshal(map[string]any{
		"softwareVersion": d.version,
		"calculated":      d.calculated,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// ConfigurationFiles implements ports.Definition.
func (d *Definition) ConfigurationFiles() (map[string][]byte, error) {
	return d.files, nil
}
