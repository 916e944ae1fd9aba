package bridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// Definition is a handle to a configuration object held by the bridge
// host. The object's content never crosses the process boundary except
// through WriteTo and ConfigurationFiles.
type Definition struct {
	toolkit *Toolkit
	handle  string
	version string
}

// SoftwareVersion implements ports.Definition.
func (d *Definition) SoftwareVersion() string { return d.version }

// WriteTo implements ports.Definition.
func (d *Definition) WriteTo(path string) error {
	_, err := d.toolkit.conn.roundTrip(context.Background(), opWriteToFile, map[string]any{
		"definition": d.handle,
		"path":       path,
	})
	return err
}

// ConfigurationFiles implements ports.Definition. Entry contents arrive
// base64-encoded and are returned as raw bytes.
func (d *Definition) ConfigurationFiles() (map[string][]byte, error) {
	resp, err := d.toolkit.conn.roundTrip(context.Background(), opConfigurationFiles, map[string]any{
		"definition": d.handle,
	})
	if err != nil {
		return nil, err
	}
	var result struct {
		Files map[string][]byte `json:"files"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", opConfigurationFiles, err)
	}
	return result.Files, nil
}
