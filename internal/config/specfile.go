package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/mcdgen/pkg/domain"
)

// LoadSpec reads a stage specification file (YAML or JSON) into a
// StageSpec. The file is decoded into a generic map first so YAML and
// JSON sources share one shape, then mapped onto the struct.
func LoadSpec(path string) (domain.StageSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StageSpec{}, fmt.Errorf("read spec file: %w", err)
	}

	var raw map[string]any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return domain.StageSpec{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.StageSpec{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	var spec domain.StageSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &spec,
		TagName: "mapstructure",
	})
	if err != nil {
		return domain.StageSpec{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.StageSpec{}, fmt.Errorf("decode spec file: %w", err)
	}
	return spec, nil
}
