// Package config resolves the filesystem layout and bridge launch
// settings for a controller session: a YAML (or JSON) config file,
// overridden by MCDGEN_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up when none is specified.
const DefaultFileName = "mcdgen.yaml"

// Config carries everything a session needs to find the vendor runtime
// and lay out its files.
type Config struct {
	// InstallRoot holds the versioned controller runtime installs.
	InstallRoot string `yaml:"install_root" json:"install_root"`
	// AssetsDir holds the stage template and the transient working document.
	AssetsDir string `yaml:"assets_dir" json:"assets_dir"`
	// WorkingDir receives generated configuration files.
	WorkingDir string `yaml:"working_dir" json:"working_dir"`
	// McdName overrides the stage type in output file names.
	McdName string `yaml:"mcd_name" json:"mcd_name"`
	// Bridge configures the vendor bridge host process.
	Bridge Bridge `yaml:"bridge" json:"bridge"`
}

// Bridge describes how to launch the bridge host.
type Bridge struct {
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
}

// Default returns the stock configuration. The install root default
// matches the vendor's version-selector layout on Windows and a
// conventional prefix elsewhere.
func Default() Config {
	root := `/opt/automation1/versions`
	if runtime.GOOS == "windows" {
		root = `C:\Program Files (x86)\Aerotech\Controller Version Selector\Bin\Automation1`
	}
	return Config{
		InstallRoot: root,
		AssetsDir:   "assets",
		WorkingDir:  ".",
		Bridge: Bridge{
			Command: "dotnet",
		},
	}
}

// Load reads a configuration file (YAML or JSON) on top of the defaults
// and applies environment overrides. A missing file at the default path is
// not an error; an explicitly requested file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	requested := path != ""
	if !requested {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if decodeErr := decode(path, data, &cfg); decodeErr != nil {
			return Config{}, decodeErr
		}
	case os.IsNotExist(err) && !requested:
		// No config file: defaults plus environment.
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// Best effort: a .env next to the invocation may carry MCDGEN_* keys.
	_ = godotenv.Load()
	applyEnv(&cfg)
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MCDGEN_INSTALL_ROOT"); v != "" {
		cfg.InstallRoot = v
	}
	if v := os.Getenv("MCDGEN_ASSETS_DIR"); v != "" {
		cfg.AssetsDir = v
	}
	if v := os.Getenv("MCDGEN_WORKING_DIR"); v != "" {
		cfg.WorkingDir = v
	}
	if v := os.Getenv("MCDGEN_BRIDGE_COMMAND"); v != "" {
		cfg.Bridge.Command = v
	}
}
