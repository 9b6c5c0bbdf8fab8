package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultProbeType = "Umberger2010"
	DefaultDataDir   = ".osimkit"
	DefaultCmd       = "opensim-cmd"
)

type Config struct {
	ProbeType  string `yaml:"probe_type"`
	OpenSimCmd string `yaml:"opensim_cmd"`
	DataDir    string `yaml:"data_dir"`
	ModelFile  string `yaml:"model_file"`
	StatesFile string `yaml:"states_file"`
	OutputDir  string `yaml:"output_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		ProbeType:  DefaultProbeType,
		OpenSimCmd: DefaultCmd,
		DataDir:    DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CatalogPath is where the run catalog database lives for this config.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataDir, "runs.db")
}
