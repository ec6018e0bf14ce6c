package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/regulint/trueup/internal/model"
)

// loadConfig resolves the run configuration: built-in defaults overlaid
// with the config file viper located, if any. Flags are applied on top by
// the caller.
func loadConfig() (*model.Config, error) {
	return configFromFile(viper.ConfigFileUsed())
}

// configFromFile overlays the YAML file at path onto the defaults. Keys
// absent from the file keep their default values, so a config file only
// needs the settings it changes.
func configFromFile(path string) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
