package servicedesk

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is one site profile: where to talk and who to talk as.
type Config struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
}

// Validate checks the profile is complete.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("servicedesk: base_url is required")
	}
	if strings.TrimSpace(c.Username) == "" {
		return errors.New("servicedesk: username is required")
	}
	if strings.TrimSpace(c.Token) == "" {
		return errors.New("servicedesk: token is required")
	}
	return nil
}

// LoadConfig reads a YAML profile from disk. Trailing slashes on the base
// URL are dropped so path joining stays predictable.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("servicedesk: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("servicedesk: parse config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
