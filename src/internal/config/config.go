// Package config resolves client configuration from defaults, an optional
// config file, and the environment. Resolution happens when Load is called,
// never at package init, so changing the environment mid-process is observable
// on the next Load.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable holding the bearer token for the
// official search API.
const APIKeyEnv = "UN_API"

const (
	defaultAPIBaseURL    = "https://digitallibrary.un.org/api/v1/search"
	defaultSearchBaseURL = "https://digitallibrary.un.org/search"
)

// Config holds everything the client needs to talk to the catalog.
type Config struct {
	// APIKey authorizes requests against the official API endpoint.
	APIKey string `yaml:"api_key"`
	// APIBaseURL is the official structured search endpoint.
	APIBaseURL string `yaml:"api_base_url"`
	// SearchBaseURL is the legacy plain search endpoint used for id lookups.
	SearchBaseURL string `yaml:"search_base_url"`
}

// Default returns the built-in configuration with no key set.
func Default() Config {
	return Config{
		APIBaseURL:    defaultAPIBaseURL,
		SearchBaseURL: defaultSearchBaseURL,
	}
}

// Load resolves configuration: defaults, then ~/.undl/config.yaml if present,
// then the UN_API environment variable for the key. A missing or unreadable
// config file is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()
	if path := configPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, err
			}
			cfg.fillDefaults()
		}
	}
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		cfg.APIKey = key
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if strings.TrimSpace(c.SearchBaseURL) == "" {
		c.SearchBaseURL = defaultSearchBaseURL
	}
}

// configPath returns the config file location: $UNDL_CONFIG if set, else
// ~/.undl/config.yaml.
func configPath() string {
	if p := strings.TrimSpace(os.Getenv("UNDL_CONFIG")); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".undl", "config.yaml")
}
