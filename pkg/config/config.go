// Package config loads the optional depscout.toml configuration file.
//
// All values have working defaults; the file only needs to exist when a
// default must be overridden. Command-line flags take precedence over
// file values, which take precedence over defaults.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/depscout/depscout/pkg/errors"
)

// Config holds the file-configurable settings.
type Config struct {
	BigQuery BigQuery `toml:"bigquery"`
	Registry Registry `toml:"registry"`
	Output   Output   `toml:"output"`
}

// BigQuery configures the ranking extraction query.
type BigQuery struct {
	// Project is the Google Cloud project that runs (and is billed for)
	// the query. Falls back to GOOGLE_CLOUD_PROJECT when empty.
	Project string `toml:"project"`

	// CredentialsFile points at a service-account key file. When empty,
	// Application Default Credentials are used.
	CredentialsFile string `toml:"credentials_file"`
}

// Registry configures the metadata API client.
type Registry struct {
	// BaseURL overrides the Libraries.io endpoint, mainly for testing.
	BaseURL string `toml:"base_url"`

	// CacheTTLHours is the HTTP response cache lifetime. 0 disables expiry.
	CacheTTLHours int `toml:"cache_ttl_hours"`
}

// Output configures where artifacts are written.
type Output struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Registry: Registry{CacheTTLHours: 24},
		Output:   Output{Dir: "data"},
	}
}

// Load reads path and merges it over the defaults. A missing file is not
// an error; a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// CacheTTL returns the registry cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Registry.CacheTTLHours) * time.Hour
}
