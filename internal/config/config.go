// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for sirseer-sync with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables (including values loaded from a .env file)
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sirseer-sync.yaml (current directory)
//   - .sirseer-sync.yml (current directory)
//   - ~/.sirseer/sync.yaml
//   - ~/.sirseer/sync.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is performed
// on the SQLite database path.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".sirseer-sync.yaml",
			".sirseer-sync.yml",
			filepath.Join(os.Getenv("HOME"), ".sirseer", "sync.yaml"),
			filepath.Join(os.Getenv("HOME"), ".sirseer", "sync.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Database.Path = expandPath(cfg.Database.Path)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// GitHub
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if transport := os.Getenv("SIRSEER_GITHUB_TRANSPORT"); transport != "" {
		cfg.GitHub.Transport = strings.ToLower(transport)
	}
	if ua := os.Getenv("SIRSEER_USER_AGENT"); ua != "" {
		cfg.GitHub.UserAgent = ua
	}

	// Database. The PG* names follow libpq so existing shells keep working.
	if driver := os.Getenv("SIRSEER_DB_DRIVER"); driver != "" {
		cfg.Database.Driver = strings.ToLower(driver)
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if host := os.Getenv("PGHOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("PGPORT"); port != "" {
		if p, err := parsePositiveInt(port); err == nil {
			cfg.Database.Port = p
		}
	}
	if name := os.Getenv("PGDATABASE"); name != "" {
		cfg.Database.Name = name
	}
	if user := os.Getenv("PGUSER"); user != "" {
		cfg.Database.User = user
	}
	if password := os.Getenv("PGPASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if sslMode := os.Getenv("PGSSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}
	if path := os.Getenv("SIRSEER_DB_PATH"); path != "" {
		cfg.Database.Path = path
	}

	// Output and logging
	if format := os.Getenv("SIRSEER_OUTPUT_FORMAT"); format != "" {
		cfg.Output.Format = strings.ToLower(format)
	}
	if level := os.Getenv("SIRSEER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	// Process behavior
	if strict := os.Getenv("SIRSEER_STRICT_EXIT"); strict != "" {
		cfg.CLI.StrictExit = parseBool(strict)
	}
	if timeout := os.Getenv("SIRSEER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.CLI.Timeout = d
		}
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Token returns the GitHub token from the environment variable named by
// TokenEnv, or an empty string when unset.
func (c *Config) Token() string {
	if c.GitHub.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.GitHub.TokenEnv)
}

// Validate checks if the configuration contains valid values. This should be
// called after loading configuration and applying flags to catch invalid
// settings before any connection is opened.
func (c *Config) Validate() error {
	switch c.GitHub.Transport {
	case TransportREST:
		if c.GitHub.APIEndpoint == "" {
			return fmt.Errorf("GitHub API endpoint cannot be empty")
		}
	case TransportGraphQL:
		if c.GitHub.GraphQLEndpoint == "" {
			return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
		}
	default:
		return fmt.Errorf("unknown GitHub transport %q (want %s or %s)", c.GitHub.Transport, TransportREST, TransportGraphQL)
	}
	if c.GitHub.UserAgent == "" {
		return fmt.Errorf("GitHub user agent cannot be empty")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
			return fmt.Errorf("postgres requires either a url or host and name")
		}
		if c.Database.URL == "" && (c.Database.Port <= 0 || c.Database.Port > 65535) {
			return fmt.Errorf("database port %d out of range", c.Database.Port)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("sqlite requires a database path")
		}
	default:
		return fmt.Errorf("unknown database driver %q (want %s or %s)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	switch c.Output.Format {
	case FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output.Format, FormatJSON, FormatNDJSON)
	}

	if c.CLI.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got: %s", c.CLI.Timeout)
	}
	return nil
}
