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

// Package config types define the configuration structures used throughout
// sirseer-sync. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/sirseerhq/sirseer-sync/pkg/version"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported GitHub transports.
const (
	TransportREST    = "rest"
	TransportGraphQL = "graphql"
)

// Supported output formats.
const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Config represents the complete configuration for sirseer-sync.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
	CLI      CLIConfig      `yaml:"cli"`
}

// GitHubConfig contains the settings used by the user fetcher. The endpoints
// can point at a GitHub Enterprise installation; the token is optional and only
// read from the environment variable named by TokenEnv.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
	UserAgent       string `yaml:"user_agent"`
	Transport       string `yaml:"transport"`
}

// DatabaseConfig describes how to reach the relational store. For Postgres
// either URL is set or the DSN is assembled from the individual fields. For
// SQLite only Path is used.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// LogConfig controls the log level written to stderr.
type LogConfig struct {
	Level string `yaml:"level"`
}

// CLIConfig holds process-level behavior. StrictExit replaces the historical
// "always exit 0" behavior with exit codes per error kind. Timeout bounds the
// whole run; zero means no deadline.
type CLIConfig struct {
	StrictExit bool          `yaml:"strict_exit"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with defaults matching a local development
// database and public GitHub.com.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
			UserAgent:       version.UserAgent(),
			Transport:       TransportREST,
		},
		Database: DatabaseConfig{
			Driver:  DriverPostgres,
			Host:    "localhost",
			Port:    5432,
			Name:    "lovelystay_test",
			SSLMode: "disable",
			Path:    "sirseer-sync.db",
		},
		Output: OutputConfig{
			Format: FormatJSON,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DSN returns the data source name handed to the SQL driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	if d.URL != "" {
		return d.URL
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	switch {
	case d.User != "" && d.Password != "":
		u.User = url.UserPassword(d.User, d.Password)
	case d.User != "":
		u.User = url.User(d.User)
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

// Describe returns a password-free description of the target database,
// suitable for log output: user@host:port/database.
func (d DatabaseConfig) Describe() string {
	if d.Driver == DriverSQLite {
		return "sqlite:" + d.Path
	}
	if d.URL != "" {
		u, err := url.Parse(d.URL)
		if err != nil {
			return "postgres:<unparseable url>"
		}
		user := ""
		if u.User != nil {
			user = u.User.Username()
		}
		return fmt.Sprintf("%s@%s%s", user, u.Host, u.Path)
	}
	return fmt.Sprintf("%s@%s:%d/%s", d.User, d.Host, d.Port, d.Name)
}
