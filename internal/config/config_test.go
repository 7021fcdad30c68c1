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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// GitHub defaults
	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("APIEndpoint = %s, want https://api.github.com", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Errorf("GraphQLEndpoint = %s, want https://api.github.com/graphql", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("TokenEnv = %s, want GITHUB_TOKEN", cfg.GitHub.TokenEnv)
	}
	if cfg.GitHub.Transport != TransportREST {
		t.Errorf("Transport = %s, want %s", cfg.GitHub.Transport, TransportREST)
	}
	if !strings.HasPrefix(cfg.GitHub.UserAgent, "sirseer-sync/") {
		t.Errorf("UserAgent = %s, want sirseer-sync/ prefix", cfg.GitHub.UserAgent)
	}

	// Database defaults
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("Driver = %s, want %s", cfg.Database.Driver, DriverPostgres)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Host = %s, want localhost", cfg.Database.Host)
	}
	if cfg.Database.Name != "lovelystay_test" {
		t.Errorf("Name = %s, want lovelystay_test", cfg.Database.Name)
	}

	// Process defaults
	if cfg.CLI.StrictExit {
		t.Error("StrictExit = true, want false")
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Format = %s, want %s", cfg.Output.Format, FormatJSON)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
github:
  api_endpoint: https://github.enterprise.com/api/v3
  graphql_endpoint: https://github.enterprise.com/api/graphql
  token_env: GITHUB_ENTERPRISE_TOKEN
  transport: graphql

database:
  driver: sqlite
  path: /var/lib/sync/users.db

output:
  format: ndjson

log:
  level: debug

cli:
  strict_exit: true
  timeout: 45s
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://github.enterprise.com/api/v3" {
		t.Errorf("APIEndpoint = %s, want https://github.enterprise.com/api/v3", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GITHUB_ENTERPRISE_TOKEN" {
		t.Errorf("TokenEnv = %s, want GITHUB_ENTERPRISE_TOKEN", cfg.GitHub.TokenEnv)
	}
	if cfg.GitHub.Transport != TransportGraphQL {
		t.Errorf("Transport = %s, want %s", cfg.GitHub.Transport, TransportGraphQL)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %s, want %s", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.Path != "/var/lib/sync/users.db" {
		t.Errorf("Path = %s, want /var/lib/sync/users.db", cfg.Database.Path)
	}
	if cfg.Output.Format != FormatNDJSON {
		t.Errorf("Format = %s, want %s", cfg.Output.Format, FormatNDJSON)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %s, want debug", cfg.Log.Level)
	}
	if !cfg.CLI.StrictExit {
		t.Error("StrictExit = false, want true")
	}
	if cfg.CLI.Timeout != 45*time.Second {
		t.Errorf("Timeout = %s, want 45s", cfg.CLI.Timeout)
	}
	// Untouched sections keep their defaults.
	if cfg.Database.Host != "localhost" {
		t.Errorf("Host = %s, want localhost", cfg.Database.Host)
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want error for missing file")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("GITHUB_API_ENDPOINT", "https://custom.api.com")
	t.Setenv("SIRSEER_GITHUB_TRANSPORT", "GraphQL")
	t.Setenv("SIRSEER_DB_DRIVER", "sqlite")
	t.Setenv("SIRSEER_DB_PATH", "/env/users.db")
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "6543")
	t.Setenv("PGUSER", "sync")
	t.Setenv("SIRSEER_OUTPUT_FORMAT", "NDJSON")
	t.Setenv("SIRSEER_STRICT_EXIT", "yes")
	t.Setenv("SIRSEER_TIMEOUT", "2m")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://custom.api.com" {
		t.Errorf("APIEndpoint = %s, want https://custom.api.com", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.Transport != TransportGraphQL {
		t.Errorf("Transport = %s, want %s", cfg.GitHub.Transport, TransportGraphQL)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %s, want %s", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.Path != "/env/users.db" {
		t.Errorf("Path = %s, want /env/users.db", cfg.Database.Path)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Host = %s, want db.internal", cfg.Database.Host)
	}
	if cfg.Database.Port != 6543 {
		t.Errorf("Port = %d, want 6543", cfg.Database.Port)
	}
	if cfg.Database.User != "sync" {
		t.Errorf("User = %s, want sync", cfg.Database.User)
	}
	if cfg.Output.Format != FormatNDJSON {
		t.Errorf("Format = %s, want %s", cfg.Output.Format, FormatNDJSON)
	}
	if !cfg.CLI.StrictExit {
		t.Error("StrictExit = false, want true")
	}
	if cfg.CLI.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %s, want 2m", cfg.CLI.Timeout)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		db   DatabaseConfig
		want string
	}{
		{
			name: "defaults without credentials",
			db:   DefaultConfig().Database,
			want: "postgres://localhost:5432/lovelystay_test?sslmode=disable",
		},
		{
			name: "credentials are escaped",
			db: DatabaseConfig{
				Driver: DriverPostgres, Host: "db", Port: 5433, Name: "likes",
				User: "sync", Password: "p@ss:word",
			},
			want: "postgres://sync:p%40ss%3Aword@db:5433/likes",
		},
		{
			name: "url wins over fields",
			db: DatabaseConfig{
				Driver: DriverPostgres, URL: "postgres://u@h/d", Host: "ignored",
			},
			want: "postgres://u@h/d",
		},
		{
			name: "sqlite path",
			db:   DatabaseConfig{Driver: DriverSQLite, Path: "/tmp/x.db", Host: "ignored"},
			want: "/tmp/x.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.db.DSN(); got != tt.want {
				t.Errorf("DSN() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDatabaseConfig_Describe(t *testing.T) {
	db := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, Name: "likes", User: "sync", Password: "secret"}
	got := db.Describe()
	if got != "sync@db:5432/likes" {
		t.Errorf("Describe() = %s, want sync@db:5432/likes", got)
	}
	if strings.Contains(got, "secret") {
		t.Errorf("Describe() leaked the password: %s", got)
	}

	withURL := DatabaseConfig{Driver: DriverPostgres, URL: "postgres://sync:secret@db:5432/likes"}
	if got := withURL.Describe(); got != "sync@db:5432/likes" {
		t.Errorf("Describe() = %s, want sync@db:5432/likes", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "unknown transport",
			mutate:  func(c *Config) { c.GitHub.Transport = "soap" },
			wantErr: "unknown GitHub transport",
		},
		{
			name:    "empty API endpoint",
			mutate:  func(c *Config) { c.GitHub.APIEndpoint = "" },
			wantErr: "GitHub API endpoint cannot be empty",
		},
		{
			name: "empty GraphQL endpoint",
			mutate: func(c *Config) {
				c.GitHub.Transport = TransportGraphQL
				c.GitHub.GraphQLEndpoint = ""
			},
			wantErr: "GitHub GraphQL endpoint cannot be empty",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "oracle" },
			wantErr: "unknown database driver",
		},
		{
			name:    "postgres port out of range",
			mutate:  func(c *Config) { c.Database.Port = 70000 },
			wantErr: "out of range",
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Database.Driver = DriverSQLite
				c.Database.Path = ""
			},
			wantErr: "sqlite requires a database path",
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "unknown output format",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.CLI.Timeout = -time.Second },
			wantErr: "timeout must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() error = nil, want %s", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Validate() error = %v, want containing %s", err, tt.wantErr)
				}
			}
		})
	}
}

func TestToken(t *testing.T) {
	t.Setenv("CUSTOM_TOKEN", "abc123")

	cfg := DefaultConfig()
	cfg.GitHub.TokenEnv = "CUSTOM_TOKEN"
	if got := cfg.Token(); got != "abc123" {
		t.Errorf("Token() = %q, want abc123", got)
	}

	cfg.GitHub.TokenEnv = ""
	if got := cfg.Token(); got != "" {
		t.Errorf("Token() = %q, want empty", got)
	}
}

func TestExpandPath(t *testing.T) {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"1", true},
		{"on", true},
		{"false", false},
		{"no", false},
		{"0", false},
		{"", false},
		{"random", false},
	}

	for _, tt := range tests {
		if got := parseBool(tt.input); got != tt.want {
			t.Errorf("parseBool(%s) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"5432", 5432, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePositiveInt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePositiveInt(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePositiveInt(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
