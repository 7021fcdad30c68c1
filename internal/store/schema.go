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

package store

import (
	"context"
	"fmt"
	"regexp"

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
)

// Table names.
const (
	UsersTableName     = "github_users"
	LanguagesTableName = "languages"
	LikesTableName     = "user_languages"
)

// Table is a fixed table definition with column DDL per dialect.
type Table struct {
	Name     string
	postgres string
	sqlite   string
}

var (
	// UsersTable holds imported GitHub profiles.
	UsersTable = Table{
		Name:     UsersTableName,
		postgres: "id BIGSERIAL PRIMARY KEY, login TEXT UNIQUE NOT NULL, name TEXT, company TEXT, location TEXT",
		sqlite:   "id INTEGER PRIMARY KEY AUTOINCREMENT, login TEXT UNIQUE NOT NULL, name TEXT, company TEXT, location TEXT",
	}

	// LanguagesTable holds language names.
	LanguagesTable = Table{
		Name:     LanguagesTableName,
		postgres: "id BIGSERIAL PRIMARY KEY, name TEXT UNIQUE NOT NULL",
		sqlite:   "id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT UNIQUE NOT NULL",
	}

	// LikesTable links users to the languages they like.
	LikesTable = Table{
		Name: LikesTableName,
		postgres: "user_id BIGINT NOT NULL REFERENCES github_users(id) ON UPDATE CASCADE ON DELETE CASCADE, " +
			"language_id BIGINT NOT NULL REFERENCES languages(id) ON UPDATE CASCADE ON DELETE CASCADE, " +
			"UNIQUE (user_id, language_id)",
		sqlite: "user_id INTEGER NOT NULL REFERENCES github_users(id) ON UPDATE CASCADE ON DELETE CASCADE, " +
			"language_id INTEGER NOT NULL REFERENCES languages(id) ON UPDATE CASCADE ON DELETE CASCADE, " +
			"UNIQUE (user_id, language_id)",
	}
)

// Tables returns every table, parents before children.
func Tables() []Table {
	return []Table{UsersTable, LanguagesTable, LikesTable}
}

// DDL returns the column definitions for dialect.
func (t Table) DDL(dialect string) string {
	if dialect == DialectSQLite {
		return t.sqlite
	}
	return t.postgres
}

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// TableExists checks the catalog for a table called name.
func (db *DB) TableExists(ctx context.Context, name string) (bool, error) {
	query := "SELECT COUNT(*) FROM pg_tables WHERE schemaname = 'public' AND tablename = ?"
	if db.dialect == DialectSQLite {
		query = "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	}

	var count int
	if err := db.get(ctx, &count, query, name); err != nil {
		return false, fmt.Errorf("check table %s: %w", name, err)
	}
	return count > 0, nil
}

// EnsureTable creates the table with the given column DDL unless it exists.
func (db *DB) EnsureTable(ctx context.Context, name, ddl string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q: %w", name, syncerrors.ErrInvalidInput)
	}

	exists, err := db.TableExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := db.exec(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", name, ddl)); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	db.log.Info().Str("table", name).Msg("created table")
	return nil
}

// EnsureSchema runs EnsureTable for each table in order.
func (db *DB) EnsureSchema(ctx context.Context, tables ...Table) error {
	for _, t := range tables {
		if err := db.EnsureTable(ctx, t.Name, t.DDL(db.dialect)); err != nil {
			return err
		}
	}
	return nil
}
