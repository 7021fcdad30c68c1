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
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
	"github.com/sirseerhq/sirseer-sync/internal/logging"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Supported SQL dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DB is the single database handle shared by all stores. Statements are
// written with ? placeholders and rebound for the dialect before execution.
type DB struct {
	conn    *sqlx.DB
	dialect string
	log     zerolog.Logger
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dialect, dsn string, log zerolog.Logger) (*DB, error) {
	driverName, err := driverFor(dialect)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %v: %w", dialect, err, syncerrors.ErrDatabase)
	}
	// One outstanding statement at a time; also keeps an in-memory SQLite
	// database on a single connection.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		log.Error().Err(err).Str("dialect", dialect).Msg("connection failed")
		_ = conn.Close()
		return nil, fmt.Errorf("connect to %s database: %v: %w", dialect, err, syncerrors.ErrDatabase)
	}

	db := New(conn, dialect, log)
	if dialect == DialectSQLite {
		if _, err := db.exec(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	log.Info().Str("dialect", dialect).Msg("connected to database")
	return db, nil
}

// New wraps an existing connection.
func New(conn *sqlx.DB, dialect string, log zerolog.Logger) *DB {
	return &DB{conn: conn, dialect: dialect, log: log}
}

// Close releases the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Dialect reports which SQL dialect the handle speaks.
func (db *DB) Dialect() string {
	return db.dialect
}

func driverFor(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "pgx", nil
	case DialectSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database dialect %q: %w", dialect, syncerrors.ErrInvalidInput)
	}
}

// get scans a single row into dest. A missing row is returned as
// sql.ErrNoRows so callers can turn it into a nil result.
func (db *DB) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	query = db.conn.Rebind(query)
	db.logStatement(query)

	err := db.conn.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	return db.fail(query, err)
}

func (db *DB) selectRows(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	query = db.conn.Rebind(query)
	db.logStatement(query)

	return db.fail(query, db.conn.SelectContext(ctx, dest, query, args...))
}

func (db *DB) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	query = db.conn.Rebind(query)
	db.logStatement(query)

	res, err := db.conn.ExecContext(ctx, query, args...)
	return res, db.fail(query, err)
}

func (db *DB) logStatement(query string) {
	db.log.Debug().Str("sql", logging.Truncate(query)).Msg("query")
}

// fail logs a failed statement and wraps err with ErrDatabase.
func (db *DB) fail(query string, err error) error {
	if err == nil {
		return nil
	}
	db.log.Error().Err(err).Str("sql", logging.Truncate(query)).Msg("query failed")
	return fmt.Errorf("%v: %w", err, syncerrors.ErrDatabase)
}
