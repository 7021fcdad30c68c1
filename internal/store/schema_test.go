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
	"testing"

	"github.com/rs/zerolog"
	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDialect(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn", zerolog.Nop())
	require.ErrorIs(t, err, syncerrors.ErrInvalidInput)
}

func TestEnsureSchema_CreatesOnce(t *testing.T) {
	db, logs := newTestDB(t)
	ctx := context.Background()

	for _, table := range Tables() {
		exists, err := db.TableExists(ctx, table.Name)
		require.NoError(t, err)
		assert.True(t, exists, table.Name)
	}
	assert.Equal(t, 3, countStatements(t, logs, "CREATE TABLE"))

	require.NoError(t, db.EnsureSchema(ctx, Tables()...))
	assert.Equal(t, 3, countStatements(t, logs, "CREATE TABLE"), "second run must not create tables")
}

func TestEnsureTable(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()

	exists, err := db.TableExists(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.EnsureTable(ctx, "notes", "id INTEGER PRIMARY KEY, body TEXT"))
	exists, err = db.TableExists(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, exists)

	err = db.EnsureTable(ctx, "notes; DROP TABLE github_users", "id INTEGER")
	require.ErrorIs(t, err, syncerrors.ErrInvalidInput)
}

func TestEnsureTable_BadDDL(t *testing.T) {
	db, _ := newTestDB(t)

	err := db.EnsureTable(context.Background(), "broken", "id NOT A TYPE (")
	require.ErrorIs(t, err, syncerrors.ErrDatabase)
}

func TestTable_DDL(t *testing.T) {
	assert.Contains(t, UsersTable.DDL(DialectPostgres), "BIGSERIAL")
	assert.Contains(t, UsersTable.DDL(DialectSQLite), "AUTOINCREMENT")
	assert.Contains(t, LikesTable.DDL(DialectPostgres), "UNIQUE (user_id, language_id)")
	assert.Contains(t, LikesTable.DDL(DialectSQLite), "ON DELETE CASCADE")
}

func TestStatementsAreLogged(t *testing.T) {
	db, logs := newTestDB(t)

	_, err := NewUsers(db, nil).List(context.Background(), Filter{})
	require.NoError(t, err)

	assert.Equal(t, 1, countStatements(t, logs, "SELECT id, login, name, company, location FROM github_users"))
}
