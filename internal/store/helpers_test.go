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
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory SQLite database with the full schema. The
// returned buffer collects every log line, including debug SQL.
func newTestDB(t *testing.T) (*DB, *bytes.Buffer) {
	t.Helper()

	logs := &bytes.Buffer{}
	log := zerolog.New(logs).Level(zerolog.DebugLevel)

	db, err := Open(context.Background(), DialectSQLite, ":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.EnsureSchema(context.Background(), Tables()...))
	return db, logs
}

// countStatements counts logged SQL statements starting with prefix.
func countStatements(t *testing.T, logs *bytes.Buffer, prefix string) int {
	t.Helper()

	count := 0
	scanner := bufio.NewScanner(bytes.NewReader(logs.Bytes()))
	for scanner.Scan() {
		var entry struct {
			SQL string `json:"sql"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if strings.HasPrefix(entry.SQL, prefix) {
			count++
		}
	}
	require.NoError(t, scanner.Err())
	return count
}

func strPtr(s string) *string {
	return &s
}
