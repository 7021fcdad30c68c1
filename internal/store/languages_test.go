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

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages_GetOrCreate_Idempotent(t *testing.T) {
	db, logs := newTestDB(t)
	ctx := context.Background()
	langs := NewLanguages(db)

	first, err := langs.GetOrCreate(ctx, "ruby")
	require.NoError(t, err)
	assert.Equal(t, "ruby", first.Name)
	assert.Equal(t, 1, countStatements(t, logs, "INSERT INTO languages"))

	second, err := langs.GetOrCreate(ctx, "ruby")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, countStatements(t, logs, "INSERT INTO languages"), "second call must not insert")

	other, err := langs.GetOrCreate(ctx, "go")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestLanguages_FindByName(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()
	langs := NewLanguages(db)

	missing, err := langs.FindByName(ctx, "ruby")
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := langs.GetOrCreate(ctx, "ruby")
	require.NoError(t, err)

	found, err := langs.FindByName(ctx, "ruby")
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestLanguages_GetOrCreate_EmptyName(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := NewLanguages(db).GetOrCreate(context.Background(), " ")
	require.ErrorIs(t, err, syncerrors.ErrInvalidInput)
}
