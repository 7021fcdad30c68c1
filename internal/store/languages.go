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
	"strings"

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
)

// Language is a row of languages.
type Language struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Languages reads and writes the languages table.
type Languages struct {
	db *DB
}

// NewLanguages creates a language store.
func NewLanguages(db *DB) *Languages {
	return &Languages{db: db}
}

// FindByName returns the language called name, or nil if there is none.
func (l *Languages) FindByName(ctx context.Context, name string) (*Language, error) {
	var lang Language
	query := "SELECT id, name FROM " + LanguagesTableName + " WHERE name = ?"

	if err := l.db.get(ctx, &lang, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find language %q: %w", name, err)
	}
	return &lang, nil
}

// GetOrCreate returns the language called name, inserting it on first use.
func (l *Languages) GetOrCreate(ctx context.Context, name string) (*Language, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("language name must not be empty: %w", syncerrors.ErrInvalidInput)
	}

	existing, err := l.FindByName(ctx, name)
	if err != nil || existing != nil {
		return existing, err
	}

	var lang Language
	query := "INSERT INTO " + LanguagesTableName + " (name) VALUES (?) ON CONFLICT (name) DO NOTHING RETURNING id, name"

	err = l.db.get(ctx, &lang, query, name)
	if err == nil {
		l.db.log.Info().Str("language", lang.Name).Int64("id", lang.ID).Msg("created language")
		return &lang, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("insert language %q: %w", name, err)
	}

	// Lost a race with another writer.
	existing, err = l.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("language %q vanished after insert conflict: %w", name, syncerrors.ErrDatabase)
	}
	return existing, nil
}
