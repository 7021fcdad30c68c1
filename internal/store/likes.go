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

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
)

// Like records that a user likes a language.
type Like struct {
	UserID     int64 `db:"user_id" json:"user_id"`
	LanguageID int64 `db:"language_id" json:"language_id"`
}

// Likes reads and writes user_languages.
type Likes struct {
	db *DB
}

// NewLikes creates an association store.
func NewLikes(db *DB) *Likes {
	return &Likes{db: db}
}

// Find returns the like for the pair, or nil if there is none.
func (l *Likes) Find(ctx context.Context, userID, languageID int64) (*Like, error) {
	var like Like
	query := "SELECT user_id, language_id FROM " + LikesTableName + " WHERE user_id = ? AND language_id = ?"

	if err := l.db.get(ctx, &like, query, userID, languageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find like %d/%d: %w", userID, languageID, err)
	}
	return &like, nil
}

// Like records the pair unless it is already recorded.
func (l *Likes) Like(ctx context.Context, userID, languageID int64) (*Like, error) {
	existing, err := l.Find(ctx, userID, languageID)
	if err != nil || existing != nil {
		return existing, err
	}

	var like Like
	query := "INSERT INTO " + LikesTableName + " (user_id, language_id) VALUES (?, ?) " +
		"ON CONFLICT (user_id, language_id) DO NOTHING RETURNING user_id, language_id"

	err = l.db.get(ctx, &like, query, userID, languageID)
	if err == nil {
		return &like, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("insert like %d/%d: %w", userID, languageID, err)
	}

	existing, err = l.Find(ctx, userID, languageID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("like %d/%d vanished after insert conflict: %w", userID, languageID, syncerrors.ErrDatabase)
	}
	return existing, nil
}

// LanguagesForLogin lists the names of the languages liked by login in
// alphabetical order. The login matches case-insensitively; an unknown login
// yields an empty list.
func (l *Likes) LanguagesForLogin(ctx context.Context, login string) ([]string, error) {
	query := "SELECT l.name FROM " + LanguagesTableName + " l " +
		"JOIN " + LikesTableName + " ul ON ul.language_id = l.id " +
		"JOIN " + UsersTableName + " u ON u.id = ul.user_id " +
		"WHERE lower(u.login) = lower(CAST(? AS TEXT)) ORDER BY l.name"

	names := []string{}
	if err := l.db.selectRows(ctx, &names, query, login); err != nil {
		return nil, fmt.Errorf("list languages for %q: %w", login, err)
	}
	return names, nil
}
