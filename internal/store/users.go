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
	"github.com/sirseerhq/sirseer-sync/internal/github"
)

// UserFetcher looks up a profile on GitHub. github.Client satisfies it.
type UserFetcher interface {
	GetUser(ctx context.Context, login string) (*github.User, error)
}

// User is a row of github_users. Optional columns are nil when NULL.
type User struct {
	ID       int64   `json:"id"`
	Login    string  `json:"login"`
	Name     *string `json:"name"`
	Company  *string `json:"company"`
	Location *string `json:"location"`
}

// userRow represents the database row for github_users.
type userRow struct {
	ID       int64          `db:"id"`
	Login    string         `db:"login"`
	Name     sql.NullString `db:"name"`
	Company  sql.NullString `db:"company"`
	Location sql.NullString `db:"location"`
}

func (r *userRow) toEntity() User {
	return User{
		ID:       r.ID,
		Login:    r.Login,
		Name:     fromNull(r.Name),
		Company:  fromNull(r.Company),
		Location: fromNull(r.Location),
	}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// optional maps an empty API field to NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const userColumns = "id, login, name, company, location"

// Users reads and writes github_users, importing unknown logins from GitHub.
type Users struct {
	db      *DB
	fetcher UserFetcher
}

// NewUsers creates a user store. fetcher may be nil when imports are never
// needed.
func NewUsers(db *DB, fetcher UserFetcher) *Users {
	return &Users{db: db, fetcher: fetcher}
}

// List returns the users matching f ordered by id.
func (u *Users) List(ctx context.Context, f Filter) ([]User, error) {
	query := "SELECT " + userColumns + " FROM " + UsersTableName
	where, args := f.Where()
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY id"

	var rows []userRow
	if err := u.db.selectRows(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]User, len(rows))
	for i := range rows {
		users[i] = rows[i].toEntity()
	}
	return users, nil
}

// FindByLogin returns the user with login, or nil if there is none. GitHub
// logins are case-insensitive, and so is the match.
func (u *Users) FindByLogin(ctx context.Context, login string) (*User, error) {
	var row userRow
	query := "SELECT " + userColumns + " FROM " + UsersTableName + " WHERE lower(login) = lower(CAST(? AS TEXT))"

	if err := u.db.get(ctx, &row, query, login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %q: %w", login, err)
	}

	user := row.toEntity()
	return &user, nil
}

// Insert stores user and returns it with its generated id. If the login is
// already stored, the existing row is returned unchanged.
func (u *Users) Insert(ctx context.Context, user User) (*User, error) {
	if strings.TrimSpace(user.Login) == "" {
		return nil, fmt.Errorf("user login must not be empty: %w", syncerrors.ErrInvalidInput)
	}

	var row userRow
	query := "INSERT INTO " + UsersTableName + " (login, name, company, location) VALUES (?, ?, ?, ?) " +
		"ON CONFLICT (login) DO NOTHING RETURNING " + userColumns

	err := u.db.get(ctx, &row, query, user.Login, toNull(user.Name), toNull(user.Company), toNull(user.Location))
	if err == nil {
		created := row.toEntity()
		return &created, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("insert user %q: %w", user.Login, err)
	}

	existing, err := u.FindByLogin(ctx, user.Login)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("user %q vanished after insert conflict: %w", user.Login, syncerrors.ErrDatabase)
	}
	return existing, nil
}

// GetOrCreate returns the users matching f. An empty f with a login means
// "the user with that login". When nothing matches and login is set but not
// stored, the profile is fetched from GitHub once and stored. A stored login
// that does not match f, or an empty login, yields the empty result.
func (u *Users) GetOrCreate(ctx context.Context, login string, f Filter) ([]User, error) {
	byLogin := f.IsEmpty() && login != ""
	if byLogin {
		f = LoginFilter(login)
	}

	users, err := u.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(users) > 0 || login == "" {
		return users, nil
	}

	if !byLogin {
		existing, err := u.FindByLogin(ctx, login)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return users, nil
		}
	}

	if u.fetcher == nil {
		return nil, fmt.Errorf("user %q is not stored and no GitHub client is configured: %w", login, syncerrors.ErrInvalidInput)
	}

	profile, err := u.fetcher.GetUser(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("import github user %q: %w", login, err)
	}

	stored := profile.Login
	if stored == "" {
		stored = login
	}
	created, err := u.Insert(ctx, User{
		Login:    stored,
		Name:     optional(profile.Name),
		Company:  optional(profile.Company),
		Location: optional(profile.Location),
	})
	if err != nil {
		return nil, err
	}

	u.db.log.Info().Str("login", created.Login).Int64("id", created.ID).Msg("imported github user")
	if byLogin {
		return []User{*created}, nil
	}
	return u.List(ctx, f)
}
