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

// Package router turns the run inputs (a login, a language and a filter)
// into exactly one action and executes it against the stores.
//
//	login + language  -> record that the user likes the language
//	login             -> list the languages the user likes
//	login + import    -> fetch and store the user if unknown
//	neither           -> list users, optionally filtered
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
	"github.com/sirseerhq/sirseer-sync/internal/store"
)

// Kind identifies which action a run performs.
type Kind int

const (
	// ActionListUsers lists users matching the filter.
	ActionListUsers Kind = iota
	// ActionLanguages lists the languages a login likes.
	ActionLanguages
	// ActionLike records a like between a login and a language.
	ActionLike
	// ActionImportUser returns the user with the login, fetching it from
	// GitHub when it is not stored yet.
	ActionImportUser
)

// String returns the action name used in logs.
func (k Kind) String() string {
	switch k {
	case ActionListUsers:
		return "list-users"
	case ActionLanguages:
		return "languages"
	case ActionLike:
		return "like"
	case ActionImportUser:
		return "import-user"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Inputs are the raw run inputs as read from flags and the environment.
type Inputs struct {
	Login    string
	Language string
	Filter   string
	Import   bool
}

// Action is a resolved, validated unit of work.
type Action struct {
	Kind     Kind
	Login    string
	Language string
	Filter   store.Filter
}

// Resolve selects the action for in. Surrounding whitespace is ignored. The
// filter only shapes the list and import actions, so it is parsed there and
// an invalid one is rejected before anything touches the database.
func Resolve(in Inputs) (Action, error) {
	login := strings.TrimSpace(in.Login)
	language := strings.TrimSpace(in.Language)

	switch {
	case login != "" && language != "":
		return Action{Kind: ActionLike, Login: login, Language: language}, nil
	case login != "" && in.Import:
		filter, err := store.ParseFilter(in.Filter)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionImportUser, Login: login, Filter: filter}, nil
	case login != "":
		return Action{Kind: ActionLanguages, Login: login}, nil
	case in.Import:
		return Action{}, fmt.Errorf("import needs a login: %w", syncerrors.ErrInvalidInput)
	default:
		filter, err := store.ParseFilter(in.Filter)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionListUsers, Language: language, Filter: filter}, nil
	}
}

// Tables returns the tables the action needs, parents first.
func (a Action) Tables() []store.Table {
	switch a.Kind {
	case ActionLike, ActionLanguages:
		return store.Tables()
	default:
		return []store.Table{store.UsersTable}
	}
}

// Router executes actions. It owns no resources; the caller closes db.
type Router struct {
	db        *store.DB
	users     *store.Users
	languages *store.Languages
	likes     *store.Likes
	log       zerolog.Logger
}

// New creates a router over db. fetcher is used for unknown logins.
func New(db *store.DB, fetcher store.UserFetcher, log zerolog.Logger) *Router {
	return &Router{
		db:        db,
		users:     store.NewUsers(db, fetcher),
		languages: store.NewLanguages(db),
		likes:     store.NewLikes(db),
		log:       log,
	}
}

// Run ensures the action's tables and performs it. The result is a
// *store.Like, a []string of language names or a []store.User.
func (r *Router) Run(ctx context.Context, a Action) (interface{}, error) {
	r.log.Debug().Stringer("action", a.Kind).Str("login", a.Login).Str("language", a.Language).Msg("running action")

	if err := r.db.EnsureSchema(ctx, a.Tables()...); err != nil {
		return nil, err
	}

	switch a.Kind {
	case ActionLike:
		return r.like(ctx, a.Login, a.Language)
	case ActionLanguages:
		return r.languagesFor(ctx, a.Login)
	case ActionImportUser:
		return r.users.GetOrCreate(ctx, a.Login, a.Filter)
	case ActionListUsers:
		if a.Language != "" {
			r.log.Warn().Str("language", a.Language).Msg("language is ignored without a login")
		}
		return r.users.GetOrCreate(ctx, "", a.Filter)
	default:
		return nil, fmt.Errorf("unknown action %s: %w", a.Kind, syncerrors.ErrInvalidInput)
	}
}

func (r *Router) like(ctx context.Context, login, language string) (*store.Like, error) {
	users, err := r.users.GetOrCreate(ctx, login, store.Filter{})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %q could not be stored: %w", login, syncerrors.ErrDatabase)
	}

	lang, err := r.languages.GetOrCreate(ctx, language)
	if err != nil {
		return nil, err
	}

	like, err := r.likes.Like(ctx, users[0].ID, lang.ID)
	if err != nil {
		return nil, err
	}

	r.log.Info().Str("login", login).Str("language", language).Msg("like recorded")
	return like, nil
}

func (r *Router) languagesFor(ctx context.Context, login string) ([]string, error) {
	names, err := r.likes.LanguagesForLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("user %q: %w", login, syncerrors.ErrNoLikes)
	}
	return names, nil
}
