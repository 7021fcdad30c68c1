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

// Package store persists GitHub users, languages and the likes between them
// in Postgres or SQLite through sqlx.
//
// Every read that may legitimately find nothing returns a nil pointer or an
// empty slice rather than an error. Inserts use ON CONFLICT DO NOTHING and
// re-read the row when another writer got there first, so the get-or-create
// operations are safe to repeat.
//
// Usage:
//
//	db, err := store.Open(ctx, store.DialectSQLite, "sync.db", log)
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	if err := db.EnsureSchema(ctx, store.Tables()...); err != nil {
//		return err
//	}
//	users := store.NewUsers(db, fetcher)
//	found, err := users.GetOrCreate(ctx, "octocat", store.Filter{})
package store
