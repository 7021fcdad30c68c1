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

// Package main implements the sirseer-sync command-line interface.
// This tool imports GitHub user profiles into a Postgres or SQLite
// database and records which programming languages each user likes.
//
// Run without a subcommand, the action is chosen from the environment:
//   - USER_NAME and LANGUAGE: record that the user likes the language
//   - USER_NAME only: list the languages the user likes
//   - neither: list stored users, filtered by FILTER (key:value,...)
//
// Explicit subcommands perform the same actions with arguments.
//
// Usage:
//
//	sirseer-sync [flags]
//	sirseer-sync users list --filter location:lisbon
//	sirseer-sync users get octocat
//	sirseer-sync languages octocat
//	sirseer-sync like octocat ruby
//	sirseer-sync schema
//
// Example:
//
//	export USER_NAME=octocat LANGUAGE=ruby
//	sirseer-sync --db-driver sqlite --db-path sync.db
//
// By default the process exits 0 even when the run fails; the error is
// logged to stderr. With --strict-exit (or cli.strict_exit, or
// SIRSEER_STRICT_EXIT=true) the exit code reports the failure kind:
//   - 0: Success
//   - 1: General error
//   - 2: GitHub authentication, unknown user or rate limit
//   - 3: Network error or malformed GitHub response
//   - 4: Database error
//   - 5: Invalid input, filter or configuration
package main
