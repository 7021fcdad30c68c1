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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI when strict exit mode is enabled.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidToken indicates GitHub rejected the configured token.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrUserNotFound indicates the requested login does not exist on GitHub.
	// Maps to exit code 2.
	ErrUserNotFound = errors.New("github user not found")

	// ErrRateLimit indicates GitHub API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrMalformedResponse indicates GitHub answered with a body that could not be decoded.
	// Maps to exit code 3.
	ErrMalformedResponse = errors.New("malformed github response")

	// ErrDatabase indicates the database could not be reached or rejected a statement.
	// Maps to exit code 4.
	ErrDatabase = errors.New("database error")

	// ErrInvalidFilter indicates a filter specification could not be parsed.
	// Maps to exit code 5.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrInvalidInput indicates the command inputs are inconsistent or incomplete.
	// Maps to exit code 5.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoLikes indicates a login has no liked languages recorded.
	// Maps to exit code 1.
	ErrNoLikes = errors.New("no liked languages")
)
