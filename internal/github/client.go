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

package github

import "context"

// Client defines the interface for looking up GitHub users.
// This interface allows for easy mocking in tests.
type Client interface {
	// GetUser retrieves the public profile of login. An unknown login is
	// reported as an error wrapping errors.ErrUserNotFound.
	GetUser(ctx context.Context, login string) (*User, error)
}

// Options configures the concrete clients.
type Options struct {
	// Endpoint is the REST base URL or the GraphQL endpoint, depending on
	// which client is built.
	Endpoint string

	// UserAgent is the fixed client identification header sent on every request.
	UserAgent string

	// Token is optional for REST and required for GraphQL.
	Token string
}
