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

import (
	"context"
	"fmt"

	"github.com/shurcooL/graphql"
	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
	"github.com/sirseerhq/sirseer-sync/internal/giterror"
)

// GraphQLClient implements the Client interface using the GraphQL API.
// GitHub rejects anonymous GraphQL calls, so a token is mandatory.
type GraphQLClient struct {
	client    *graphql.Client
	inspector giterror.Inspector
}

// NewGraphQLClient creates a new GitHub GraphQL client for opts.Endpoint.
func NewGraphQLClient(opts Options) (*GraphQLClient, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("the GraphQL API requires a token: %w", syncerrors.ErrInvalidToken)
	}
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("GitHub GraphQL endpoint cannot be empty: %w", syncerrors.ErrInvalidInput)
	}

	return &GraphQLClient{
		client:    graphql.NewClient(opts.Endpoint, newHTTPClient(opts.Token, opts.UserAgent)),
		inspector: giterror.NewInspector(),
	}, nil
}

// GetUser fetches the public profile of login with a single user(login:) query.
func (c *GraphQLClient) GetUser(ctx context.Context, login string) (*User, error) {
	if err := validateLogin(login); err != nil {
		return nil, err
	}

	var query struct {
		User *struct {
			DatabaseID graphql.Int     `graphql:"databaseId"`
			Login      graphql.String  `graphql:"login"`
			Name       *graphql.String `graphql:"name"`
			Company    *graphql.String `graphql:"company"`
			Location   *graphql.String `graphql:"location"`
		} `graphql:"user(login: $login)"`
	}

	variables := map[string]interface{}{
		"login": graphql.String(login),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, classify(c.inspector, err, login)
	}

	if query.User == nil {
		return nil, fmt.Errorf("github user %q does not exist: %w", login, syncerrors.ErrUserNotFound)
	}
	if query.User.Login == "" {
		return nil, fmt.Errorf("github user %q: response has no login: %w", login, syncerrors.ErrMalformedResponse)
	}

	return &User{
		ID:       int64(query.User.DatabaseID),
		Login:    string(query.User.Login),
		Name:     deref(query.User.Name),
		Company:  deref(query.User.Company),
		Location: deref(query.User.Location),
	}, nil
}

func deref(s *graphql.String) string {
	if s == nil {
		return ""
	}
	return string(*s)
}
