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
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v69/github"
	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
	"github.com/sirseerhq/sirseer-sync/internal/giterror"
)

// RESTClient implements Client with GET /users/{login}. It works without a
// token, subject to GitHub's anonymous rate limit.
type RESTClient struct {
	client    *gh.Client
	inspector giterror.Inspector
}

// NewRESTClient creates a REST client for opts.Endpoint. An empty endpoint
// means public GitHub.com. The endpoint of a GitHub Enterprise installation
// must include its API prefix, for example https://ghe.example.com/api/v3.
func NewRESTClient(opts Options) (*RESTClient, error) {
	client := gh.NewClient(newHTTPClient(opts.Token, opts.UserAgent))
	client.UserAgent = opts.UserAgent

	if opts.Endpoint != "" {
		base := opts.Endpoint
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API endpoint %q: %w", opts.Endpoint, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid GitHub API endpoint %q: scheme and host are required", opts.Endpoint)
		}
		client.BaseURL = u
	}

	return &RESTClient{
		client:    client,
		inspector: giterror.NewInspector(),
	}, nil
}

// GetUser fetches the public profile of login.
func (c *RESTClient) GetUser(ctx context.Context, login string) (*User, error) {
	if err := validateLogin(login); err != nil {
		return nil, err
	}

	u, _, err := c.client.Users.Get(ctx, login)
	if err != nil {
		return nil, c.mapError(err, login)
	}
	if u.GetLogin() == "" {
		return nil, fmt.Errorf("github user %q: response has no login: %w", login, syncerrors.ErrMalformedResponse)
	}

	return &User{
		ID:       u.GetID(),
		Login:    u.GetLogin(),
		Name:     u.GetName(),
		Company:  u.GetCompany(),
		Location: u.GetLocation(),
	}, nil
}

// mapError maps go-github errors to our domain errors with actionable messages
func (c *RESTClient) mapError(err error, login string) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying or set a token: %w", syncerrors.ErrRateLimit)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("github user %q does not exist: %w", login, syncerrors.ErrUserNotFound)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("GitHub API authentication failed. Check the token environment variable: %w", syncerrors.ErrInvalidToken)
		case http.StatusTooManyRequests:
			return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying or set a token: %w", syncerrors.ErrRateLimit)
		}
	}

	return classify(c.inspector, err, login)
}

// classify maps transport errors structurally, then falls back to the
// string-based inspector shared by both clients.
func classify(inspector giterror.Inspector, err error, login string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timed out fetching github user %q: %w", login, syncerrors.ErrNetworkFailure)
	}

	// Request URLs carry a host and port, so they must not reach the
	// substring checks below.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %v: %w", err, syncerrors.ErrNetworkFailure)
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying or set a token: %w", syncerrors.ErrRateLimit)
	}

	if inspector.IsDecodeError(err) {
		return fmt.Errorf("could not decode github user %q: %v: %w", login, err, syncerrors.ErrMalformedResponse)
	}

	if inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Check the token environment variable: %w", syncerrors.ErrInvalidToken)
	}

	if inspector.IsNotFoundError(err) {
		return fmt.Errorf("github user %q does not exist: %w", login, syncerrors.ErrUserNotFound)
	}

	if inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %v: %w", err, syncerrors.ErrNetworkFailure)
	}

	return fmt.Errorf("failed to fetch github user %q: %w", login, err)
}

// validateLogin rejects logins that would change the request path.
func validateLogin(login string) error {
	if strings.TrimSpace(login) == "" {
		return fmt.Errorf("login must not be empty: %w", syncerrors.ErrInvalidInput)
	}
	if url.PathEscape(login) != login {
		return fmt.Errorf("login %q contains characters GitHub does not allow: %w", login, syncerrors.ErrInvalidInput)
	}
	return nil
}
