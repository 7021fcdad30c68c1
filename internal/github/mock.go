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
	"strings"
	"sync"

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for testing.
type MockClient struct {
	mu sync.Mutex

	// Users to return, keyed by lower-cased login
	Users map[string]User

	// Error to return
	Error error

	// Behavior flags
	ShouldFailNetwork bool

	// Track calls for verification
	CallCount int
	LastLogin string
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	m := &MockClient{Users: make(map[string]User)}
	for _, u := range generateTestUsers() {
		m.Users[strings.ToLower(u.Login)] = u
	}
	return m
}

// GetUser implements the Client interface
func (m *MockClient) GetUser(ctx context.Context, login string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastLogin = login

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ShouldFailNetwork {
		return nil, fmt.Errorf("network timeout: %w", syncerrors.ErrNetworkFailure)
	}

	if m.Error != nil {
		return nil, m.Error
	}

	u, ok := m.Users[strings.ToLower(login)]
	if !ok {
		return nil, fmt.Errorf("github user %q does not exist: %w", login, syncerrors.ErrUserNotFound)
	}
	return &u, nil
}

// Calls returns the number of GetUser calls so far.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// generateTestUsers creates sample profiles for testing
func generateTestUsers() []User {
	return []User{
		{ID: 583231, Login: "octocat", Name: "The Octocat", Company: "@github", Location: "San Francisco"},
		{ID: 1001, Login: "alice", Name: "Alice", Location: "lisbon"},
		{ID: 1002, Login: "bob", Company: "acme", Location: "porto"},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithUsers replaces the known users
func WithUsers(users ...User) MockClientOption {
	return func(m *MockClient) {
		m.Users = make(map[string]User, len(users))
		for _, u := range users {
			m.Users[strings.ToLower(u.Login)] = u
		}
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithNetworkFailure makes the client simulate a network failure
func WithNetworkFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailNetwork = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
