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

// Package testutil provides common test helpers for sirseer-sync
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// Profile is a GitHub user as served by GitHubServer.
type Profile struct {
	ID       int64
	Login    string
	Name     string
	Company  string
	Location string
}

// GitHubServer emulates GET /users/{login} and POST /graphql.
type GitHubServer struct {
	*httptest.Server

	mu       sync.Mutex
	profiles map[string]Profile
	requests int32

	lastUserAgent string
	lastAuth      string

	// StatusCode, when non-zero, is returned for every request instead of data.
	StatusCode int
	// Body overrides the response body, used to serve malformed documents.
	Body string
}

// NewGitHubServer starts a server knowing the given profiles. It is closed
// when the test ends.
func NewGitHubServer(t *testing.T, profiles ...Profile) *GitHubServer {
	t.Helper()

	s := &GitHubServer{profiles: make(map[string]Profile)}
	for _, p := range profiles {
		s.profiles[strings.ToLower(p.Login)] = p
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Requests returns how many requests the server has received.
func (s *GitHubServer) Requests() int {
	return int(atomic.LoadInt32(&s.requests))
}

// LastUserAgent returns the User-Agent of the most recent request.
func (s *GitHubServer) LastUserAgent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUserAgent
}

// LastAuthorization returns the Authorization header of the most recent request.
func (s *GitHubServer) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// SetFailure makes every following request answer with status and body.
func (s *GitHubServer) SetFailure(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StatusCode = status
	s.Body = body
}

func (s *GitHubServer) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.requests, 1)

	s.mu.Lock()
	s.lastUserAgent = r.UserAgent()
	s.lastAuth = r.Header.Get("Authorization")
	status, body := s.StatusCode, s.Body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
		return
	}
	if body != "" {
		_, _ = w.Write([]byte(body))
		return
	}

	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/users/"):
		s.serveREST(w, strings.TrimPrefix(r.URL.Path, "/users/"))
	case r.Method == http.MethodPost && r.URL.Path == "/graphql":
		s.serveGraphQL(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}
}

func (s *GitHubServer) lookup(login string) (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[strings.ToLower(login)]
	return p, ok
}

func (s *GitHubServer) serveREST(w http.ResponseWriter, login string) {
	p, ok := s.lookup(login)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found","documentation_url":"https://docs.github.com/rest/users/users#get-a-user"}`))
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"id":       p.ID,
		"login":    p.Login,
		"type":     "User",
		"name":     nullable(p.Name),
		"company":  nullable(p.Company),
		"location": nullable(p.Location),
	})
}

func (s *GitHubServer) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string            `json:"query"`
		Variables map[string]string `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Problems parsing JSON"}`))
		return
	}

	login := req.Variables["login"]
	p, ok := s.lookup(login)
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"user": nil},
			"errors": []map[string]interface{}{{
				"type":    "NOT_FOUND",
				"path":    []string{"user"},
				"message": "Could not resolve to a User with the login of '" + login + "'.",
			}},
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"data": map[string]interface{}{
			"user": map[string]interface{}{
				"databaseId": p.ID,
				"login":      p.Login,
				"name":       nullable(p.Name),
				"company":    nullable(p.Company),
				"location":   nullable(p.Location),
			},
		},
	})
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
