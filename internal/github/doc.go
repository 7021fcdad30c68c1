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

// Package github provides clients for looking up GitHub users by login. It
// hides the difference between the REST and GraphQL APIs behind a single
// Client interface and maps transport failures to the sentinel errors in
// internal/errors.
//
// The package includes:
//   - A Client interface with a single GetUser operation
//   - A REST implementation using google/go-github (the default)
//   - A GraphQL implementation using the shurcooL/graphql library
//   - Mock client for testing
//
// Basic usage:
//
//	client, err := github.NewRESTClient(github.Options{
//	    Endpoint:  "https://api.github.com",
//	    UserAgent: "sirseer-sync/dev",
//	})
//	if err != nil {
//	    // Handle error
//	}
//	user, err := client.GetUser(ctx, "octocat")
//
// Each GetUser call issues exactly one request. There is no retry: callers
// decide what a failure means.
package github
