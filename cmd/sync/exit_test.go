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

package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
)

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error", err: nil, wantCode: 0},
		{name: "invalid token", err: syncerrors.ErrInvalidToken, wantCode: 2},
		{name: "user not found", err: fmt.Errorf("import: %w", syncerrors.ErrUserNotFound), wantCode: 2},
		{name: "rate limit", err: syncerrors.ErrRateLimit, wantCode: 2},
		{name: "network failure", err: syncerrors.ErrNetworkFailure, wantCode: 3},
		{name: "malformed response", err: syncerrors.ErrMalformedResponse, wantCode: 3},
		{name: "database", err: fmt.Errorf("insert: %w", syncerrors.ErrDatabase), wantCode: 4},
		{name: "invalid input", err: syncerrors.ErrInvalidInput, wantCode: 5},
		{name: "invalid filter", err: syncerrors.ErrInvalidFilter, wantCode: 5},
		{name: "no likes", err: syncerrors.ErrNoLikes, wantCode: 1},
		{name: "context deadline", err: context.DeadlineExceeded, wantCode: 1},
		{name: "generic error", err: errors.New("something went wrong"), wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErrorToExitCode(tt.err)
			if got != tt.wantCode {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
		})
	}
}
