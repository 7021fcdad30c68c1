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
	"errors"

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
)

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, syncerrors.ErrInvalidToken) ||
		errors.Is(err, syncerrors.ErrUserNotFound) ||
		errors.Is(err, syncerrors.ErrRateLimit) {
		return 2 // GitHub rejected the request
	}

	if errors.Is(err, syncerrors.ErrNetworkFailure) ||
		errors.Is(err, syncerrors.ErrMalformedResponse) {
		return 3 // Network errors
	}

	if errors.Is(err, syncerrors.ErrDatabase) {
		return 4
	}

	if errors.Is(err, syncerrors.ErrInvalidInput) ||
		errors.Is(err, syncerrors.ErrInvalidFilter) {
		return 5
	}

	return 1 // General error
}
