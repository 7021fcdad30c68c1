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

package store

import (
	"fmt"
	"strconv"
	"strings"

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
)

// filterColumns are the github_users columns a filter may constrain.
var filterColumns = map[string]bool{
	"id":       true,
	"login":    true,
	"name":     true,
	"company":  true,
	"location": true,
}

// Condition is one column = value equality.
type Condition struct {
	Column string
	Value  interface{}
}

// Filter is a list of equality conditions joined with AND. The zero value
// matches every row.
type Filter struct {
	Conditions []Condition
}

// ParseFilter parses "key:value,key:value". Each pair is split on its first
// colon, so values may contain colons but not commas. Keys are trimmed and
// lower-cased; values are used verbatim.
func ParseFilter(s string) (Filter, error) {
	var f Filter
	if strings.TrimSpace(s) == "" {
		return f, nil
	}

	for _, pair := range strings.Split(s, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}

		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			return Filter{}, fmt.Errorf("filter pair %q has no ':': %w", pair, syncerrors.ErrInvalidFilter)
		}

		key = strings.ToLower(strings.TrimSpace(key))
		if !filterColumns[key] {
			return Filter{}, fmt.Errorf("unknown filter key %q: %w", key, syncerrors.ErrInvalidFilter)
		}

		if key == "id" {
			id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return Filter{}, fmt.Errorf("filter id %q is not a number: %w", value, syncerrors.ErrInvalidFilter)
			}
			f.Conditions = append(f.Conditions, Condition{Column: key, Value: id})
			continue
		}

		f.Conditions = append(f.Conditions, Condition{Column: key, Value: value})
	}

	return f, nil
}

// LoginFilter matches the user with the given login.
func LoginFilter(login string) Filter {
	return Filter{Conditions: []Condition{{Column: "login", Value: login}}}
}

// IsEmpty reports whether the filter matches every row.
func (f Filter) IsEmpty() bool {
	return len(f.Conditions) == 0
}

// Where renders the conditions as "col = ? AND col = ?" with the bound
// values in order. Logins compare case-insensitively. It returns an empty
// clause for an empty filter.
func (f Filter) Where() (string, []interface{}) {
	if f.IsEmpty() {
		return "", nil
	}

	clauses := make([]string, 0, len(f.Conditions))
	args := make([]interface{}, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		if c.Column == "login" {
			// GitHub logins are case-insensitive.
			clauses = append(clauses, "lower(login) = lower(CAST(? AS TEXT))")
		} else {
			clauses = append(clauses, c.Column+" = ?")
		}
		args = append(args, c.Value)
	}
	return strings.Join(clauses, " AND "), args
}

// String renders the filter back in key:value form.
func (f Filter) String() string {
	parts := make([]string, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		parts = append(parts, fmt.Sprintf("%s:%v", c.Column, c.Value))
	}
	return strings.Join(parts, ",")
}
