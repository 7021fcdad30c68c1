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

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, false},
		{"", false, true},
		{"chatty", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.level)

			log.Debug().Msg("debug line")
			log.Info().Msg("info line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug written = %v, want %v (output %q)", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info written = %v, want %v (output %q)", got, tt.wantInfo, out)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	short := "SELECT 1"
	if got := Truncate(short); got != short {
		t.Errorf("Truncate(%q) = %q", short, got)
	}

	multi := "SELECT id\n\t\tFROM languages\n\t\tWHERE name = ?"
	if got := Truncate(multi); got != "SELECT id FROM languages WHERE name = ?" {
		t.Errorf("Truncate() collapsed to %q", got)
	}

	long := strings.Repeat("x", MaxStatementLength+50)
	if got := Truncate(long); len(got) != MaxStatementLength {
		t.Errorf("len(Truncate(long)) = %d, want %d", len(got), MaxStatementLength)
	}
}
