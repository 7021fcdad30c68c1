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

package output

// ResultWriter prints the result of a run.
type ResultWriter interface {
	// WriteResult encodes one result value. In NDJSON mode a slice is
	// written one element per line.
	WriteResult(v interface{}) error

	// Count returns the number of JSON documents written so far.
	Count() int

	// Close releases the destination if the writer opened it.
	Close() error
}
