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

// Package output prints run results to stdout or a file.
//
// Two formats are supported. FormatJSON writes the result as a single
// indented JSON document, which is what an operator reading the console
// expects. FormatNDJSON writes one compact JSON object per line, with
// slices flattened so that a user listing becomes one line per user; this
// suits piping into jq or a log shipper.
//
// Example usage:
//
//	w, err := output.NewFileWriter("users.ndjson", output.FormatNDJSON)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	if err := w.WriteResult(users); err != nil {
//	    return err
//	}
package output
