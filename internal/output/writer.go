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

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Writer encodes results as indented JSON or as NDJSON.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	format    string
	count     int
	closeFunc func() error
}

// NewWriter creates a writer for w in the given format.
func NewWriter(w io.Writer, format string) (*Writer, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	return &Writer{output: w, format: format}, nil
}

// NewFileWriter creates the file and a writer for it.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename, format string) (*Writer, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		output:    file,
		format:    format,
		closeFunc: file.Close,
	}, nil
}

func checkFormat(format string) error {
	if format != FormatJSON && format != FormatNDJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s): %w", format, FormatJSON, FormatNDJSON, syncerrors.ErrInvalidInput)
	}
	return nil
}

// WriteResult writes v. JSON mode writes the whole value as one document;
// NDJSON mode writes each element of a slice on its own line.
func (w *Writer) WriteResult(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.format == FormatJSON {
		enc := json.NewEncoder(w.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		w.count++
		return nil
	}

	enc := json.NewEncoder(w.output)
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		w.count++
		return nil
	}

	for i := 0; i < rv.Len(); i++ {
		if err := enc.Encode(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
		w.count++
	}
	return nil
}

// Count returns the number of JSON documents written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
