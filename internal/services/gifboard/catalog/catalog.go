// Package catalog holds the read-only JSON document served by the data
// endpoint. The document is loaded once at startup and never mutated.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

//go:embed gifs.json
var embedded []byte

// ErrInvalidDocument reports a payload that is empty or not valid JSON.
var ErrInvalidDocument = errors.New("invalid catalog document")

// Document is an immutable JSON payload. Its structure is opaque to the
// server; only validity is checked.
type Document struct {
	raw     []byte
	records int
}

// Default returns the document shipped with the binary.
func Default() (*Document, error) {
	return Parse(embedded)
}

// Load reads the document from path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return doc, nil
}

// Parse validates raw and returns a Document that owns a private copy of it.
// The payload is kept byte for byte, including surrounding whitespace.
func Parse(raw []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidDocument)
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidDocument)
	}
	return &Document{
		raw:     bytes.Clone(raw),
		records: countRecords(trimmed),
	}, nil
}

// countRecords reports the array length for a top-level array, else 0.
func countRecords(raw []byte) int {
	if raw[0] != '[' {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}

// Bytes returns a copy of the payload.
func (d *Document) Bytes() []byte {
	if d == nil {
		return nil
	}
	return bytes.Clone(d.raw)
}

// Len reports the number of top-level records.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return d.records
}

// Size reports the payload size in bytes.
func (d *Document) Size() int {
	if d == nil {
		return 0
	}
	return len(d.raw)
}

// WriteTo writes the payload to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if d == nil {
		return 0, nil
	}
	n, err := w.Write(d.raw)
	return int64(n), err
}
