package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteResult encodes a layout result as indented JSON to w.
func WriteResult(r Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteResultFile writes a layout result to the file at path.
func WriteResultFile(r Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResult(r, f)
}

// MarshalResult returns the result's canonical JSON bytes. The output is
// deterministic for a given result, which makes it suitable for content
// hashing and cache keys.
func MarshalResult(r Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteResult(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalResult decodes a layout result from its JSON bytes.
func UnmarshalResult(data []byte) (Result, error) {
	return ReadResult(bytes.NewReader(data))
}

// ReadResult decodes a layout result from r.
func ReadResult(rd io.Reader) (Result, error) {
	var r Result
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return Result{}, fmt.Errorf("decode: %w", err)
	}
	return r, nil
}

// ReadResultFile reads a layout result from the file at path.
func ReadResultFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadResult(f)
}
