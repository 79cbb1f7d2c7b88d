// Package jsonfile writes query results to disk as pretty-printed JSON.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// Write serializes v to path with 4-space indentation. HTML escaping is off
// so URLs and non-ASCII text are preserved literally. The parent directory is
// created if missing; the file is overwritten whole.
func Write(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
