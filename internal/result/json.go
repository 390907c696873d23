package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MarshalJSON renders the set as a JSON array of objects with string values.
// Object keys follow field order, so keys are not sorted. An empty or nil
// set renders as [].
//
// Strings escape '"', '\\' and control characters (\b \f \n \r \t short
// forms, \u00XX for the rest). HTML characters are NOT escaped.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, row := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, f := range row.Fields {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(&buf, f.Name); err != nil {
				return nil, fmt.Errorf("row[%d] key %q: %w", i, f.Name, err)
			}
			buf.WriteByte(':')
			if err := writeJSONString(&buf, f.Value); err != nil {
				return nil, fmt.Errorf("row[%d][%q]: %w", i, f.Name, err)
			}
		}
		buf.WriteByte('}')
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// writeJSONString appends s as a JSON string literal.
// Invalid UTF-8 bytes become U+FFFD so the file is always valid JSON;
// console output keeps the raw bytes.
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false) // <, >, & stay literal
	if err := enc.Encode(s); err != nil {
		return err
	}

	// json.Encoder adds trailing newline, remove it
	out := tmp.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	buf.Write(out)
	return nil
}

// WriteJSON writes the set's JSON rendering to w.
func WriteJSON(w io.Writer, set Set) error {
	data, err := set.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteJSONFile writes the set to <dir>/<SanitizeName(query)>.json,
// creating dir if needed. The file is written under a temporary name and
// renamed into place, so a failed write never leaves a truncated result.
// Returns the path written.
func WriteJSONFile(dir, query string, set Set) (string, error) {
	data, err := set.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("render json: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, SanitizeName(query)+".json")
	tmp := filepath.Join(dir, ".tmp-"+uuid.NewString()+".json")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("cannot open %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("cannot write %s: %w", path, err)
	}

	return path, nil
}
