// Package arbfile implements reading and writing of Flutter ARB (Application
// Resource Bundle) translation files.
//
// ARB files are flat JSON objects:
//
//   - "@@locale" holds the language code (e.g. "en", "ru").
//   - Keys starting with "@" are metadata entries (e.g. "@greeting") and
//     are not translation strings; they are skipped on read.
//   - All other string values are translatable.
//
// Keys are split on the configured delimiter into a nested tree, so a key
// like "menu.open" round-trips through the spreadsheet like any other
// KeyPath.
package arbfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/transheet/tree"
)

// LocaleKey is the ARB entry naming the file's language.
const LocaleKey = "@@locale"

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads an ARB file and builds a tree by splitting keys on delim.
func ParseFile(path, delim string) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, _, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree.Unflatten(f, delim), nil
}

// Parse returns the translatable entries of an ARB document in document
// order together with its @@locale value.
func Parse(data []byte) (*tree.Flat, string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, "", fmt.Errorf("parsing ARB: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, "", fmt.Errorf("parsing ARB: expected '{', got %v", tok)
	}

	f := tree.NewFlat()
	var locale string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, "", fmt.Errorf("parsing ARB key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, "", fmt.Errorf("parsing ARB: expected string key, got %T", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, "", fmt.Errorf("parsing ARB value for %q: %w", key, err)
		}

		if key == LocaleKey {
			if err := json.Unmarshal(raw, &locale); err != nil {
				return nil, "", fmt.Errorf("parsing ARB: %s is not a string", LocaleKey)
			}
			continue
		}
		if strings.HasPrefix(key, "@") {
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, "", fmt.Errorf("parsing ARB: value for %q is not a string", key)
		}
		f.Set(key, s)
	}

	if _, err := dec.Token(); err != nil {
		return nil, "", fmt.Errorf("parsing ARB: %w", err)
	}
	return f, locale, nil
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal flattens t with delim and encodes it as an ARB object with 2-space
// indentation. The "@@locale" entry comes first when locale is non-empty.
func Marshal(t *tree.Tree, delim, locale string) ([]byte, error) {
	flat := tree.Flatten(t, delim)

	var buf bytes.Buffer
	buf.WriteString("{")
	first := true
	writeEntry := func(k, v string) error {
		kb, err := marshalString(k)
		if err != nil {
			return err
		}
		vb, err := marshalString(v)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString("\n  ")
		buf.Write(kb)
		buf.WriteString(": ")
		buf.Write(vb)
		return nil
	}

	if locale != "" {
		if err := writeEntry(LocaleKey, locale); err != nil {
			return nil, err
		}
	}
	for _, k := range flat.Keys() {
		v, _ := flat.Get(k)
		if err := writeEntry(k, v); err != nil {
			return nil, err
		}
	}

	if !first {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// marshalString encodes s as a JSON string without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteFile serialises t and writes it to path, creating parent directories
// with 0755 permissions.
func WriteFile(path string, t *tree.Tree, delim, locale string) error {
	data, err := Marshal(t, delim, locale)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
