// Package jsonfile implements reading and writing of nested JSON translation
// files:
//
//	{
//	  "title": "Hello",
//	  "nav": {
//	    "home": "Home"
//	  }
//	}
//
// Objects become branches and strings become leaves. Key order from the
// source file is preserved. Numbers and booleans are kept as their literal
// text, null becomes an empty string, and arrays become branches keyed by
// element index ("0", "1", ...).
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/minios-linux/transheet/tree"
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a JSON translation file.
func ParseFile(path string) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse parses JSON data whose root must be an object.
func Parse(data []byte) (*tree.Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing JSON: root must be an object, got %v", tok)
	}

	t, err := parseObject(dec)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Anything after the root object is an error.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parsing JSON: unexpected data after root object")
	}
	return t, nil
}

// parseObject reads members until the closing brace. The opening brace has
// already been consumed.
func parseObject(dec *json.Decoder) (*tree.Tree, error) {
	t := tree.New()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}

		v, err := parseValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		t.Set(key, v)
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return t, nil
}

// parseArray reads elements until the closing bracket.
func parseArray(dec *json.Decoder) (*tree.Tree, error) {
	t := tree.New()
	for i := 0; dec.More(); i++ {
		v, err := parseValue(dec)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		t.Set(strconv.Itoa(i), v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseValue(dec *json.Decoder) (tree.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return tree.Value{}, err
	}

	switch v := tok.(type) {
	case json.Delim:
		var (
			sub *tree.Tree
			err error
		)
		switch v {
		case '{':
			sub, err = parseObject(dec)
		case '[':
			sub, err = parseArray(dec)
		default:
			return tree.Value{}, fmt.Errorf("unexpected delimiter %v", v)
		}
		if err != nil {
			return tree.Value{}, err
		}
		return tree.Branch(sub), nil
	case string:
		return tree.Leaf(v), nil
	case json.Number:
		return tree.Leaf(v.String()), nil
	case bool:
		return tree.Leaf(strconv.FormatBool(v)), nil
	case nil:
		return tree.Leaf(""), nil
	default:
		return tree.Value{}, fmt.Errorf("unsupported token %T", tok)
	}
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Marshal renders t as 2-space indented JSON in tree key order, followed by
// a newline.
func Marshal(t *tree.Tree) ([]byte, error) {
	var b bytes.Buffer
	if err := writeObject(&b, t, 0); err != nil {
		return nil, err
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// WriteFile marshals t and writes it to path.
func WriteFile(path string, t *tree.Tree) error {
	data, err := Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeObject(b *bytes.Buffer, t *tree.Tree, depth int) error {
	if t == nil || t.Len() == 0 {
		b.WriteString("{}")
		return nil
	}

	b.WriteString("{\n")
	keys := t.Keys()
	for i, k := range keys {
		indent(b, depth+1)
		if err := writeString(b, k); err != nil {
			return err
		}
		b.WriteString(": ")

		v, _ := t.Get(k)
		if v.Kind == tree.KindBranch {
			if err := writeObject(b, v.Branch, depth+1); err != nil {
				return err
			}
		} else if err := writeString(b, v.Text); err != nil {
			return err
		}

		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	indent(b, depth)
	b.WriteByte('}')
	return nil
}

// writeString JSON-encodes s without HTML escaping, so "<b>" stays readable.
func writeString(b *bytes.Buffer, s string) error {
	var sb bytes.Buffer
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	b.Write(bytes.TrimRight(sb.Bytes(), "\n"))
	return nil
}

func indent(b *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
