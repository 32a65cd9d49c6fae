// Package propfile reads and writes Java .properties translation files.
//
// Format: key=value pairs, one per line. Lines starting with '#' or '!' are
// comments, blank lines are ignored. The separator may be '=' or ':' and a
// trailing backslash continues the value on the next line.
//
// Keys are flat KeyPaths ("menu.file.open"); they are split on the
// configured delimiter into a nested tree on read and joined again on write.
//
//	translations_dir/en.properties
//	translations_dir/ru.properties
package propfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/minios-linux/transheet/tree"
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads a .properties file and builds a tree by splitting keys
// on delim.
func ParseFile(path, delim string) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree.Unflatten(f, delim), nil
}

// Parse returns the entries of a .properties document in document order.
// A repeated key keeps its first position and takes the last value.
func Parse(data []byte) (*tree.Flat, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	rawLines := strings.Split(text, "\n")

	f := tree.NewFlat()
	for i := 0; i < len(rawLines); i++ {
		trimmed := strings.TrimLeft(rawLines[i], " \t\f")
		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!' {
			continue
		}

		lineNo := i + 1
		for continued(trimmed) && i+1 < len(rawLines) {
			i++
			trimmed = trimmed[:len(trimmed)-1] + strings.TrimLeft(rawLines[i], " \t\f")
		}

		k, v := splitKeyValue(trimmed)
		key, err := unescape(k)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if key == "" {
			continue
		}
		value, err := unescape(v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		f.Set(key, value)
	}
	return f, nil
}

// continued reports whether s ends with an odd number of backslashes.
func continued(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// splitKeyValue splits "key = value" or "key=value" at the first unescaped
// separator. Whitespace around the separator is stripped.
func splitKeyValue(s string) (key, value string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '=', ':':
			return strings.TrimSpace(s[:i]), strings.TrimLeft(s[i+1:], " \t\f")
		}
	}
	return strings.TrimSpace(s), ""
}

func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case 'u':
			if i+4 >= len(s) {
				return "", fmt.Errorf("truncated unicode escape %q", s[i-1:])
			}
			r, err := hexRune(s[i+1 : i+5])
			if err != nil {
				return "", fmt.Errorf("invalid unicode escape %q", s[i-1:i+5])
			}
			i += 4
			// Characters outside the BMP arrive as a \uD8xx\uDCxx pair.
			if utf16.IsSurrogate(r) && i+6 < len(s) && s[i+1] == '\\' && s[i+2] == 'u' {
				if lo, err := hexRune(s[i+3 : i+7]); err == nil {
					if pair := utf16.DecodeRune(r, lo); pair != unicode.ReplacementChar {
						r = pair
						i += 6
					}
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}

func hexRune(s string) (rune, error) {
	r, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(r), nil
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal flattens t with delim and writes one key=value line per leaf.
// Values are written as UTF-8; only characters that would change the
// meaning of a line are escaped.
func Marshal(t *tree.Tree, delim string) []byte {
	flat := tree.Flatten(t, delim)

	var buf bytes.Buffer
	for _, k := range flat.Keys() {
		v, _ := flat.Get(k)
		buf.WriteString(escape(k, true))
		buf.WriteByte('=')
		buf.WriteString(escape(v, false))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func escape(s string, key bool) string {
	var b strings.Builder
	for i, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '=', ':':
			if key {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		case ' ':
			if key || i == 0 {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		case '#', '!':
			if key && i == 0 {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WriteFile serialises t and writes it to path, creating parent directories
// with 0755 permissions.
func WriteFile(path string, t *tree.Tree, delim string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, Marshal(t, delim), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
