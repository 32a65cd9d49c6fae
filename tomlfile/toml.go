// Package tomlfile implements reading and writing of TOML translation files.
//
//	greeting = "Hello"
//
//	[nav]
//	home = "Home"
//
// Values come from the TOML decoder; key order comes from a second pass over
// the document with the unstable parser, so keys keep their document order
// at every level. Arrays become branches keyed by index and non-string
// scalars are kept as their text.
package tomlfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/minios-linux/transheet/tree"
)

// ParseFile reads and parses a TOML translation file.
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

// Parse parses TOML data into a tree.
func Parse(data []byte) (*tree.Tree, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	return fromMap(doc, nil, keyOrder(data)), nil
}

// keyOrder maps every key path of a valid document to the position at which
// it first appears. Paths inside arrays omit the element index.
func keyOrder(data []byte) map[string]int {
	order := make(map[string]int)
	note := func(path []string) {
		for i := range path {
			k := pathKey(path[:i])(path[i])
			if _, ok := order[k]; !ok {
				order[k] = len(order)
			}
		}
	}

	var p unstable.Parser
	p.Reset(data)
	var table []string
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(e.Key())
			note(table)
		case unstable.KeyValue:
			path := append(append([]string(nil), table...), keyParts(e.Key())...)
			note(path)
			noteValue(note, path, e.Value())
		}
	}
	return order
}

func noteValue(note func([]string), path []string, v *unstable.Node) {
	switch v.Kind {
	case unstable.InlineTable:
		it := v.Children()
		for it.Next() {
			kv := it.Node()
			sub := append(append([]string(nil), path...), keyParts(kv.Key())...)
			note(sub)
			noteValue(note, sub, kv.Value())
		}
	case unstable.Array:
		it := v.Children()
		for it.Next() {
			noteValue(note, path, it.Node())
		}
	}
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// pathKey returns a function building the lookup key of a child of prefix.
func pathKey(prefix []string) func(string) string {
	base := strings.Join(prefix, "\x00")
	return func(k string) string {
		if len(prefix) == 0 {
			return k
		}
		return base + "\x00" + k
	}
}

func fromMap(m map[string]any, prefix []string, order map[string]int) *tree.Tree {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	key := pathKey(prefix)
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := order[key(keys[i])]
		oj, jok := order[key(keys[j])]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})

	t := tree.New()
	for _, k := range keys {
		path := append(append([]string(nil), prefix...), k)
		t.Set(k, fromAny(m[k], path, order))
	}
	return t
}

func fromAny(v any, path []string, order map[string]int) tree.Value {
	switch x := v.(type) {
	case map[string]any:
		return tree.Branch(fromMap(x, path, order))
	case []any:
		t := tree.New()
		for i, item := range x {
			t.Set(strconv.Itoa(i), fromAny(item, path, order))
		}
		return tree.Branch(t)
	case string:
		return tree.Leaf(x)
	case nil:
		return tree.Leaf("")
	default:
		return tree.Leaf(fmt.Sprint(x))
	}
}

// Marshal serialises t as TOML. Leaves become strings; branches become tables.
func Marshal(t *tree.Tree) ([]byte, error) {
	data, err := toml.Marshal(toMap(t))
	if err != nil {
		return nil, fmt.Errorf("marshaling TOML: %w", err)
	}
	return data, nil
}

// WriteFile serialises t and writes it to the given path.
func WriteFile(path string, t *tree.Tree) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func toMap(t *tree.Tree) map[string]any {
	m := make(map[string]any)
	if t == nil {
		return m
	}
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		if v.Kind == tree.KindBranch {
			m[k] = toMap(v.Branch)
		} else {
			m[k] = v.Text
		}
	}
	return m
}
