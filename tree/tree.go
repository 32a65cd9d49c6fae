// Package tree models a single language's translation strings as an ordered,
// nested key/value tree and converts it to and from a flat mapping of
// delimiter-joined key paths.
//
// A tree node holds either a string leaf or a nested tree. Which one is
// decided by the file codec at parse time, so the transforms in this package
// never inspect dynamic types.
package tree

import "strings"

// DefaultDelimiter joins key segments into a key path ("nav.home").
const DefaultDelimiter = "."

// ---------------------------------------------------------------------------
// Values
// ---------------------------------------------------------------------------

// Kind tags a Value as a leaf or a branch.
type Kind int

const (
	KindLeaf   Kind = iota // string value
	KindBranch             // nested tree
)

// Value is a tagged leaf-or-branch node.
type Value struct {
	Kind   Kind
	Text   string // only for KindLeaf
	Branch *Tree  // only for KindBranch
}

// Leaf returns a leaf value holding s.
func Leaf(s string) Value {
	return Value{Kind: KindLeaf, Text: s}
}

// Branch returns a branch value wrapping t. A nil t is replaced by an
// empty tree.
func Branch(t *Tree) Value {
	if t == nil {
		t = New()
	}
	return Value{Kind: KindBranch, Branch: t}
}

// IsLeaf reports whether v is a string leaf.
func (v Value) IsLeaf() bool { return v.Kind == KindLeaf }

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// Tree is an ordered mapping from key to Value.
type Tree struct {
	// keys preserves first insertion order.
	keys []string
	// values maps key → value.
	values map[string]Value
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{values: make(map[string]Value)}
}

// Set stores v under key. A key that already exists keeps its position.
func (t *Tree) Set(key string, v Value) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// SetLeaf is shorthand for Set(key, Leaf(s)).
func (t *Tree) SetLeaf(key, s string) {
	t.Set(key, Leaf(s))
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (Value, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (t *Tree) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of direct children.
func (t *Tree) Len() int { return len(t.keys) }

// Equal reports whether t and other have the same keys in the same order
// with equal values at every level.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.keys) != len(other.keys) {
		return false
	}
	for i, k := range t.keys {
		if other.keys[i] != k {
			return false
		}
		a, b := t.values[k], other.values[k]
		if a.Kind != b.Kind {
			return false
		}
		if a.Kind == KindLeaf {
			if a.Text != b.Text {
				return false
			}
			continue
		}
		if !a.Branch.Equal(b.Branch) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Flat mapping
// ---------------------------------------------------------------------------

// Flat is an ordered mapping from key path to string value.
type Flat struct {
	keys   []string
	values map[string]string
}

// NewFlat returns an empty flat mapping.
func NewFlat() *Flat {
	return &Flat{values: make(map[string]string)}
}

// Set stores value under path. An existing path keeps its position.
func (f *Flat) Set(path, value string) {
	if _, ok := f.values[path]; !ok {
		f.keys = append(f.keys, path)
	}
	f.values[path] = value
}

// Get returns the value for path.
func (f *Flat) Get(path string) (string, bool) {
	v, ok := f.values[path]
	return v, ok
}

// Keys returns key paths in insertion order.
func (f *Flat) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of key paths.
func (f *Flat) Len() int { return len(f.keys) }

// ---------------------------------------------------------------------------
// Flatten / Unflatten
// ---------------------------------------------------------------------------

// Flatten walks t and returns every leaf keyed by its delimiter-joined path,
// in traversal order. Empty branches contribute nothing.
func Flatten(t *Tree, delim string) *Flat {
	f := NewFlat()
	if t != nil {
		flattenInto(f, t, "", delim)
	}
	return f
}

func flattenInto(f *Flat, t *Tree, prefix, delim string) {
	for _, key := range t.keys {
		path := key
		if prefix != "" {
			path = prefix + delim + key
		}

		v := t.values[key]
		switch v.Kind {
		case KindBranch:
			flattenInto(f, v.Branch, path, delim)
		default:
			f.Set(path, v.Text)
		}
	}
}

// Unflatten rebuilds a tree from f by splitting each path on delim.
//
// Conflicting paths are resolved last-write-wins: a leaf sitting where a
// branch is needed is replaced by an empty branch, and a branch sitting where
// a leaf is written is replaced by that leaf.
func Unflatten(f *Flat, delim string) *Tree {
	root := New()
	if f == nil {
		return root
	}
	for _, path := range f.keys {
		segments := []string{path}
		if delim != "" {
			segments = strings.Split(path, delim)
		}

		node := root
		for _, seg := range segments[:len(segments)-1] {
			next, ok := node.Get(seg)
			if !ok || next.Kind != KindBranch {
				next = Branch(New())
				node.Set(seg, next)
			}
			node = next.Branch
		}
		node.SetLeaf(segments[len(segments)-1], f.values[path])
	}
	return root
}
