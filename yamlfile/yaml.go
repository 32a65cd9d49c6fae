// Package yamlfile implements reading and writing of YAML translation files.
//
// The expected file format is a nested YAML map with string leaf values:
//
//	greeting: Hello
//	nav:
//	  home: Home
//	  about: About
//
// Rails i18n style (locale as the top-level key) is also supported:
//
//	en:
//	  greeting: Hello
//	  nav:
//	    home: Home
//
// The locale key is stripped on read when it matches the file's language, so
// en.yml and fr.yml produce the same key paths. Sequences become branches
// keyed by index, null scalars become empty strings and every other scalar is
// kept as its literal text.
package yamlfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/transheet/tree"
)

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a YAML translation file. lang is the language
// identifier of the file, used to detect a Rails-style root key.
func ParseFile(path, lang string) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	t, err := Parse(data, lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse parses YAML data into a tree.
func Parse(data []byte, lang string) (*tree.Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// Empty file.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return tree.New(), nil
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML root must be a mapping, got kind %d", root.Kind)
	}

	// Rails i18n style: single top-level key naming this file's locale.
	if len(root.Content) == 2 && lang != "" {
		keyNode := root.Content[0]
		valNode := resolve(root.Content[1])
		if keyNode.Kind == yaml.ScalarNode && valNode.Kind == yaml.MappingNode &&
			strings.EqualFold(strings.TrimSpace(keyNode.Value), strings.TrimSpace(lang)) {
			return collect(valNode), nil
		}
	}

	return collect(root), nil
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// collect converts a mapping or sequence node into a tree.
func collect(node *yaml.Node) *tree.Tree {
	t := tree.New()
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			t.Set(node.Content[i].Value, value(node.Content[i+1]))
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			t.Set(strconv.Itoa(i), value(item))
		}
	}
	return t
}

func value(node *yaml.Node) tree.Value {
	node = resolve(node)
	switch node.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return tree.Branch(collect(node))
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return tree.Leaf("")
		}
		return tree.Leaf(node.Value)
	default:
		return tree.Leaf("")
	}
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Marshal serialises t as YAML with 2-space indentation. When rootLocale is
// not empty the whole tree is nested under it (Rails i18n style).
func Marshal(t *tree.Tree, rootLocale string) ([]byte, error) {
	root := mappingNode(t)
	if rootLocale != "" {
		root = &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{stringNode(rootLocale), root},
		}
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serialises t and writes it to the given path.
func WriteFile(path string, t *tree.Tree, rootLocale string) error {
	data, err := Marshal(t, rootLocale)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func mappingNode(t *tree.Tree) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if t == nil {
		return node
	}
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		var valNode *yaml.Node
		if v.Kind == tree.KindBranch {
			valNode = mappingNode(v.Branch)
		} else {
			valNode = stringNode(v.Text)
		}
		node.Content = append(node.Content, stringNode(k), valNode)
	}
	return node
}

// stringNode builds a scalar explicitly tagged as a string, so values like
// "yes" or "42" are quoted on output. Empty strings are double-quoted.
func stringNode(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if s == "" {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}
