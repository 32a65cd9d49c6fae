package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minios-linux/transheet/tree"
)

func TestParse_PreservesOrderAndNesting(t *testing.T) {
	data := []byte(`{
  "zeta": "Last letter",
  "nav": {"home": "Home", "about": "About"},
  "alpha": "First letter"
}`)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	keys := tree.Flatten(f, ".").Keys()
	want := []string{"zeta", "nav.home", "nav.about", "alpha"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected key order: %v, want %v", keys, want)
	}
}

func TestParse_NonStringScalarsAndArrays(t *testing.T) {
	data := []byte(`{"count": 12, "on": true, "nothing": null, "list": ["a", {"b": "c"}]}`)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	flat := tree.Flatten(f, ".")
	cases := map[string]string{
		"count":    "12",
		"on":       "true",
		"nothing":  "",
		"list.0":   "a",
		"list.1.b": "c",
	}
	for path, want := range cases {
		got, ok := flat.Get(path)
		if !ok {
			t.Fatalf("missing path %q in %v", path, flat.Keys())
		}
		if got != want {
			t.Fatalf("%s = %q, want %q", path, got, want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{name: "truncated", data: `{"broken":`},
		{name: "array root", data: `["a"]`},
		{name: "string root", data: `"a"`},
		{name: "trailing data", data: `{"a": "b"} {"c": "d"}`},
		{name: "empty", data: ``},
	}
	for _, tc := range cases {
		if _, err := Parse([]byte(tc.data)); err == nil {
			t.Fatalf("%s: expected parse error", tc.name)
		}
	}
}

func TestMarshal_Format(t *testing.T) {
	inner := tree.New()
	inner.SetLeaf("b", "<b>1</b>")
	root := tree.New()
	root.Set("a", tree.Branch(inner))
	root.SetLeaf("c", `say "hi"`)
	root.Set("empty", tree.Branch(nil))

	out, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	want := `{
  "a": {
    "b": "<b>1</b>"
  },
  "c": "say \"hi\"",
  "empty": {}
}
`
	if string(out) != want {
		t.Fatalf("Marshal output:\n%s\nwant:\n%s", out, want)
	}
}

func TestMarshal_EmptyTree(t *testing.T) {
	out, err := Marshal(tree.New())
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(out) != "{}\n" {
		t.Fatalf("Marshal(empty) = %q", out)
	}
}

func TestWriteFileAndParseFile_RoundTrip(t *testing.T) {
	src, err := Parse([]byte(`{"a": {"b": "1", "c": ""}, "d": "ü"}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "sub", "en.json")
	if err := WriteFile(path, src); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if !src.Equal(got) {
		t.Fatal("tree changed after write/read")
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
