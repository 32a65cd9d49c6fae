package propfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minios-linux/transheet/tree"
)

func TestParse_Basic(t *testing.T) {
	data := []byte("greeting=Hello\nfarewell=Goodbye\n")
	f, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := f.Get("greeting"); got != "Hello" {
		t.Errorf("greeting = %q, want %q", got, "Hello")
	}
	if got, _ := f.Get("farewell"); got != "Goodbye" {
		t.Errorf("farewell = %q, want %q", got, "Goodbye")
	}
	if strings.Join(f.Keys(), ",") != "greeting,farewell" {
		t.Errorf("keys = %v, want document order", f.Keys())
	}
}

func TestParse_CommentsAndBlanks(t *testing.T) {
	data := []byte("# This is a comment\n\n! another comment\nkey=value\n")
	f, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 1 {
		t.Errorf("expected 1 key, got %d", f.Len())
	}
	if got, _ := f.Get("key"); got != "value" {
		t.Errorf("key = %q, want %q", got, "value")
	}
}

func TestParse_Separators(t *testing.T) {
	data := []byte("name: World\nurl=http://example.com?a=1&b=2\nspaced = x \nempty\n")
	f, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]string{
		"name":   "World",
		"url":    "http://example.com?a=1&b=2",
		"spaced": "x ",
		"empty":  "",
	}
	for k, want := range cases {
		if got, ok := f.Get(k); !ok || got != want {
			t.Errorf("%s = %q (found %v), want %q", k, got, ok, want)
		}
	}
}

func TestParse_EscapesAndContinuation(t *testing.T) {
	data := []byte("a\\=b=one\\ntwo\ncafe=caf\\u00e9\nlong=first \\\n    second\n")
	f, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := f.Get("a=b"); got != "one\ntwo" {
		t.Errorf("a=b = %q", got)
	}
	if got, _ := f.Get("cafe"); got != "café" {
		t.Errorf("cafe = %q", got)
	}
	if got, _ := f.Get("long"); got != "first second" {
		t.Errorf("long = %q", got)
	}
}

func TestParse_SurrogatePairEscape(t *testing.T) {
	f, err := Parse([]byte("smile=\\ud83d\\ude00 ok\nlone=\\ud83dx\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := f.Get("smile"); got != "😀 ok" {
		t.Errorf("smile = %q, want %q", got, "😀 ok")
	}
	if got, _ := f.Get("lone"); got != "\uFFFDx" {
		t.Errorf("lone = %q, want replacement character", got)
	}
}

func TestParse_InvalidUnicodeEscape(t *testing.T) {
	if _, err := Parse([]byte("k=\\uZZZZ\n")); err == nil {
		t.Fatal("expected error for invalid unicode escape")
	}
}

func TestParse_DuplicateKeyKeepsPosition(t *testing.T) {
	f, err := Parse([]byte("a=1\nb=2\na=3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(f.Keys(), ",") != "a,b" {
		t.Errorf("keys = %v", f.Keys())
	}
	if got, _ := f.Get("a"); got != "3" {
		t.Errorf("a = %q, want 3", got)
	}
}

func TestMarshal_NestedTree(t *testing.T) {
	nav := tree.New()
	nav.SetLeaf("home", "Home")
	nav.SetLeaf("about", "About us")
	root := tree.New()
	root.SetLeaf("title", "Hello")
	root.Set("nav", tree.Branch(nav))

	got := string(Marshal(root, "."))
	want := "title=Hello\nnav.home=Home\nnav.about=About us\n"
	if got != want {
		t.Fatalf("Marshal =\n%s\nwant\n%s", got, want)
	}
}

func TestMarshal_Escaping(t *testing.T) {
	root := tree.New()
	root.SetLeaf("key with:colon", " leading\nnewline")

	got := string(Marshal(root, "."))
	want := "key\\ with\\:colon=\\ leading\\nnewline\n"
	if got != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}

	f, err := Parse([]byte(got))
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := f.Get("key with:colon"); v != " leading\nnewline" {
		t.Fatalf("re-parsed value = %q", v)
	}
}

func TestWriteFileAndParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "fr.properties")

	root := tree.New()
	menu := tree.New()
	menu.SetLeaf("open", "Ouvrir")
	root.Set("menu", tree.Branch(menu))

	if err := WriteFile(path, root, "/"); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "menu/open=Ouvrir\n" {
		t.Fatalf("file = %q", data)
	}

	got, err := ParseFile(path, "/")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if !got.Equal(root) {
		t.Fatal("round trip changed the tree")
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.properties"), "."); err == nil {
		t.Fatal("expected error for missing file")
	}
}
