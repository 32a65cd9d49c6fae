package tomlfile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/minios-linux/transheet/tree"
)

func TestParse_NestedTablesDocumentOrder(t *testing.T) {
	data := []byte(`title = "Hello"
count = 3

[nav]
home = "Home"
about = "About"

[[items]]
name = "first"
`)
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	flat := tree.Flatten(f, ".")
	want := []string{"title", "count", "nav.home", "nav.about", "items.0.name"}
	if strings.Join(flat.Keys(), ",") != strings.Join(want, ",") {
		t.Fatalf("keys = %v, want %v", flat.Keys(), want)
	}
	if v, _ := flat.Get("count"); v != "3" {
		t.Fatalf("count = %q, want 3", v)
	}
}

func TestParse_DottedAndInlineKeysDocumentOrder(t *testing.T) {
	data := []byte(`zeta = "z"
menu.quit = "Quit"
menu.open = "Open"
"quoted key" = "q"
dialog = { title = "T", body = "B", buttons = [{ ok = "OK", cancel = "Cancel" }] }
`)
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	flat := tree.Flatten(f, ".")
	want := []string{
		"zeta", "menu.quit", "menu.open", "quoted key",
		"dialog.title", "dialog.body", "dialog.buttons.0.ok", "dialog.buttons.0.cancel",
	}
	if strings.Join(flat.Keys(), ",") != strings.Join(want, ",") {
		t.Fatalf("keys = %v, want %v", flat.Keys(), want)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte(`a = `)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	nav := tree.New()
	nav.SetLeaf("about", "About")
	nav.SetLeaf("home", "")
	src := tree.New()
	src.SetLeaf("title", `Say "hi"`)
	src.Set("nav", tree.Branch(nav))

	path := filepath.Join(t.TempDir(), "fr.toml")
	if err := WriteFile(path, src); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if !src.Equal(got) {
		t.Fatalf("tree changed after round trip")
	}
}
