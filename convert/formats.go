package convert

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/minios-linux/transheet/arbfile"
	"github.com/minios-linux/transheet/jsonfile"
	"github.com/minios-linux/transheet/propfile"
	"github.com/minios-linux/transheet/tomlfile"
	"github.com/minios-linux/transheet/tree"
	"github.com/minios-linux/transheet/yamlfile"
)

// SpreadsheetExt is the extension of the tabular format.
const SpreadsheetExt = ".xlsx"

// codec reads and writes one translation file format.
type codec struct {
	read  func(path, lang string, opts Options) (*tree.Tree, error)
	write func(path string, t *tree.Tree, lang string, opts Options) error
}

var codecs = map[string]codec{
	".json": {
		read: func(path, _ string, _ Options) (*tree.Tree, error) { return jsonfile.ParseFile(path) },
		write: func(path string, t *tree.Tree, _ string, _ Options) error {
			return jsonfile.WriteFile(path, t)
		},
	},
	".yaml": yamlCodec,
	".yml":  yamlCodec,
	".toml": {
		read: func(path, _ string, _ Options) (*tree.Tree, error) { return tomlfile.ParseFile(path) },
		write: func(path string, t *tree.Tree, _ string, _ Options) error {
			return tomlfile.WriteFile(path, t)
		},
	},
	".arb": {
		read: func(path, _ string, opts Options) (*tree.Tree, error) {
			return arbfile.ParseFile(path, opts.delimiter())
		},
		write: func(path string, t *tree.Tree, lang string, opts Options) error {
			return arbfile.WriteFile(path, t, opts.delimiter(), strings.ToLower(strings.TrimSpace(lang)))
		},
	},
	".properties": {
		read: func(path, _ string, opts Options) (*tree.Tree, error) {
			return propfile.ParseFile(path, opts.delimiter())
		},
		write: func(path string, t *tree.Tree, _ string, opts Options) error {
			return propfile.WriteFile(path, t, opts.delimiter())
		},
	},
}

var yamlCodec = codec{
	read: func(path, lang string, _ Options) (*tree.Tree, error) { return yamlfile.ParseFile(path, lang) },
	write: func(path string, t *tree.Tree, lang string, opts Options) error {
		root := ""
		if opts.YAMLRootLocale {
			root = strings.ToLower(strings.TrimSpace(lang))
		}
		return yamlfile.WriteFile(path, t, root)
	},
}

// codecFor returns the codec for path's extension (case-insensitive).
func codecFor(path string) (codec, bool) {
	c, ok := codecs[strings.ToLower(filepath.Ext(path))]
	return c, ok
}

func isSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SpreadsheetExt)
}

// FileExtensions lists the supported translation file extensions, sorted.
func FileExtensions() []string {
	exts := make([]string, 0, len(codecs))
	for ext := range codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
