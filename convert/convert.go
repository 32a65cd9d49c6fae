// Package convert drives a whole conversion: it resolves the input paths,
// picks the direction, reads every input, transforms it through the grid
// package and writes the results next to the inputs.
//
// The first failure aborts the run; nothing is retried.
package convert

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/minios-linux/transheet/grid"
	"github.com/minios-linux/transheet/logging"
	"github.com/minios-linux/transheet/tree"
	"github.com/minios-linux/transheet/xlsxfile"
)

// Options holds the settings of one conversion.
type Options struct {
	Delimiter   string
	Placeholder string
	KeyHeader   string
	// OutputName is the spreadsheet file name (files → spreadsheet).
	OutputName  string
	SheetName   string
	ColumnWidth float64
	// OutputFormat is the extension, without dot, of files written when
	// splitting a spreadsheet.
	OutputFormat string
	// YAMLRootLocale nests YAML output under the language code.
	YAMLRootLocale bool
}

func (o Options) gridOptions() grid.Options {
	return grid.Options{
		Delimiter:   o.Delimiter,
		Placeholder: o.Placeholder,
		KeyHeader:   o.KeyHeader,
	}
}

// delimiter returns the key path delimiter, defaulting to ".".
func (o Options) delimiter() string {
	if o.Delimiter == "" {
		return tree.DefaultDelimiter
	}
	return o.Delimiter
}

// Artifact is a file written by a conversion.
type Artifact struct {
	// Language is the header identifier the file was produced from; empty
	// for the spreadsheet.
	Language string
	// Name is the file name.
	Name string
	// Path is the absolute path of the file.
	Path string
}

// Run executes plan and returns the written files in write order.
func Run(plan *Plan, opts Options) ([]Artifact, error) {
	switch plan.Mode {
	case ModeToSpreadsheet:
		a, err := ToSpreadsheet(plan.Inputs, opts)
		if err != nil {
			return nil, err
		}
		return []Artifact{a}, nil
	case ModeToFiles:
		return ToFiles(plan.Inputs[0], opts)
	}
	return nil, fmt.Errorf("unknown conversion mode %d", plan.Mode)
}

// ToSpreadsheet reads every translation file in order and writes one
// spreadsheet beside the first of them. Each file's base name is its
// language identifier.
func ToSpreadsheet(inputs []string, opts Options) (Artifact, error) {
	logger := logging.Get("convert")
	defer logging.Start(logger, ModeToSpreadsheet.String())()

	if len(inputs) == 0 {
		return Artifact{}, usageErrorf("No translation files to convert.")
	}

	langs := make([]grid.Language, 0, len(inputs))
	for _, path := range inputs {
		c, ok := codecFor(path)
		if !ok {
			return Artifact{}, usageErrorf("File type is not supported: %s.", filepath.Base(path))
		}

		lang := LanguageOf(path)
		t, err := c.read(path, lang, opts)
		if err != nil {
			return Artifact{}, err
		}
		logger.Info().Str("file", path).Str("lang", lang).Int("keys", t.Len()).Msg("Read translation file")
		langs = append(langs, grid.Language{ID: lang, Tree: t})
	}

	g := grid.Assemble(langs, opts.gridOptions())
	logger.Debug().Int("rows", len(g)-1).Int("languages", len(langs)).Msg("Assembled grid")

	name := opts.OutputName
	if name == "" {
		name = "translations" + SpreadsheetExt
	}
	out := filepath.Join(filepath.Dir(inputs[0]), name)

	err := xlsxfile.WriteFile(out, g, xlsxfile.WriteOptions{
		Sheet:       opts.SheetName,
		ColumnWidth: opts.ColumnWidth,
	})
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Name: name, Path: out}, nil
}

// ToFiles reads the first sheet of the spreadsheet at path and writes one
// translation file per language column beside it.
//
// Output names are the lower-cased, trimmed header identifiers. Identifiers
// that map to the same name overwrite each other in header order; this is
// logged as a warning.
func ToFiles(path string, opts Options) ([]Artifact, error) {
	logger := logging.Get("convert")
	defer logging.Start(logger, ModeToFiles.String())()

	format := opts.OutputFormat
	if format == "" {
		format = "json"
	}
	ext := "." + format
	c, ok := codecFor(ext)
	if !ok {
		return nil, usageErrorf("Output format is not supported: %s.", format)
	}

	g, err := xlsxfile.ReadFile(path, "")
	if err != nil {
		return nil, err
	}
	logger.Info().Str("file", path).Int("rows", len(g)).Msg("Read spreadsheet")

	langs, err := grid.Disassemble(g, opts.gridOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("%s: no language columns found in the header row", path)
	}

	collisions := grid.Collisions(langs, ext)
	names := make([]string, 0, len(collisions))
	for name := range collisions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Warn().Str("file", name).Strs("languages", collisions[name]).
			Msg("Several language columns map to the same file; the last one wins")
	}

	dir := filepath.Dir(path)
	artifacts := make([]Artifact, 0, len(langs))
	for _, l := range langs {
		name := grid.OutputName(l.ID, ext)
		out := filepath.Join(dir, name)
		if err := c.write(out, l.Tree, l.ID, opts); err != nil {
			return artifacts, err
		}
		logger.Debug().Str("file", out).Str("lang", l.ID).Msg("Wrote translation file")
		artifacts = append(artifacts, Artifact{Language: l.ID, Name: name, Path: out})
	}
	return artifacts, nil
}
