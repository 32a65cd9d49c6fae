// Package grid converts a set of per-language translation trees to a single
// table (one row per key path, one column per language) and back.
//
// Row 0 of a Grid is the header: the key column label followed by the
// upper-cased language identifiers. Every other row starts with a key path.
// An empty cell means "not set".
package grid

import (
	"errors"
	"strings"

	"github.com/minios-linux/transheet/tree"
)

// Default option values.
const (
	DefaultKeyHeader   = "Key"
	DefaultPlaceholder = "-"
)

// Grid is a row-major table of cell values.
type Grid [][]string

// Language is one column of the table: an identifier and its tree.
type Language struct {
	ID   string
	Tree *tree.Tree
}

// Options controls how trees and cells are mapped.
type Options struct {
	// Delimiter joins key segments (default ".").
	Delimiter string
	// Placeholder replaces empty leaf values when writing cells (default "-").
	Placeholder string
	// KeyHeader is the label of the key column (default "Key").
	KeyHeader string
}

func (o Options) withDefaults() Options {
	if o.Delimiter == "" {
		o.Delimiter = tree.DefaultDelimiter
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	if o.KeyHeader == "" {
		o.KeyHeader = DefaultKeyHeader
	}
	return o
}

// ErrNoHeader is returned when a grid has no header row.
var ErrNoHeader = errors.New("spreadsheet has no header row")

// ---------------------------------------------------------------------------
// Row allocation
// ---------------------------------------------------------------------------

// RowIndex assigns each key path a row the first time it is seen.
// Rows start at 1; row 0 is the header.
type RowIndex struct {
	keys []string
	rows map[string]int
}

// NewRowIndex returns an empty index.
func NewRowIndex() *RowIndex {
	return &RowIndex{rows: make(map[string]int)}
}

// Add returns the row for path, allocating the next free row on first sight.
func (ri *RowIndex) Add(path string) int {
	if row, ok := ri.rows[path]; ok {
		return row
	}
	ri.keys = append(ri.keys, path)
	row := len(ri.keys)
	ri.rows[path] = row
	return row
}

// Row returns the row assigned to path.
func (ri *RowIndex) Row(path string) (int, bool) {
	row, ok := ri.rows[path]
	return row, ok
}

// Keys returns key paths in row order.
func (ri *RowIndex) Keys() []string {
	out := make([]string, len(ri.keys))
	copy(out, ri.keys)
	return out
}

// Len returns the number of allocated rows, header excluded.
func (ri *RowIndex) Len() int { return len(ri.keys) }

// IndexRows scans flats in order and allocates rows for every key path.
func IndexRows(flats []*tree.Flat) *RowIndex {
	ri := NewRowIndex()
	for _, f := range flats {
		for _, path := range f.Keys() {
			ri.Add(path)
		}
	}
	return ri
}

// ---------------------------------------------------------------------------
// Assemble
// ---------------------------------------------------------------------------

// Assemble flattens every language and lays the values out as a Grid.
// Row order follows the first sighting of each key path across languages in
// the given order. Empty values are written as opts.Placeholder; key paths a
// language does not have leave its cell empty.
func Assemble(langs []Language, opts Options) Grid {
	opts = opts.withDefaults()

	flats := make([]*tree.Flat, len(langs))
	for i, l := range langs {
		flats[i] = tree.Flatten(l.Tree, opts.Delimiter)
	}
	rows := IndexRows(flats)

	width := len(langs) + 1
	g := make(Grid, rows.Len()+1)

	g[0] = make([]string, width)
	g[0][0] = opts.KeyHeader
	for i, l := range langs {
		g[0][i+1] = strings.ToUpper(l.ID)
	}

	for i, path := range rows.Keys() {
		g[i+1] = make([]string, width)
		g[i+1][0] = path
	}

	for col, f := range flats {
		for _, path := range f.Keys() {
			row, _ := rows.Row(path)
			value, _ := f.Get(path)
			if value == "" {
				value = opts.Placeholder
			}
			g[row][col+1] = value
		}
	}

	return g
}

// ---------------------------------------------------------------------------
// Disassemble
// ---------------------------------------------------------------------------

// Disassemble reads one language per header column and rebuilds its tree.
//
// Rows with an empty key cell are skipped, as are empty data cells. Columns
// with a blank header are ignored. Columns sharing an identifier feed the
// same language. Placeholder values are kept as they are.
func Disassemble(g Grid, opts Options) ([]Language, error) {
	opts = opts.withDefaults()
	if len(g) == 0 || len(g[0]) == 0 {
		return nil, ErrNoHeader
	}

	header := g[0]
	var ids []string
	flats := make(map[string]*tree.Flat)
	colLang := make([]string, len(header))

	for col := 1; col < len(header); col++ {
		id := header[col]
		if strings.TrimSpace(id) == "" {
			continue
		}
		colLang[col] = id
		if _, ok := flats[id]; !ok {
			flats[id] = tree.NewFlat()
			ids = append(ids, id)
		}
	}

	for _, row := range g[1:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		path := row[0]
		for col := 1; col < len(row) && col < len(header); col++ {
			id := colLang[col]
			if id == "" || row[col] == "" {
				continue
			}
			flats[id].Set(path, row[col])
		}
	}

	langs := make([]Language, 0, len(ids))
	for _, id := range ids {
		langs = append(langs, Language{
			ID:   id,
			Tree: tree.Unflatten(flats[id], opts.Delimiter),
		})
	}
	return langs, nil
}

// OutputName derives the per-language file name from a header identifier.
func OutputName(id, ext string) string {
	return strings.ToLower(strings.TrimSpace(id)) + ext
}

// Collisions returns, for every output name produced by more than one
// identifier, the identifiers involved in header order.
func Collisions(langs []Language, ext string) map[string][]string {
	seen := make(map[string][]string)
	for _, l := range langs {
		name := OutputName(l.ID, ext)
		seen[name] = append(seen[name], l.ID)
	}
	out := make(map[string][]string)
	for name, ids := range seen {
		if len(ids) > 1 {
			out[name] = ids
		}
	}
	return out
}
