package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UsageError reports an invocation that cannot be converted: no path,
// an unsupported file type or an unsupported combination of files.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// IsUsageError reports whether err is or wraps a *UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// Mode is the conversion direction.
type Mode int

const (
	// ModeToSpreadsheet combines translation files into one spreadsheet.
	ModeToSpreadsheet Mode = iota + 1
	// ModeToFiles splits a spreadsheet into one file per language.
	ModeToFiles
)

func (m Mode) String() string {
	switch m {
	case ModeToSpreadsheet:
		return "files-to-spreadsheet"
	case ModeToFiles:
		return "spreadsheet-to-files"
	}
	return "unknown"
}

// Plan is a resolved invocation: the direction and the absolute input paths.
type Plan struct {
	Mode   Mode
	Inputs []string
}

// Resolve turns command-line path arguments into a Plan.
//
// Arguments that do not exist on their own are re-joined with the following
// arguments (separated by single spaces) until they name an existing path,
// which undoes shell word splitting of unquoted paths with spaces.
// Directories expand to the translation files they contain.
func Resolve(args []string) (*Plan, error) {
	if len(args) == 0 {
		return nil, usageErrorf("No file path to convert is given. Specify the file path after the --convert parameter.")
	}

	paths, err := joinSpacedArgs(args)
	if err != nil {
		return nil, err
	}

	var inputs []string
	seen := make(map[string]bool)
	add := func(p string) error {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		if !seen[abs] {
			seen[abs] = true
			inputs = append(inputs, abs)
		}
		return nil
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			if err := add(p); err != nil {
				return nil, err
			}
			continue
		}

		files, err := translationFilesIn(p)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, usageErrorf("Directory %s contains no translation files (%s).", p, strings.Join(FileExtensions(), ", "))
		}
		for _, f := range files {
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}

	return classify(inputs)
}

// joinSpacedArgs re-joins arguments that only exist on disk as one path.
func joinSpacedArgs(args []string) ([]string, error) {
	var out []string
	for i := 0; i < len(args); i++ {
		if exists(args[i]) {
			out = append(out, args[i])
			continue
		}

		joined := args[i]
		found := false
		for j := i + 1; j < len(args); j++ {
			joined += " " + args[j]
			if exists(joined) {
				out = append(out, joined)
				i = j
				found = true
				break
			}
		}
		if !found {
			return nil, usageErrorf("Path does not exist: %s", args[i])
		}
	}
	return out, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// translationFilesIn lists supported translation files in dir, sorted by
// name. Hidden files such as .transheet.yaml are skipped.
func translationFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, ok := codecFor(entry.Name()); ok {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func classify(inputs []string) (*Plan, error) {
	var sheets, files int
	for _, p := range inputs {
		switch {
		case isSpreadsheet(p):
			sheets++
		default:
			if _, ok := codecFor(p); !ok {
				return nil, usageErrorf("File type is not supported: %s. Either use %s or %s files to convert.",
					filepath.Base(p), strings.Join(FileExtensions(), ", "), SpreadsheetExt)
			}
			files++
		}
	}

	switch {
	case sheets == 1 && files == 0:
		return &Plan{Mode: ModeToFiles, Inputs: inputs}, nil
	case sheets == 0 && files >= 2:
		return &Plan{Mode: ModeToSpreadsheet, Inputs: inputs}, nil
	case sheets == 0 && files == 1:
		return nil, usageErrorf("At least two translation files are needed to build a spreadsheet, got %s.", filepath.Base(inputs[0]))
	case sheets > 1:
		return nil, usageErrorf("Only one spreadsheet can be converted at a time.")
	default:
		return nil, usageErrorf("Spreadsheets and translation files cannot be converted together.")
	}
}

// LanguageOf returns the language identifier encoded in a file name
// (the base name without extension).
func LanguageOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
