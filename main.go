// transheet converts per-language translation files to one spreadsheet and back.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/minios-linux/transheet/config"
	"github.com/minios-linux/transheet/convert"
	"github.com/minios-linux/transheet/i18n"
	"github.com/minios-linux/transheet/logging"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[0;31m"
	colorGreen   = "\033[0;32m"
	colorYellow  = "\033[1;33m"
	colorBlue    = "\033[0;34m"
	colorGrey    = "\033[0;90m"
	colorMagenta = "\033[1;35m"
)

// useColor is decided once in run from the stderr terminal state.
var useColor = false

// errOut receives log lines; replaced in tests.
var errOut io.Writer = os.Stderr

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

func logInfo(format string, args ...any) {
	fmt.Fprintf(errOut, paint(colorBlue, "[INFO]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(errOut, paint(colorYellow, "[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(errOut, paint(colorRed, "[ERROR]")+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Flags
// ---------------------------------------------------------------------------

type rootFlags struct {
	convert    bool
	configPath string
	format     string
	lang       string
	verbosity  int
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "transheet --convert <path>...",
		Short: "Convert translation files to a spreadsheet and back",
		Long: `transheet converts between per-language translation files and one spreadsheet.

Given two or more translation files (en.json, fr.json, ...) or a directory
containing them, transheet writes translations.xlsx next to the first file:
one row per translation key, one column per language.

Given a single .xlsx file, transheet writes one translation file per language
column next to it (en.json, fr.json, ...).

Supported translation files: .json, .yaml, .yml, .toml, .properties, .arb

Settings are read from .transheet.yaml in the working directory and from
TRANSHEET_* environment variables (also loaded from .env).`,
		Example: `  transheet --convert locales/en.json locales/fr.json
  transheet --convert locales/
  transheet --convert locales/translations.xlsx --format yaml`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			i18n.Init(flags.lang)
			logging.Setup(flags.verbosity, errOut, useColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flags.convert {
				if len(args) > 0 {
					return &convert.UsageError{Msg: fmt.Sprintf("Paths given without --convert: %s", strings.Join(args, " "))}
				}
				return cmd.Help()
			}
			return runConvert(cmd.OutOrStdout(), args, flags)
		},
	}

	root.Flags().BoolVarP(&flags.convert, "convert", "c", false, "Convert the given files or directory")
	root.Flags().StringVar(&flags.configPath, "config", "", "Settings file (default ./"+config.FileName+")")
	root.Flags().StringVar(&flags.format, "format", "", "Output format when splitting a spreadsheet: json, yaml, yml, toml, properties, arb")
	root.PersistentFlags().StringVar(&flags.lang, "lang", "", "Interface language (default from LANGUAGE/LC_ALL/LANG)")
	root.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", "Increase log verbosity (-v, -vv, -vvv)")

	root.AddCommand(newVersionCmd())

	return root
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	errOut = stderr
	if f, ok := stderr.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		logError("%v", err)
		if convert.IsUsageError(err) {
			logInfo("%s", i18n.T("Run 'transheet --help' for usage."))
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "transheet version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// convert
// ---------------------------------------------------------------------------

func runConvert(out io.Writer, args []string, flags rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	plan, err := convert.Resolve(args)
	if err != nil {
		return err
	}

	switch plan.Mode {
	case convert.ModeToSpreadsheet:
		n := len(plan.Inputs)
		logInfo("%s", i18n.N("Converting %d file into a spreadsheet", "Converting %d files into a spreadsheet", n, n))
	case convert.ModeToFiles:
		logInfo("%s", i18n.T("Splitting %s into translation files", filepath.Base(plan.Inputs[0])))
	}

	artifacts, err := convert.Run(plan, convert.Options{
		Delimiter:      cfg.Delimiter,
		Placeholder:    cfg.Placeholder,
		KeyHeader:      cfg.KeyHeader,
		OutputName:     cfg.OutputName,
		SheetName:      cfg.SheetName,
		ColumnWidth:    cfg.ColumnWidth,
		OutputFormat:   cfg.OutputFormat,
		YAMLRootLocale: cfg.YAML.RootLocale,
	})
	if err != nil {
		return err
	}

	printReport(out, artifacts)
	return nil
}

// loadConfig resolves settings: file, then .env and environment, then flags.
func loadConfig(flags rootFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	if err := config.LoadDotEnv("."); err != nil {
		logWarning("%v", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if flags.format != "" {
		cfg.OutputFormat = flags.format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printReport writes three lines per artifact followed by a success line.
func printReport(out io.Writer, artifacts []convert.Artifact) {
	for _, a := range artifacts {
		var title string
		if a.Language == "" {
			title = i18n.T("Output file name is %s", a.Name)
		} else {
			title = i18n.T("Output file name for %s is %s", languageLabel(a.Language), a.Name)
		}
		fmt.Fprintln(out, paint(colorYellow, title))
		fmt.Fprintln(out, paint(colorGrey, i18n.T("Location of the created file is")))
		fmt.Fprintln(out, paint(colorMagenta, a.Path)+"\n")
	}
	fmt.Fprintln(out, paint(colorGreen, i18n.T("File conversion is successful!")))
}

// languageLabel appends the native language name when it is known:
// "FR (français)".
func languageLabel(id string) string {
	if name := i18n.LanguageName(id); name != "" {
		return fmt.Sprintf("%s (%s)", id, name)
	}
	return id
}
