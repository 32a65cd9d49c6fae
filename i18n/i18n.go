// Package i18n provides internationalization support for transheet itself.
//
// It wraps the gotext library to provide simple T() and N() functions
// for translating transheet's console messages. Translations are embedded
// in the binary via //go:embed and loaded at startup via Init().
//
// Usage:
//
//	i18n.Init("")  // auto-detect from LANGUAGE/LC_ALL/LC_MESSAGES/LANG
//	fmt.Println(i18n.T("Output file name is %s", name))
//	fmt.Println(i18n.N("Converting %d file", "Converting %d files", n, n))
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// locales embeds the translation catalogs.
// Directory structure: locales/{lang}/LC_MESSAGES/transheet.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for transheet.
const domain = "transheet"

// po is the gotext locale object used for translations.
var po *gotext.Locale

// Init initializes the i18n system. If lang is empty, it auto-detects
// from the environment variables LANGUAGE, LC_ALL, LC_MESSAGES, LANG
// (in that order, matching GNU gettext behavior).
//
// Init should be called once at program startup, before any T() or N() calls.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid and formats it with vars. If no translation is
// available the original string is used (standard gettext passthrough).
func T(msgid string, vars ...any) string {
	if po == nil {
		if len(vars) == 0 {
			return msgid
		}
		return fmt.Sprintf(msgid, vars...)
	}
	return po.Get(msgid, vars...)
}

// N translates a string with plural forms. The singular form is used
// when n == 1, the plural form otherwise (exact rules depend on the
// target language's plural formula).
func N(singular, plural string, n int, vars ...any) string {
	if po == nil {
		msg := plural
		if n == 1 {
			msg = singular
		}
		if len(vars) == 0 {
			return msg
		}
		return fmt.Sprintf(msg, vars...)
	}
	return po.GetN(singular, plural, n, vars...)
}

// LanguageName returns the native name of the language identified by id
// ("fr" → "français"), or "" when id is not a known language tag.
func LanguageName(id string) string {
	id = strings.ReplaceAll(strings.TrimSpace(id), "_", "-")
	if id == "" {
		return ""
	}
	tag, err := language.Parse(id)
	if err != nil {
		return ""
	}
	return display.Self.Name(tag)
}

// detectLanguage reads environment variables to determine the user's
// preferred language, following GNU gettext conventions.
func detectLanguage() string {
	// GNU gettext priority: LANGUAGE > LC_ALL > LC_MESSAGES > LANG
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := os.Getenv(env); val != "" {
			// LANGUAGE can be a colon-separated list; take the first
			if env == "LANGUAGE" {
				parts := strings.SplitN(val, ":", 2)
				val = parts[0]
			}
			// Strip encoding suffix (e.g. "ru_RU.UTF-8" -> "ru_RU")
			if idx := strings.IndexByte(val, '.'); idx >= 0 {
				val = val[:idx]
			}
			// "C" and "POSIX" mean no translation.
			if val == "C" || val == "POSIX" || val == "" {
				continue
			}
			return val
		}
	}
	return "en"
}
