package i18n

import "testing"

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestDetectLanguagePriorityAndNormalization(t *testing.T) {
	t.Run("LANGUAGE has highest priority", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "ru_RU.UTF-8:en_US")
		t.Setenv("LC_ALL", "de_DE.UTF-8")

		if got := detectLanguage(); got != "ru_RU" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "ru_RU")
		}
	})

	t.Run("C and POSIX are skipped", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "C")
		t.Setenv("LC_ALL", "POSIX")
		t.Setenv("LC_MESSAGES", "fr_FR.UTF-8")

		if got := detectLanguage(); got != "fr_FR" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "fr_FR")
		}
	})

	t.Run("falls back to en", func(t *testing.T) {
		clearLocaleEnv(t)
		if got := detectLanguage(); got != "en" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "en")
		}
	})
}

func TestTAndNFallbackWhenUninitialized(t *testing.T) {
	old := po
	po = nil
	t.Cleanup(func() { po = old })

	if got := T("Hello"); got != "Hello" {
		t.Fatalf("T fallback = %q, want %q", got, "Hello")
	}
	if got := T("Output file name is %s", "a.xlsx"); got != "Output file name is a.xlsx" {
		t.Fatalf("T fallback with vars = %q", got)
	}
	if got := N("file", "files", 1); got != "file" {
		t.Fatalf("N singular fallback = %q, want %q", got, "file")
	}
	if got := N("%d file", "%d files", 2, 2); got != "2 files" {
		t.Fatalf("N plural fallback = %q, want %q", got, "2 files")
	}
}

func TestInitLoadsEmbeddedCatalog(t *testing.T) {
	old := po
	t.Cleanup(func() { po = old })

	Init("ru")
	if got := T("File conversion is successful!"); got != "Преобразование файлов выполнено успешно!" {
		t.Fatalf("T(ru) = %q", got)
	}
	if got := T("Output file name is %s", "x.xlsx"); got != "Имя выходного файла: x.xlsx" {
		t.Fatalf("T(ru) with vars = %q", got)
	}

	Init("en")
	if got := T("File conversion is successful!"); got != "File conversion is successful!" {
		t.Fatalf("T(en) = %q, want passthrough", got)
	}
}

func TestLanguageName(t *testing.T) {
	cases := map[string]string{
		"fr":             "français",
		"EN":             "English",
		"":               "",
		"??":             "",
	}
	for id, want := range cases {
		if got := LanguageName(id); got != want {
			t.Errorf("LanguageName(%q) = %q, want %q", id, got, want)
		}
	}

	if got := LanguageName("pt_BR"); got == "" {
		t.Error("LanguageName(pt_BR) should resolve underscore variants")
	}
}
