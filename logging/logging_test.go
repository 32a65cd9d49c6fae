package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"negative is warn", -1, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Level(tt.verbosity); got != tt.want {
				t.Errorf("Level(%d) = %v, want %v", tt.verbosity, got, tt.want)
			}
		})
	}
}

func TestSetupAndGet(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	Setup(1, &buf, false)

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("global level = %v, want info", zerolog.GlobalLevel())
	}

	logger := Get("convert")
	logger.Info().Str("file", "en.json").Msg("reading")
	logger.Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, "component=convert") || !strings.Contains(out, "file=en.json") {
		t.Fatalf("missing fields in output: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered at info level: %q", out)
	}
}

func TestStart(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	Setup(2, &buf, false)

	done := Start(Get("test"), "assemble")
	done()

	out := buf.String()
	if !strings.Contains(out, "Operation started") || !strings.Contains(out, "Operation completed") {
		t.Fatalf("unexpected output: %q", out)
	}
}
