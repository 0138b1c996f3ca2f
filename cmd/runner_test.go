package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/services"
	"github.com/desertthunder/presetx/internal/shared"
	tu "github.com/desertthunder/presetx/internal/testing"
)

// writeConfig writes a config.toml pointing at baseURL and returns its path.
func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[backend]\nbase_url = \"" + baseURL + "\"\ntimeout = \"2s\"\n\n[log]\nlevel = \"error\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// runApp runs the CLI with args against a config file pointing at baseURL.
func runApp(t *testing.T, baseURL string, args ...string) (string, error) {
	t.Helper()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(io.Discard)})

	argv := append([]string{"presetx", "--config", writeConfig(t, baseURL)}, args...)
	err := runner.app().Run(context.Background(), argv)
	return output.String(), err
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			api := services.NewAPIService("http://backend.test", nil)

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				API:        api,
				IsTerminal: func() bool { return true },
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.presets == nil {
				t.Error("expected preset service to be built on api")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if !runner.isTerminal() {
				t.Error("expected terminal check to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.api.BaseURL() != "http://localhost:3000" {
				t.Errorf("expected default base URL, got %s", runner.api.BaseURL())
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("output", func(t *testing.T) {
		presets := []models.Preset{{Name: "Kit A", Type: "Drumkit", Sounds: []models.Sound{}}}

		t.Run("json", func(t *testing.T) {
			for pretty, want := range map[bool]string{
				true:  "[\n  {\n    \"name\": \"Kit A\",\n    \"type\": \"Drumkit\",\n    \"sounds\": []\n  }\n]\n",
				false: `[{"name":"Kit A","type":"Drumkit","sounds":[]}]` + "\n",
			} {
				output := &bytes.Buffer{}
				if err := NewRunner(RunnerOpts{Output: output}).writeJSON(presets, pretty); err != nil {
					t.Fatalf("writeJSON(pretty=%v) error = %v", pretty, err)
				}
				if output.String() != want {
					t.Errorf("writeJSON(pretty=%v) = %q, want %q", pretty, output.String(), want)
				}
			}
		})

		t.Run("plain", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})
			runner.writePlainHeader("Presets (1)")
			runner.writePlain("1. %s (%s)\n", presets[0].Name, presets[0].Type)

			if !strings.HasPrefix(output.String(), "═") || !strings.HasSuffix(output.String(), "1. Kit A (Drumkit)\n") {
				t.Errorf("unexpected plain output %q", output.String())
			}
		})

		t.Run("errors", func(t *testing.T) {
			limited := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			tests := []struct {
				name string
				out  io.Writer
				data any
				want string
			}{
				{"unmarshalable", &bytes.Buffer{}, make(chan int), "failed to marshal JSON"},
				{"write", &tu.FWriter{}, presets, "failed to write output"},
				{"newline", &limited, presets, "failed to write newline"},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					err := NewRunner(RunnerOpts{Output: tt.out}).writeJSON(tt.data, false)
					if err == nil || !strings.Contains(err.Error(), tt.want) {
						t.Errorf("expected %q, got %v", tt.want, err)
					}
				})
			}

			if err := NewRunner(RunnerOpts{Output: &tu.FWriter{}}).writePlain("x"); err == nil {
				t.Error("expected writePlain to surface write errors")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
				continue
			}
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "presets", "sounds", "api", "tui"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("configure", func(t *testing.T) {
		t.Run("loads backend from config file", func(t *testing.T) {
			fb := tu.NewFakeBackend(t)
			runner := NewRunner(RunnerOpts{Output: io.Discard, Logger: shared.NewLogger(io.Discard)})
			path := writeConfig(t, fb.URL())

			err := runner.app().Run(context.Background(), []string{"presetx", "--config", path, "presets", "list"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if runner.api.BaseURL() != fb.URL() {
				t.Errorf("expected base URL %s, got %s", fb.URL(), runner.api.BaseURL())
			}
			if runner.configPath != path {
				t.Errorf("expected configPath %s, got %s", path, runner.configPath)
			}
		})

		t.Run("missing file falls back to defaults and env", func(t *testing.T) {
			fb := tu.NewFakeBackend(t)
			t.Setenv("PRESETX_BASE_URL", fb.URL())
			runner := NewRunner(RunnerOpts{Output: io.Discard, Logger: shared.NewLogger(io.Discard)})

			missing := filepath.Join(t.TempDir(), "missing.toml")
			err := runner.app().Run(context.Background(), []string{"presetx", "--config", missing, "presets", "list"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if runner.api.BaseURL() != fb.URL() {
				t.Errorf("expected env base URL, got %s", runner.api.BaseURL())
			}
		})

		t.Run("invalid config file is an error", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte("[backend\n"), 0644)
			runner := NewRunner(RunnerOpts{Output: io.Discard, Logger: shared.NewLogger(io.Discard)})

			err := runner.app().Run(context.Background(), []string{"presetx", "--config", path, "presets", "list"})
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("TUI", func(t *testing.T) {
		t.Run("refuses without a terminal", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{IsTerminal: func() bool { return false }})

			err := runner.TUI(context.Background(), nil)
			if !errors.Is(err, shared.ErrNotATerminal) {
				t.Errorf("expected ErrNotATerminal, got %v", err)
			}
		})

		t.Run("requires a preset service", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			runner.presets = nil

			err := runner.TUI(context.Background(), nil)
			if !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})
}
