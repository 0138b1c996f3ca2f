package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/shared"
	tu "github.com/desertthunder/presetx/internal/testing"
)

func kitBackend(t *testing.T) *tu.FakeBackend {
	t.Helper()
	return tu.NewFakeBackend(t,
		tu.Preset{
			Name: "Kit A",
			Type: "Drumkit",
			Samples: []tu.Sample{
				{Name: "Kick", URL: "https://cdn.example.com/kick.wav"},
				{Name: "Snare", URL: "https://cdn.example.com/snare.wav"},
			},
		},
		tu.Preset{Name: "Pads", Type: "Pads", IsFactoryPresets: true},
	)
}

func TestPresetCommands(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		t.Run("plain", func(t *testing.T) {
			fb := kitBackend(t)
			out, err := runApp(t, fb.URL(), "presets", "list")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			for _, want := range []string{
				"Presets (2)",
				"1. Kit A (Drumkit, 2 sounds)",
				"   - Kick  https://cdn.example.com/kick.wav",
				"2. Pads (Pads, 0 sounds) [factory]",
			} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output, got:\n%s", want, out)
				}
			}
		})

		t.Run("json", func(t *testing.T) {
			fb := kitBackend(t)
			out, err := runApp(t, fb.URL(), "presets", "list", "--json")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var presets []models.Preset
			if err := json.Unmarshal([]byte(out), &presets); err != nil {
				t.Fatalf("expected JSON output, got %v: %s", err, out)
			}
			if len(presets) != 2 || presets[0].Sounds[1].Name != "Snare" {
				t.Errorf("unexpected presets %+v", presets)
			}
		})

		t.Run("backend failure surfaces", func(t *testing.T) {
			fb := kitBackend(t)
			fb.FailOn(http.MethodGet, http.StatusServiceUnavailable)

			_, err := runApp(t, fb.URL(), "presets", "list")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("show", func(t *testing.T) {
		fb := kitBackend(t)
		out, err := runApp(t, fb.URL(), "presets", "show", "Kit A")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Kit A (Drumkit, 2 sounds)") {
			t.Errorf("unexpected output %s", out)
		}

		_, err = runApp(t, fb.URL(), "presets", "show", "Missing")
		if !errors.Is(err, shared.ErrPresetNotFound) {
			t.Errorf("expected ErrPresetNotFound, got %v", err)
		}
	})

	t.Run("export", func(t *testing.T) {
		fb := kitBackend(t)
		path := filepath.Join(t.TempDir(), "kits.csv")

		out, err := runApp(t, fb.URL(), "presets", "export", "--format", "csv", "-o", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Exported 2 presets to "+path) {
			t.Errorf("unexpected output %s", out)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected export file: %v", err)
		}
		if !strings.HasPrefix(string(data), "Preset,Type,Factory,Sound,URL\n") {
			t.Errorf("unexpected CSV %s", data)
		}

		t.Run("unknown format", func(t *testing.T) {
			_, err := runApp(t, fb.URL(), "presets", "export", "--format", "xml")
			if !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	})

	t.Run("add", func(t *testing.T) {
		fb := kitBackend(t)
		out, err := runApp(t, fb.URL(), "presets", "add", "--name", " Kit B ", "--type", "Drumkit")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, `Created preset "Kit B"`) {
			t.Errorf("unexpected output %s", out)
		}

		req := fb.Mutations()[0]
		if req.Path != "/api/preset/addPreset" || req.Body["name"] != "Kit B" {
			t.Errorf("unexpected request %s %v", req.Path, req.Body)
		}

		t.Run("blank flags", func(t *testing.T) {
			for _, args := range [][]string{
				{"--name", "   ", "--type", "Drumkit"},
				{"--name", "Kit C", "--type", " "},
			} {
				before := len(fb.Mutations())
				_, err := runApp(t, fb.URL(), append([]string{"presets", "add"}, args...)...)
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("%v: expected ErrInvalidArgument, got %v", args, err)
				}
				if len(fb.Mutations()) != before {
					t.Errorf("%v: expected no request for blank input", args)
				}
			}
		})
	})

	t.Run("rename", func(t *testing.T) {
		fb := kitBackend(t)
		if _, err := runApp(t, fb.URL(), "presets", "rename", "Kit A", "Kit Z"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if fb.Presets()[0].Name != "Kit Z" {
			t.Errorf("expected rename on backend, got %s", fb.Presets()[0].Name)
		}

		t.Run("missing argument", func(t *testing.T) {
			_, err := runApp(t, fb.URL(), "presets", "rename", "Kit Z")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("blank argument", func(t *testing.T) {
			_, err := runApp(t, fb.URL(), "presets", "rename", " ", "Other")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("unknown preset", func(t *testing.T) {
			_, err := runApp(t, fb.URL(), "presets", "rename", "Missing", "Other")
			if !errors.Is(err, shared.ErrPresetNotFound) || !strings.Contains(err.Error(), "404") {
				t.Errorf("expected 404 ErrPresetNotFound, got %v", err)
			}
		})
	})

	t.Run("delete", func(t *testing.T) {
		fb := kitBackend(t)
		if _, err := runApp(t, fb.URL(), "presets", "delete", "Pads"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(fb.Presets()) != 1 {
			t.Errorf("expected one preset left, got %d", len(fb.Presets()))
		}
	})
}

func TestSoundCommands(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		fb := kitBackend(t)
		if _, err := runApp(t, fb.URL(), "sounds", "rename", "Kit A", "Snare", "Rim"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		req := fb.Mutations()[0]
		if req.Path != "/api/sound/Snare/modifyName" || req.Body["presetName"] != "Kit A" || req.Body["newName"] != "Rim" {
			t.Errorf("unexpected request %s %v", req.Path, req.Body)
		}
	})

	t.Run("delete", func(t *testing.T) {
		fb := kitBackend(t)
		if _, err := runApp(t, fb.URL(), "sounds", "delete", "Kit A", "Kick"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		samples := fb.Presets()[0].Samples
		if len(samples) != 1 || samples[0].Name != "Snare" {
			t.Errorf("expected only Snare left, got %+v", samples)
		}
	})

	t.Run("blank sound", func(t *testing.T) {
		fb := kitBackend(t)
		_, err := runApp(t, fb.URL(), "sounds", "delete", "Kit A", " ")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if len(fb.Mutations()) != 0 {
			t.Error("expected no request for blank input")
		}
	})

	t.Run("unknown sound", func(t *testing.T) {
		fb := kitBackend(t)
		_, err := runApp(t, fb.URL(), "sounds", "rename", "Kit A", "Cowbell", "Bell")
		if !errors.Is(err, shared.ErrSoundNotFound) {
			t.Errorf("expected ErrSoundNotFound, got %v", err)
		}
	})
}

func TestAPIGet(t *testing.T) {
	fb := kitBackend(t)

	out, err := runApp(t, fb.URL(), "api", "get", "/api/presets")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, `"isFactoryPresets": true`) {
		t.Errorf("expected raw backend JSON, got %s", out)
	}

	_, err = runApp(t, fb.URL(), "api", "get", "api/presets")
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSetup(t *testing.T) {
	t.Run("creates config and checks backend", func(t *testing.T) {
		fb := kitBackend(t)
		t.Setenv("PRESETX_BASE_URL", fb.URL())
		path := filepath.Join(t.TempDir(), "config.toml")

		output := &strings.Builder{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(io.Discard)})

		err := runner.app().Run(t.Context(), []string{"presetx", "--config", path, "setup"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		if !strings.Contains(output.String(), "Config written to "+path) {
			t.Errorf("unexpected output %s", output.String())
		}
		if !strings.Contains(output.String(), "is up with 2 presets") {
			t.Errorf("expected backend check, got %s", output.String())
		}
	})

	t.Run("unreachable backend is not an error", func(t *testing.T) {
		fb := kitBackend(t)
		fb.FailOn("", http.StatusInternalServerError)
		t.Setenv("PRESETX_BASE_URL", fb.URL())
		path := writeConfig(t, fb.URL())

		output := &strings.Builder{}
		runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(io.Discard)})

		err := runner.app().Run(t.Context(), []string{"presetx", "--config", path, "setup"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "is not reachable yet") {
			t.Errorf("expected warning, got %s", output.String())
		}
	})
}

func TestRequireArgs(t *testing.T) {
	tests := []struct {
		name  string
		check func(string, string) (string, error)
		in    string
		want  string
		err   error
	}{
		{"arg trimmed", requireArg, "  Kit A ", "Kit A", nil},
		{"arg empty", requireArg, "", "", shared.ErrMissingArgument},
		{"arg blank", requireArg, " \t", "", shared.ErrMissingArgument},
		{"flag trimmed", requireFlag, " Drumkit", "Drumkit", nil},
		{"flag blank", requireFlag, "   ", "", shared.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check("value", tt.in)
			if !errors.Is(err, tt.err) || (tt.err == nil && err != nil) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
