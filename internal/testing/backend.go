package testing

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Sample mirrors the backend's sample shape.
type Sample struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Preset mirrors the backend's preset shape.
type Preset struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	IsFactoryPresets bool     `json:"isFactoryPresets,omitempty"`
	Samples          []Sample `json:"samples"`
}

// RecordedRequest is one request seen by a [FakeBackend].
type RecordedRequest struct {
	Method    string
	Path      string // Escaped path as sent on the wire
	Name      string // Decoded {name} route parameter, if any
	Body      map[string]any
	RequestID string
}

// FakeBackend is an in-memory preset backend served over [httptest.Server].
//
// It implements the REST contract closely enough to exercise reloads and records every request.
type FakeBackend struct {
	mu       sync.Mutex
	presets  []Preset
	requests []RecordedRequest
	failures map[string]int
	server   *httptest.Server
}

// NewFakeBackend starts a backend seeded with presets. The server is closed on test cleanup.
func NewFakeBackend(t *testing.T, presets ...Preset) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{presets: presets, failures: map[string]int{}}
	fb.server = httptest.NewServer(fb.routes())
	t.Cleanup(fb.server.Close)
	return fb
}

// URL returns the base URL of the backend.
func (f *FakeBackend) URL() string {
	return f.server.URL
}

// FailOn makes every request with the given method answer with status. An empty method matches all.
func (f *FakeBackend) FailOn(method string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = status
}

// Recover clears all forced failures.
func (f *FakeBackend) Recover() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = map[string]int{}
}

// Requests returns a copy of every request received so far.
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Mutations returns the recorded requests other than GET.
func (f *FakeBackend) Mutations() []RecordedRequest {
	var out []RecordedRequest
	for _, r := range f.Requests() {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

// Presets returns the backend's current state.
func (f *FakeBackend) Presets() []Preset {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Preset, len(f.presets))
	for i, p := range f.presets {
		out[i] = p
		out[i].Samples = append([]Sample(nil), p.Samples...)
	}
	return out
}

// SetPresets replaces the backend's state.
func (f *FakeBackend) SetPresets(presets ...Preset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presets = presets
}

func (f *FakeBackend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(f.record)

	r.Get("/api/presets", f.listPresets)
	r.Put("/api/preset/{name}/modifyName", f.renamePreset)
	r.Put("/api/sound/{name}/modifyName", f.renameSound)
	r.Post("/api/preset/addPreset", f.addPreset)
	r.Delete("/api/preset/{name}", f.deletePreset)
	r.Delete("/api/sound/{name}", f.deleteSound)

	return r
}

// record stores the request and short-circuits forced failures.
func (f *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
			_ = json.Unmarshal(data, &body)
		}

		f.mu.Lock()
		index := len(f.requests)
		f.requests = append(f.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.EscapedPath(),
			Body:      body,
			RequestID: r.Header.Get("X-Request-ID"),
		})
		status, failAll := f.failures[""]
		if s, ok := f.failures[r.Method]; ok {
			status, failAll = s, true
		}
		f.mu.Unlock()

		if failAll {
			http.Error(w, `{"error":"forced failure"}`, status)
			return
		}

		ctx := withRequest(r.Context(), index, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (f *FakeBackend) listPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.Presets())
}

func (f *FakeBackend) renamePreset(w http.ResponseWriter, r *http.Request) {
	name := f.param(r)
	newName, _ := bodyFrom(r.Context())["newName"].(string)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.presets {
		if f.presets[i].Name == name {
			f.presets[i].Name = newName
			writeJSON(w, http.StatusOK, f.presets[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "preset not found"})
}

func (f *FakeBackend) renameSound(w http.ResponseWriter, r *http.Request) {
	name := f.param(r)
	body := bodyFrom(r.Context())
	newName, _ := body["newName"].(string)
	presetName, _ := body["presetName"].(string)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.presets {
		if f.presets[i].Name != presetName {
			continue
		}
		for j := range f.presets[i].Samples {
			if f.presets[i].Samples[j].Name == name {
				f.presets[i].Samples[j].Name = newName
				writeJSON(w, http.StatusOK, f.presets[i])
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "sound not found"})
}

func (f *FakeBackend) addPreset(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r.Context())
	name, _ := body["name"].(string)
	kind, _ := body["type"].(string)

	f.mu.Lock()
	defer f.mu.Unlock()
	p := Preset{Name: name, Type: kind, Samples: []Sample{}}
	f.presets = append(f.presets, p)
	writeJSON(w, http.StatusCreated, p)
}

func (f *FakeBackend) deletePreset(w http.ResponseWriter, r *http.Request) {
	name := f.param(r)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.presets {
		if f.presets[i].Name == name {
			f.presets = append(f.presets[:i], f.presets[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "preset not found"})
}

func (f *FakeBackend) deleteSound(w http.ResponseWriter, r *http.Request) {
	name := f.param(r)
	presetName, _ := bodyFrom(r.Context())["presetName"].(string)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.presets {
		if f.presets[i].Name != presetName {
			continue
		}
		samples := f.presets[i].Samples
		for j := range samples {
			if samples[j].Name == name {
				f.presets[i].Samples = append(samples[:j:j], samples[j+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "sound not found"})
}

// param decodes the {name} route parameter and stores it on the recorded request.
func (f *FakeBackend) param(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}

	if idx := requestFrom(r.Context()).index; idx >= 0 {
		f.mu.Lock()
		f.requests[idx].Name = name
		f.mu.Unlock()
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
