package tasks

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/shared"
)

type fakeBackend struct {
	mu       sync.Mutex
	existing []models.Preset
	added    []models.Preset
	listErr  error
	failOn   map[string]error
}

func (f *fakeBackend) ListPresets(context.Context) ([]models.Preset, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.existing, nil
}

func (f *fakeBackend) AddPreset(_ context.Context, p models.Preset) error {
	if err, ok := f.failOn[p.Name]; ok {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, p)
	return nil
}

func (f *fakeBackend) addedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.added))
	for i, p := range f.added {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

var fast = ImportOpts{NumWorkers: 3, RateLimit: 1000}

func TestImport(t *testing.T) {
	t.Run("creates new presets and skips existing", func(t *testing.T) {
		backend := &fakeBackend{existing: []models.Preset{{Name: "Kit A", Type: "Drumkit"}}}
		engine := NewImportEngine(backend, quietLogger())

		input := []models.Preset{
			{Name: "Kit A", Type: "Drumkit"},
			{Name: " Kit B ", Type: "Drumkit", Sounds: []models.Sound{{Name: "Clap", URL: "https://cdn.example.com/clap.wav"}}},
			{Name: "Pads", Type: "Pads"},
			{Name: "Pads", Type: "Pads"},
		}

		result, err := engine.Import(context.Background(), nil, input, fast)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}

		if result.Total != 4 || result.Created != 2 || result.Skipped != 2 || result.Failed != 0 {
			t.Errorf("unexpected summary %+v", result)
		}
		if got := backend.addedNames(); len(got) != 2 || got[0] != "Kit B" || got[1] != "Pads" {
			t.Errorf("unexpected added presets %v", got)
		}

		if result.Results[0].Status != StatusSkipped || result.Results[0].Reason != "already exists" {
			t.Errorf("expected Kit A skipped, got %+v", result.Results[0])
		}
		if result.Results[1].Name != "Kit B" || result.Results[1].Status != StatusCreated {
			t.Errorf("expected trimmed Kit B created, got %+v", result.Results[1])
		}
		if result.Results[1].SoundsDropped != 1 {
			t.Errorf("expected 1 dropped sound, got %d", result.Results[1].SoundsDropped)
		}
		if result.Results[3].Status != StatusSkipped {
			t.Errorf("expected repeated name to be skipped, got %+v", result.Results[3])
		}
	})

	t.Run("invalid entries fail without a request", func(t *testing.T) {
		backend := &fakeBackend{}
		engine := NewImportEngine(backend, quietLogger())

		result, err := engine.Import(context.Background(), nil, []models.Preset{{Name: "  ", Type: "Drumkit"}, {Name: "Kit", Type: ""}}, fast)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if result.Failed != 2 {
			t.Errorf("expected 2 failures, got %d", result.Failed)
		}
		if !errors.Is(result.Results[0].Error, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", result.Results[0].Error)
		}
		if len(backend.addedNames()) != 0 {
			t.Error("expected no presets added")
		}
	})

	t.Run("backend failure is reported per preset", func(t *testing.T) {
		backend := &fakeBackend{failOn: map[string]error{"Bad": shared.ErrAPIRequest}}
		engine := NewImportEngine(backend, quietLogger())

		result, err := engine.Import(context.Background(), nil, []models.Preset{
			{Name: "Good", Type: "Keys"},
			{Name: "Bad", Type: "Keys"},
		}, fast)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if result.Created != 1 || result.Failed != 1 {
			t.Errorf("unexpected summary %+v", result)
		}
		if !errors.Is(result.Results[1].Error, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest for Bad, got %v", result.Results[1].Error)
		}
	})

	t.Run("list failure aborts", func(t *testing.T) {
		backend := &fakeBackend{listErr: shared.ErrAPIRequest}
		engine := NewImportEngine(backend, quietLogger())

		_, err := engine.Import(context.Background(), nil, []models.Preset{{Name: "Kit", Type: "Drumkit"}}, fast)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("dry run creates nothing", func(t *testing.T) {
		backend := &fakeBackend{existing: []models.Preset{{Name: "Kit A", Type: "Drumkit"}}}
		engine := NewImportEngine(backend, quietLogger())

		opts := fast
		opts.DryRun = true
		result, err := engine.Import(context.Background(), nil, []models.Preset{
			{Name: "Kit A", Type: "Drumkit"},
			{Name: "Kit B", Type: "Drumkit"},
		}, opts)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if result.Planned != 1 || result.Skipped != 1 || result.Created != 0 {
			t.Errorf("unexpected summary %+v", result)
		}
		if len(backend.addedNames()) != 0 {
			t.Error("expected dry run to add nothing")
		}
	})

	t.Run("cancelled context fails pending presets", func(t *testing.T) {
		backend := &fakeBackend{}
		engine := NewImportEngine(backend, quietLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := engine.Import(ctx, nil, []models.Preset{{Name: "Kit", Type: "Drumkit"}}, fast)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if result == nil || result.Failed != 1 {
			t.Errorf("expected the preset to fail, got %+v", result)
		}
	})

	t.Run("nil backend", func(t *testing.T) {
		_, err := NewImportEngine(nil, quietLogger()).Import(context.Background(), nil, nil, fast)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("reports progress", func(t *testing.T) {
		backend := &fakeBackend{}
		engine := NewImportEngine(backend, quietLogger())
		prog := make(chan ProgressUpdate, 20)

		_, err := engine.Import(context.Background(), prog, []models.Preset{
			{Name: "One", Type: "Keys"},
			{Name: "Two", Type: "Keys"},
		}, fast)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		close(prog)

		phases := map[Phase]int{}
		for update := range prog {
			phases[update.Phase]++
			if update.Phase.String() == "" {
				t.Errorf("phase %d has no name", update.Phase)
			}
		}
		if phases[Validate] != 1 || phases[FetchExisting] != 2 || phases[CreatePresets] != 2 {
			t.Errorf("unexpected progress %v", phases)
		}
	})

	t.Run("full progress channel does not block", func(t *testing.T) {
		engine := NewImportEngine(&fakeBackend{}, quietLogger())
		prog := make(chan ProgressUpdate)

		if _, err := engine.Import(context.Background(), prog, []models.Preset{{Name: "One", Type: "Keys"}}, fast); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
	})
}
