package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/shared"
	"golang.org/x/time/rate"
)

// Backend is the part of the preset API an import needs.
type Backend interface {
	ListPresets(ctx context.Context) ([]models.Preset, error)
	AddPreset(ctx context.Context, preset models.Preset) error
}

// ImportStatus is the outcome for one preset.
type ImportStatus string

const (
	StatusCreated ImportStatus = "created"
	StatusSkipped ImportStatus = "skipped"
	StatusFailed  ImportStatus = "failed"
	StatusPlanned ImportStatus = "planned" // dry run only
)

// PresetImportResult is the outcome of importing a single preset.
type PresetImportResult struct {
	Name          string       `json:"name"`
	Status        ImportStatus `json:"status"`
	SoundsDropped int          `json:"soundsDropped,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Error         error        `json:"-"`
}

// ImportResult summarizes an import. Results are in input order.
type ImportResult struct {
	Total   int                  `json:"total"`
	Created int                  `json:"created"`
	Skipped int                  `json:"skipped"`
	Failed  int                  `json:"failed"`
	Planned int                  `json:"planned,omitempty"`
	Results []PresetImportResult `json:"results"`
}

// ImportOpts contains configuration for bulk imports.
type ImportOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 10)
	RateLimit  float64 // Requests per second (default: 5)
	DryRun     bool    // Validate and diff against the backend without creating anything
}

// ImportEngine creates presets in bulk.
type ImportEngine struct {
	backend Backend
	logger  *log.Logger
}

type importJob struct {
	index  int
	preset models.Preset
}

type importOutcome struct {
	index  int
	result PresetImportResult
}

// NewImportEngine creates an [ImportEngine] writing through backend.
func NewImportEngine(backend Backend, logger *log.Logger) *ImportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ImportEngine{backend: backend, logger: shared.WithLogger(logger, "component", "import")}
}

// Import creates every preset in presets that the backend does not already have.
//
// Names are matched exactly after trimming. When the input repeats a name, the first entry wins.
// Progress is reported on prog, which may be nil.
func (e *ImportEngine) Import(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	presets []models.Preset,
	opts ImportOpts,
) (*ImportResult, error) {
	if e.backend == nil {
		return nil, fmt.Errorf("%w: backend not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	results := make([]PresetImportResult, len(presets))
	valid := make([]importJob, 0, len(presets))
	invalid := 0
	for i, p := range presets {
		p.Name = strings.TrimSpace(p.Name)
		p.Type = strings.TrimSpace(p.Type)
		results[i] = PresetImportResult{Name: p.Name, SoundsDropped: len(p.Sounds)}

		if shared.IsBlank(p.Name) || shared.IsBlank(p.Type) {
			invalid++
			results[i].Status = StatusFailed
			results[i].Error = fmt.Errorf("%w: name and type are required", shared.ErrInvalidInput)
			results[i].Reason = results[i].Error.Error()
			continue
		}
		valid = append(valid, importJob{index: i, preset: p})
	}
	e.sendProgress(prog, validateUpdate(len(presets), invalid))

	e.sendProgress(prog, fetchExistingUpdate(0, 1))
	existing, err := e.backend.ListPresets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing presets: %w", err)
	}

	seen := make(map[string]struct{}, len(existing)+len(valid))
	for _, p := range existing {
		seen[p.Name] = struct{}{}
	}

	pending := make([]importJob, 0, len(valid))
	for _, job := range valid {
		if _, ok := seen[job.preset.Name]; ok {
			results[job.index].Status = StatusSkipped
			results[job.index].Reason = "already exists"
			continue
		}
		seen[job.preset.Name] = struct{}{}
		pending = append(pending, job)
	}
	e.sendProgress(prog, existingFoundUpdate(len(existing), len(valid)-len(pending)))

	if opts.DryRun {
		for _, job := range pending {
			results[job.index].Status = StatusPlanned
		}
		return summarize(results), nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan importJob, len(pending))
	outcomes := make(chan importOutcome, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.importWorker(ctx, &wg, limiter, jobs, outcomes)
	}

	for _, job := range pending {
		jobs <- job
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	completed := 0
	for out := range outcomes {
		completed++
		results[out.index] = out.result
		if out.result.Status == StatusCreated {
			e.sendProgress(prog, presetCreatedUpdate(completed, len(pending), out.result))
		} else {
			e.logger.Error("import failed", "preset", out.result.Name, "error", out.result.Error)
			e.sendProgress(prog, presetFailedUpdate(completed, len(pending), out.result))
		}
	}

	summary := summarize(results)
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// importWorker is a worker goroutine that creates presets from the jobs channel.
//
// Every job produces exactly one outcome, even after ctx is done.
func (e *ImportEngine) importWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan importJob,
	outcomes chan<- importOutcome,
) {
	defer wg.Done()

	for job := range jobs {
		res := PresetImportResult{Name: job.preset.Name, SoundsDropped: len(job.preset.Sounds)}

		err := limiter.Wait(ctx)
		if err == nil {
			err = e.backend.AddPreset(ctx, job.preset)
		}

		if err != nil {
			res.Status = StatusFailed
			res.Error = err
			res.Reason = err.Error()
		} else {
			res.Status = StatusCreated
		}
		outcomes <- importOutcome{index: job.index, result: res}
	}
}

func summarize(results []PresetImportResult) *ImportResult {
	summary := &ImportResult{Total: len(results), Results: results}
	for _, r := range results {
		switch r.Status {
		case StatusCreated:
			summary.Created++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
		case StatusPlanned:
			summary.Planned++
		}
	}
	return summary
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ImportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
