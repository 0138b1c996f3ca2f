package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/presetx/internal/formatter"
	"github.com/desertthunder/presetx/internal/shared"
	"github.com/desertthunder/presetx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PresetsImport creates the presets listed in a JSON export file.
func (r *Runner) PresetsImport(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg("file", cmd.StringArg("file"))
	if err != nil {
		return err
	}
	if r.presets == nil {
		return fmt.Errorf("%w: preset service not initialized", shared.ErrServiceUnavailable)
	}

	presets, err := formatter.ReadJSONExport(path)
	if err != nil {
		return err
	}

	opts := tasks.ImportOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
		DryRun:     cmd.Bool("dry-run"),
	}
	asJSON := cmd.Bool("json")

	r.logger.Info("starting import", "file", path, "count", len(presets), "dry_run", opts.DryRun)
	if !asJSON {
		r.writePlain("Importing %s from %s\n\n", shared.Pluralize(len(presets), "preset"), path)
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if asJSON {
				continue
			}
			switch update.Phase {
			case tasks.Validate, tasks.FetchExisting:
				r.writePlain("%s\n", update.Message)
			case tasks.CreatePresets:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	engine := tasks.NewImportEngine(r.presets, r.logger)
	result, err := engine.Import(ctx, progressCh, presets, opts)
	close(progressCh)
	<-done

	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if asJSON {
		if err := r.writeJSON(result, true); err != nil {
			return err
		}
	} else {
		r.writeImportSummary(result, opts.DryRun)
	}

	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d presets failed", shared.ErrImportFailed, result.Failed, result.Total)
	}
	return nil
}

func (r *Runner) writeImportSummary(result *tasks.ImportResult, dryRun bool) {
	r.writePlain("\n")
	r.writePlainHeader("Import Complete")
	if dryRun {
		r.writePlain("Would create: %d\n", result.Planned)
	} else {
		r.writePlain("Created: %d\n", result.Created)
	}
	r.writePlain("Skipped: %d\n", result.Skipped)
	r.writePlain("Failed: %d\n", result.Failed)

	dropped := 0
	for _, res := range result.Results {
		if res.Status == tasks.StatusCreated {
			dropped += res.SoundsDropped
		}
	}
	if dropped > 0 {
		r.writePlain("\nSounds are not sent on create; %s not imported.\n", shared.Pluralize(dropped, "sound"))
	}

	if result.Failed > 0 {
		r.writePlain("\nFailed presets:\n")
		for _, res := range result.Results {
			if res.Status == tasks.StatusFailed {
				r.writePlain("  - %s: %s\n", res.Name, res.Reason)
			}
		}
	}
}
