package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/presetx/internal/services"
	"github.com/desertthunder/presetx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the config template to --config and checks that the configured backend answers.
//
// An existing config file is left untouched.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists, leaving it in place", "path", configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writePlain("✓ Config written to %s\n", configPath)

		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load created config: %w", err)
		}
		r.config = config
		r.SetAPI(services.NewAPIServiceFromConfig(config.Backend))
	}

	if cmd.Bool("skip-check") {
		return nil
	}

	r.logger.Info("checking backend", "base_url", r.api.BaseURL())
	presets, err := r.presets.ListPresets(ctx)
	if err != nil {
		r.logger.Warn("backend check failed", "error", err)
		r.writePlainln("Backend at %s is not reachable yet.", r.api.BaseURL())
		r.writePlain("Update [backend] base_url in %s or set PRESETX_BASE_URL.\n", configPath)
		return nil
	}

	r.writePlain("✓ Backend at %s is up with %s\n", r.api.BaseURL(), shared.Pluralize(len(presets), "preset"))
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'presetx presets list' to see what is there\n")
	r.writePlain("2. Run 'presetx tui' to manage presets interactively\n")
	return nil
}
