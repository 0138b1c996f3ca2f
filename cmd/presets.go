package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/presetx/internal/formatter"
	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/shared"
	"github.com/urfave/cli/v3"
)

// requireArg trims a positional argument. Empty and whitespace-only values are both
// reported as missing.
func requireArg(label, value string) (string, error) {
	if shared.IsBlank(value) {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, label)
	}
	return strings.TrimSpace(value), nil
}

// requireFlag trims a required flag value and rejects a blank one.
func requireFlag(label, value string) (string, error) {
	if shared.IsBlank(value) {
		return "", fmt.Errorf("%w: %s cannot be blank", shared.ErrInvalidArgument, label)
	}
	return strings.TrimSpace(value), nil
}

// PresetsList prints every preset with its sounds.
func (r *Runner) PresetsList(ctx context.Context, cmd *cli.Command) error {
	presets, err := r.presets.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	r.logger.Debug("listed presets", "count", len(presets))

	if cmd.Bool("json") {
		return r.writeJSON(presets, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Presets (%d)", len(presets)))
	for i, p := range presets {
		r.writePreset(i+1, p)
	}
	return nil
}

// PresetsShow prints the preset called name.
func (r *Runner) PresetsShow(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg("name", cmd.StringArg("name"))
	if err != nil {
		return err
	}

	presets, err := r.presets.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	for _, p := range presets {
		if p.Name != name {
			continue
		}
		if cmd.Bool("json") {
			return r.writeJSON(p, true)
		}
		r.writePreset(0, p)
		return nil
	}

	return fmt.Errorf("%w: %s", shared.ErrPresetNotFound, name)
}

func (r *Runner) writePreset(n int, p models.Preset) {
	prefix := ""
	if n > 0 {
		prefix = fmt.Sprintf("%d. ", n)
	}
	factory := ""
	if p.Factory {
		factory = " [factory]"
	}

	r.writePlain("%s%s (%s, %s)%s\n", prefix, p.Name, p.Type, shared.Pluralize(len(p.Sounds), "sound"), factory)
	for _, s := range p.Sounds {
		r.writePlain("   - %s  %s\n", s.Name, s.URL)
	}
}

// PresetsExport writes the preset list to a file in the requested format.
func (r *Runner) PresetsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	presets, err := r.presets.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	path, err := formatter.WriteExport(presets, format, cmd.String("output"))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.logger.Info("exported presets", "format", format, "path", path, "count", len(presets))
	r.writePlain("✓ Exported %s to %s\n", shared.Pluralize(len(presets), "preset"), path)
	return nil
}

// PresetsAdd creates a preset from --name and --type.
func (r *Runner) PresetsAdd(ctx context.Context, cmd *cli.Command) error {
	name, err := requireFlag("--name", cmd.String("name"))
	if err != nil {
		return err
	}
	kind, err := requireFlag("--type", cmd.String("type"))
	if err != nil {
		return err
	}

	if err := r.presets.AddPreset(ctx, models.Preset{Name: name, Type: kind}); err != nil {
		return fmt.Errorf("failed to add preset: %w", err)
	}

	r.logger.Info("added preset", "name", name, "type", kind)
	r.writePlain("✓ Created preset %q (%s)\n", name, kind)
	return nil
}

// PresetsRename renames a preset.
func (r *Runner) PresetsRename(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg("name", cmd.StringArg("name"))
	if err != nil {
		return err
	}
	newName, err := requireArg("new-name", cmd.StringArg("new-name"))
	if err != nil {
		return err
	}

	if err := r.presets.RenamePreset(ctx, name, newName); err != nil {
		return fmt.Errorf("failed to rename preset: %w", err)
	}

	r.logger.Info("renamed preset", "from", name, "to", newName)
	r.writePlain("✓ Renamed preset %q to %q\n", name, newName)
	return nil
}

// PresetsDelete removes a preset.
func (r *Runner) PresetsDelete(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg("name", cmd.StringArg("name"))
	if err != nil {
		return err
	}

	if err := r.presets.DeletePreset(ctx, name); err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	r.logger.Info("deleted preset", "name", name)
	r.writePlain("✓ Deleted preset %q\n", name)
	return nil
}

// SoundsRename renames a sound inside a preset.
func (r *Runner) SoundsRename(ctx context.Context, cmd *cli.Command) error {
	preset, err := requireArg("preset", cmd.StringArg("preset"))
	if err != nil {
		return err
	}
	sound, err := requireArg("sound", cmd.StringArg("sound"))
	if err != nil {
		return err
	}
	newName, err := requireArg("new-name", cmd.StringArg("new-name"))
	if err != nil {
		return err
	}

	if err := r.presets.RenameSound(ctx, preset, sound, newName); err != nil {
		return fmt.Errorf("failed to rename sound: %w", err)
	}

	r.logger.Info("renamed sound", "preset", preset, "from", sound, "to", newName)
	r.writePlain("✓ Renamed sound %q to %q in %q\n", sound, newName, preset)
	return nil
}

// SoundsDelete removes a sound from a preset.
func (r *Runner) SoundsDelete(ctx context.Context, cmd *cli.Command) error {
	preset, err := requireArg("preset", cmd.StringArg("preset"))
	if err != nil {
		return err
	}
	sound, err := requireArg("sound", cmd.StringArg("sound"))
	if err != nil {
		return err
	}

	if err := r.presets.DeleteSound(ctx, preset, sound); err != nil {
		return fmt.Errorf("failed to delete sound: %w", err)
	}

	r.logger.Info("deleted sound", "preset", preset, "sound", sound)
	r.writePlain("✓ Deleted sound %q from %q\n", sound, preset)
	return nil
}
