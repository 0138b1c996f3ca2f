// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand writes a starter config file and checks the backend.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml from the built-in template and check the backend",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-check",
				Usage: "Do not contact the backend after writing the config",
			},
		},
		Action: r.Setup,
	}
}

// presetsCommand handles preset operations
func presetsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "presets",
		Aliases: []string{"preset", "p"},
		Usage:   "Preset operations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List presets and their sounds",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PresetsList,
			},
			{
				Name:  "show",
				Usage: "Show one preset",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PresetsShow,
			},
			{
				Name:  "export",
				Usage: "Export presets to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md, txt or json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: presets.{format})",
					},
				},
				Action: r.PresetsExport,
			},
			{
				Name:  "import",
				Usage: "Create presets from a JSON export, skipping names the backend already has",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent requests (max 10)",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Show what would be created without creating anything",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the import result as JSON",
					},
				},
				Action: r.PresetsImport,
			},
			{
				Name:  "add",
				Usage: "Create a preset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Preset name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Preset type, e.g. Drumkit",
						Required: true,
					},
				},
				Action: r.PresetsAdd,
			},
			{
				Name:  "rename",
				Usage: "Rename a preset",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
					&cli.StringArg{Name: "new-name"},
				},
				Action: r.PresetsRename,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a preset",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.PresetsDelete,
			},
		},
	}
}

// soundsCommand handles operations on the sounds inside a preset
func soundsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "sounds",
		Aliases: []string{"sound", "s"},
		Usage:   "Sound operations",
		Commands: []*cli.Command{
			{
				Name:  "rename",
				Usage: "Rename a sound in a preset",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "preset"},
					&cli.StringArg{Name: "sound"},
					&cli.StringArg{Name: "new-name"},
				},
				Action: r.SoundsRename,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a sound from a preset",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "preset"},
					&cli.StringArg{Name: "sound"},
				},
				Action: r.SoundsDelete,
			},
		},
	}
}

// apiCommand handles direct backend calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the preset backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive preset management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for preset management",
		Action:  r.TUI,
	}
}
