// Package initialize implements the `init` command, which writes a
// .cargosync.yaml holding the effective manifest, lock file and package.
package initialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/indaco/cargosync/internal/cliflags"
	"github.com/indaco/cargosync/internal/config"
	"github.com/indaco/cargosync/internal/core"
	"github.com/indaco/cargosync/internal/printer"
	"github.com/indaco/cargosync/internal/tui"
	"github.com/urfave/cli/v3"
)

// ErrConfigExists is returned when the config file exists and --force is not set.
var ErrConfigExists = errors.New("config file already exists")

// newFileSystem is replaced in tests.
var newFileSystem = func() core.FileSystem { return core.NewOSFileSystem() }

// Run returns the "init" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write " + config.DefaultConfigFile + " with the current settings",
		UsageText: "cargosync init [--force] [--theme name]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
			&cli.StringFlag{
				Name:  "theme",
				Usage: "Prompt theme (" + strings.Join(tui.ValidThemes, ", ") + ")",
				Value: cfg.Theme,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInit(ctx, cmd)
		},
	}
}

func runInit(ctx context.Context, cmd *cli.Command) error {
	theme := cmd.String("theme")
	if theme != "" && !tui.IsValidTheme(theme) {
		return fmt.Errorf("unknown theme %q (valid: %s)", theme, strings.Join(tui.ValidThemes, ", "))
	}

	if !cmd.Bool("force") {
		_, err := newFileSystem().Stat(ctx, config.DefaultConfigFile)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, config.DefaultConfigFile)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("failed to stat %q: %w", config.DefaultConfigFile, err)
		}
	}

	opts := cliflags.SyncOptions(cmd)
	cfg := &config.Config{
		Manifest: opts.ManifestPath,
		Lockfile: opts.LockfilePath,
		Package:  opts.PackageName,
		Theme:    theme,
	}
	cfg.ApplyDefaults()

	if err := config.SaveConfigFn(cfg); err != nil {
		return err
	}

	printer.PrintSuccess("Created " + config.DefaultConfigFile)
	fmt.Printf("  %s %s\n", printer.Faint("manifest"), cfg.Manifest)
	fmt.Printf("  %s %s\n", printer.Faint("lockfile"), cfg.Lockfile)
	fmt.Printf("  %s  %s\n", printer.Faint("package"), cfg.Package)
	return nil
}
