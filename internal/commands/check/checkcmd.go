// Package check implements the `check` command, a CI guard that fails when
// the lock file records a different version than the manifest.
package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/cargosync/internal/cliflags"
	"github.com/indaco/cargosync/internal/config"
	"github.com/indaco/cargosync/internal/core"
	"github.com/indaco/cargosync/internal/inspect"
	"github.com/indaco/cargosync/internal/printer"
	"github.com/urfave/cli/v3"
)

// ErrVersionMismatch is returned when the manifest and lock file disagree.
var ErrVersionMismatch = errors.New("versions are out of sync")

// newFileSystem is replaced in tests.
var newFileSystem = func() core.FileSystem { return core.NewOSFileSystem() }

// Run returns the "check" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Fail when the lock file version differs from the manifest",
		UsageText: "cargosync check",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCheck(ctx, cmd, cfg)
		},
	}
}

func runCheck(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	fs := newFileSystem()
	opts := cliflags.SyncOptions(cmd)

	effective := &config.Config{
		Manifest: opts.ManifestPath,
		Lockfile: opts.LockfilePath,
		Package:  opts.PackageName,
		Theme:    cfg.Theme,
	}
	results, err := config.NewValidator(fs, effective).Validate(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Warning {
			printer.PrintWarning("warning: " + r.Message)
		}
	}
	if config.HasErrors(results) {
		return config.Errors(results)
	}

	report, err := inspect.New(fs).Inspect(ctx, opts)
	if err != nil {
		return err
	}

	if !report.Consistent() {
		return fmt.Errorf("%w: %s has %s but %s has %s for %q",
			ErrVersionMismatch,
			report.ManifestPath, report.ManifestVersion,
			report.LockfilePath, report.LockfileVersion,
			report.Package)
	}

	if !report.LockfilePresent {
		printer.PrintSuccess(fmt.Sprintf("%s is at %s (no %s)", report.ManifestPath, report.ManifestVersion, report.LockfilePath))
		return nil
	}
	printer.PrintSuccess(fmt.Sprintf("%s and %s agree on %s", report.ManifestPath, report.LockfilePath, report.ManifestVersion))
	return nil
}
