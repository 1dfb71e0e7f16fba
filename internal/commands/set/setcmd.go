// Package set implements the version rewrite, both as the root action
// (`cargosync <version>`) and as the `set` subcommand.
package set

import (
	"context"
	"fmt"

	"github.com/indaco/cargosync/internal/cliflags"
	"github.com/indaco/cargosync/internal/config"
	"github.com/indaco/cargosync/internal/core"
	"github.com/indaco/cargosync/internal/printer"
	"github.com/indaco/cargosync/internal/tui"
	"github.com/indaco/cargosync/internal/versionsync"
	"github.com/urfave/cli/v3"
)

// newFileSystem is replaced in tests.
var newFileSystem = func() core.FileSystem { return core.NewOSFileSystem() }

// Run returns the "set" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Write <version> into the manifest and the lock file",
		UsageText: "cargosync set <version> [--dry-run] [--confirm]",
		ArgsUsage: "<version>",
		Action:    Action(cfg),
	}
}

// Action returns the action shared by the root command and "set".
func Action(cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() != 1 {
			return versionsync.ErrUsage
		}
		return runSet(ctx, cmd, cfg, cmd.Args().First())
	}
}

func runSet(ctx context.Context, cmd *cli.Command, cfg *config.Config, version string) error {
	if err := versionsync.ValidateVersionArg(version); err != nil {
		return err
	}

	opts := cliflags.SyncOptions(cmd)
	fs := newFileSystem()

	if cmd.Bool(cliflags.Confirm) && !opts.DryRun && tui.IsInteractiveFn() {
		tui.SetTheme(cfg.Theme)
		proceed, err := confirmPlan(ctx, fs, opts, version)
		if err != nil {
			return err
		}
		if !proceed {
			printer.PrintWarning("Aborted, no files were modified.")
			return nil
		}
	}

	syncer := versionsync.New(fs, opts)
	result, err := syncer.Sync(ctx, version)
	if result != nil {
		printResult(result, syncer.Options(), err == nil)
	}
	return err
}

// confirmPlan computes the changes without writing and asks the user.
func confirmPlan(ctx context.Context, fs core.FileSystem, opts versionsync.Options, version string) (bool, error) {
	preview := opts
	preview.DryRun = true

	plan, err := versionsync.New(fs, preview).Sync(ctx, version)
	if err != nil {
		return false, err
	}

	description := fmt.Sprintf("%s: %s → %s", plan.Manifest.Path, plan.Manifest.OldVersion, version)
	if plan.Lockfile != nil {
		description += fmt.Sprintf("\n%s: %s → %s", plan.Lockfile.Path, plan.Lockfile.OldVersion, version)
	}

	return tui.ConfirmFn(fmt.Sprintf("Set version to %s?", version), description)
}

// printResult reports each file. complete is false when the lock file
// update failed after the manifest had been written.
func printResult(result *versionsync.Result, opts versionsync.Options, complete bool) {
	if opts.DryRun {
		printer.PrintFaint("Dry run: no files were modified.")
	}

	printChange(result.Manifest, "")

	if result.Lockfile != nil {
		printChange(*result.Lockfile, opts.PackageName)
		return
	}
	if complete {
		fmt.Printf("  %s %s\n", printer.Faint("-"), printer.Faint(opts.LockfilePath+" not present, skipped"))
	}
}

func printChange(c versionsync.Change, pkg string) {
	name := c.Path
	if pkg != "" {
		name += " " + printer.Faint("("+pkg+")")
	}

	switch {
	case c.Unchanged():
		fmt.Printf("  %s %s %s\n", printer.SuccessBadge("="), name, printer.Faint("already "+c.NewVersion))
	default:
		fmt.Printf("  %s %s %s → %s\n", printer.SuccessBadge("✓"), name, printer.Faint(c.OldVersion), printer.Success(c.NewVersion))
	}
}
