// Package cliflags defines the flags shared by the root command and its
// subcommands.
package cliflags

import (
	"github.com/indaco/cargosync/internal/config"
	"github.com/indaco/cargosync/internal/versionsync"
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	Manifest = "manifest"
	Lockfile = "lockfile"
	Package  = "package"
	DryRun   = "dry-run"
	Confirm  = "confirm"
	NoColor  = "no-color"
	Format   = "format"
)

// GlobalFlags returns the root flags, defaulting to the loaded configuration.
func GlobalFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        Manifest,
			Aliases:     []string{"m"},
			Usage:       "Path to the manifest holding the top-level version line",
			Value:       cfg.Manifest,
			DefaultText: versionsync.DefaultManifestPath,
		},
		&cli.StringFlag{
			Name:        Lockfile,
			Aliases:     []string{"l"},
			Usage:       "Path to the lock file (skipped when missing)",
			Value:       cfg.Lockfile,
			DefaultText: versionsync.DefaultLockfilePath,
		},
		&cli.StringFlag{
			Name:        Package,
			Aliases:     []string{"p"},
			Usage:       "Lock file package entry to update",
			Value:       cfg.Package,
			DefaultText: versionsync.DefaultPackageName,
		},
		&cli.BoolFlag{
			Name:    DryRun,
			Aliases: []string{"n"},
			Usage:   "Show what would change without writing files",
		},
		&cli.BoolFlag{
			Name:  Confirm,
			Usage: "Ask before writing (ignored when not running in a terminal)",
		},
		&cli.BoolFlag{
			Name:  NoColor,
			Usage: "Disable colored output",
		},
	}
}

// SyncOptions reads the file and package flags into synchronizer options.
func SyncOptions(cmd *cli.Command) versionsync.Options {
	return versionsync.Options{
		ManifestPath: cmd.String(Manifest),
		LockfilePath: cmd.String(Lockfile),
		PackageName:  cmd.String(Package),
		DryRun:       cmd.Bool(DryRun),
	}
}
