package cli

import (
	"context"
	"fmt"

	"github.com/indaco/cargosync/internal/cliflags"
	"github.com/indaco/cargosync/internal/commands/check"
	"github.com/indaco/cargosync/internal/commands/initialize"
	"github.com/indaco/cargosync/internal/commands/set"
	"github.com/indaco/cargosync/internal/commands/show"
	"github.com/indaco/cargosync/internal/config"
	"github.com/indaco/cargosync/internal/printer"
	"github.com/indaco/cargosync/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command.
// Running it with a single version argument performs the sync.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "cargosync",
		Version: fmt.Sprintf("v%s", version.GetVersion()),
		Usage:   "Keep the Cargo.toml and Cargo.lock release version in sync",
		UsageText: `cargosync [options] <version>
   cargosync <command> [options]

A version spelled like a command (show, check, init, set, help) is read as
that command. Use "cargosync set <version>" for such values.`,
		ArgsUsage: "<version>",
		Flags:     cliflags.GlobalFlags(cfg),
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool(cliflags.NoColor))
			return ctx, nil
		},
		Action: set.Action(cfg),
		Commands: []*urfavecli.Command{
			set.Run(cfg),
			show.Run(cfg),
			check.Run(cfg),
			initialize.Run(cfg),
		},
	}
}
