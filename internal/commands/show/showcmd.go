// Package show implements the `show` command, which prints the versions
// currently recorded in the manifest and the lock file.
package show

import (
	"context"
	"fmt"

	"github.com/indaco/cargosync/internal/cliflags"
	"github.com/indaco/cargosync/internal/config"
	"github.com/indaco/cargosync/internal/core"
	"github.com/indaco/cargosync/internal/inspect"
	"github.com/urfave/cli/v3"
)

// newFileSystem is replaced in tests.
var newFileSystem = func() core.FileSystem { return core.NewOSFileSystem() }

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the manifest and locked package versions",
		UsageText: "cargosync show [--format text|json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    cliflags.Format,
				Aliases: []string{"f"},
				Usage:   "Output format: text or json",
				Value:   string(inspect.FormatText),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShow(ctx, cmd)
		},
	}
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	report, err := inspect.New(newFileSystem()).Inspect(ctx, cliflags.SyncOptions(cmd))
	if err != nil {
		return err
	}

	out, err := inspect.Render(report, inspect.ParseOutputFormat(cmd.String(cliflags.Format)))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
