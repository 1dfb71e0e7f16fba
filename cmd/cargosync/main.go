package main

import (
	"context"
	"os"

	"github.com/indaco/cargosync/internal/cli"
	"github.com/indaco/cargosync/internal/config"
	"github.com/indaco/cargosync/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.Fatal(err)
		os.Exit(1)
	}
}

// runCLI loads .cargosync.yaml, falling back to the defaults, and runs the
// command tree with args.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	return cli.New(cfg).Run(context.Background(), args)
}
