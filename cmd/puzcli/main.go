// Command puzcli inspects, validates, and unlocks Across Lite .puz files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "puzcli",
		Usage: "Inspect, validate, and unlock Across Lite .puz crossword files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug|info|warn|error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text|json|pretty",
				Value: "pretty",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(),
			unlockCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
