package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/crossword-tools/libpuz/pkg/puz"
)

func unlockCmd() *cli.Command {
	return &cli.Command{
		Name:      "unlock",
		Usage:     "Unlock a scrambled .puz solution, trying a code or brute-forcing it",
		ArgsUsage: "<file.puz>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "code",
				Usage: "4-digit unlock code (omit to brute-force)",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"out"},
				Usage:    "Path to write the unlocked .puz file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("%w: missing <file.puz> argument", puz.ErrInvalidArgument)
			}

			reqID := uuid.New().String()
			log := newLogger(cmd).With("request_id", reqID, "command", "unlock", "path", path)

			f, err := openPuzzleFile(path, LoadConfig())
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			log.Diagnostics(path, f.Puzzle.Diagnostics())

			if !f.Puzzle.IsLocked() {
				return fmt.Errorf("%s: %w", path, puz.ErrNotLocked)
			}

			var code int
			if cmd.IsSet("code") {
				code = int(cmd.Int("code"))
				if err := f.Puzzle.Unlock(code); err != nil {
					if errors.Is(err, puz.ErrWrongKey) {
						return fmt.Errorf("code %d did not match: %w", code, err)
					}
					return err
				}
			} else {
				code, err = f.Puzzle.BruteForceUnlock()
				if err != nil {
					return fmt.Errorf("brute-force unlock failed: %w", err)
				}
			}
			log.Info("unlocked", "code", code)

			f.Puzzle.ChecksumsCommit()
			out := f.Puzzle.Save()
			return os.WriteFile(cmd.String("output"), out, 0o644)
		},
	}
}
