package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	goccyjson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/crossword-tools/libpuz/internal/logger"
	"github.com/crossword-tools/libpuz/pkg/puz"
)

const defaultSeparator = "myuniquelibpuzseparator"

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Load a .puz file, check its checksums, and print its fields",
		ArgsUsage: "<file.puz>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "separator",
				Usage: "Field separator for the default output mode",
				Value: defaultSeparator,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the parsed puzzle as JSON instead of separator-delimited fields",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("%w: missing <file.puz> argument", puz.ErrInvalidArgument)
			}

			cfg := LoadConfig()
			separator := cmd.String("separator")
			applyInspectConfig(cmd, cfg, &separator)

			reqID := uuid.New().String()
			log := newLogger(cmd).With("request_id", reqID, "command", "inspect", "path", path)

			f, err := openPuzzleFile(path, cfg)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			log.Diagnostics(path, f.Puzzle.Diagnostics())

			mismatches := f.Puzzle.ChecksumsCheck()
			if mismatches > 0 {
				log.Warn("checksum mismatches detected", "count", mismatches)
				return fmt.Errorf("%s: %d checksum mismatch(es): %w", path, mismatches, puz.ErrChecksumMismatch)
			}

			if cmd.Bool("json") {
				return printJSON(f.Puzzle)
			}
			printSeparated(f.Puzzle, separator)
			return nil
		},
	}
}

func printSeparated(p *puz.Puzzle, sep string) {
	fmt.Print(sep)
	fmt.Print(string(p.Title()))
	fmt.Print(sep)
	fmt.Print(string(p.Author()))
	fmt.Print(sep)
	fmt.Print(string(p.Notes()))
	fmt.Print(sep)
	fmt.Print(p.Width())
	fmt.Print(sep)
	fmt.Print(p.Height())
	fmt.Print(sep)
	fmt.Print(string(p.Grid()))
	fmt.Print(sep)
	fmt.Print(string(p.Solution()))
	for i := 0; i < p.ClueCount(); i++ {
		clue, _ := p.Clue(i)
		fmt.Print(sep)
		fmt.Print(string(clue))
	}
}

type inspectJSON struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Notes     string   `json:"notes"`
	Width     uint8    `json:"width"`
	Height    uint8    `json:"height"`
	Grid      string   `json:"grid"`
	Solution  string   `json:"solution"`
	Clues     []string `json:"clues"`
	Locked    bool     `json:"locked"`
	Checksums int      `json:"checksum_mismatches"`
}

func printJSON(p *puz.Puzzle) error {
	clues := make([]string, p.ClueCount())
	for i := range clues {
		c, _ := p.Clue(i)
		clues[i] = string(c)
	}
	out := inspectJSON{
		Title:     string(p.Title()),
		Author:    string(p.Author()),
		Notes:     string(p.Notes()),
		Width:     p.Width(),
		Height:    p.Height(),
		Grid:      string(p.Grid()),
		Solution:  string(p.Solution()),
		Clues:     clues,
		Locked:    p.IsLocked(),
		Checksums: p.ChecksumsCheck(),
	}
	enc := goccyjson.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func newLogger(cmd *cli.Command) logger.Logger {
	cfg := LoadConfig()
	levelName := cmd.Root().String("log-level")
	if cfg.LogLevel != "" && !cmd.Root().IsSet("log-level") {
		levelName = cfg.LogLevel
	}
	format := cmd.Root().String("log-format")
	if cfg.LogFormat != "" && !cmd.Root().IsSet("log-format") {
		format = cfg.LogFormat
	}
	level := logger.ParseLevel(levelName)
	switch format {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "text":
		return logger.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	default:
		return logger.Pretty(os.Stderr, level)
	}
}
