package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Redundancy/go-babel/params"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
)

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:  "generate",
			Usage: "generate a new parameter set",
			Description: `Computes the cipher parameters for the configured layout and writes them to
the parameter store. Every identifier depends on the parameters: pages found
with one set are elsewhere under another.

The output format follows the file name: ".cbor" is CBOR, anything else is
three lines of base-29 text, and a ".zst" suffix compresses either.`,
			Action: Generate,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "where to write the parameters (default: the configured store)",
				},
				&cli.IntFlag{
					Name:  "max-attempts",
					Usage: "multiplier candidates to try before giving up (default: from configuration)",
				},
			},
		},
	)
}

func Generate(c *cli.Context) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}

	out := cfg.Params
	if c.IsSet("out") {
		out = c.String("out")
	}

	maxAttempts := cfg.Generate.MaxAttempts
	if c.IsSet("max-attempts") {
		maxAttempts = c.Int("max-attempts")
	}

	ctx, stop := signalContext()
	defer stop()

	bar := progressbar.NewOptions(
		maxAttempts,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("searching for a multiplier"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	start := time.Now()
	width := cfg.Layout.BookLength()

	set, err := params.Generate(
		ctx,
		width,
		params.WithMaxAttempts(maxAttempts),
		params.WithLogger(logger),
		params.WithProgress(func(attempt int) {
			bar.Set(attempt)
		}),
	)
	bar.Finish()

	if err != nil {
		return err
	}

	if err := params.Save(out, set); err != nil {
		return err
	}

	info, err := os.Stat(out)
	if err != nil {
		return err
	}

	fmt.Fprintf(
		os.Stderr,
		"Wrote %v (%v) for books of %v characters in %v\n",
		out,
		humanize.Bytes(uint64(info.Size())),
		humanize.Comma(int64(width)),
		time.Since(start).Round(time.Millisecond),
	)

	return nil
}
