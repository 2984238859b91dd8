package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "random",
			Aliases: []string{"r"},
			Usage:   "pick a page at random",
			Action:  Random,
		},
	)
}

func Random(c *cli.Context) error {
	lib, cfg, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	identifier := lib.Random()

	if !pretty(c) {
		fmt.Println(identifier)
		return nil
	}

	short, err := lib.Shorten(c.Context, identifier)
	if err != nil {
		return err
	}

	page, err := lib.Page(c.Context, identifier)
	if err != nil {
		return err
	}

	fmt.Println(short)
	return printPage(c, os.Stdout, page, cfg.Layout.Chars, nil)
}
