package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const pageUsage = "babel page <identifier>"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "page",
			Aliases: []string{"i"},
			Usage:   "print the page at an identifier",
			Description: `The identifier is room.wall.shelf.book.page. The room may be given as
a bookmark (@ followed by its hash) made by "babel bookmark" or the server.`,
			ArgsUsage: "<identifier>",
			Action:    Page,
		},
	)
}

func Page(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("Usage is \"%v\" (invalid number of arguments)", pageUsage)
	}

	lib, cfg, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	page, err := lib.Page(c.Context, c.Args().Get(0))
	if err != nil {
		return err
	}

	return printPage(c, os.Stdout, page, cfg.Layout.Chars, nil)
}
