package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Redundancy/go-babel/search"
	"github.com/urfave/cli/v2"
)

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:    "search",
			Aliases: []string{"c"},
			Usage:   "find the page holding some text",
			Description: `Builds a book around the text and prints where it is. The text comes from
the arguments, from --file, or from stdin when neither is given.

Modes:
  emptybook  the text as page 1 of an otherwise blank book
  empty      the text as one page of a book of random characters (default)
  chars      the text at a random place among random characters
  words      the text at a random place among random english words`,
			ArgsUsage: "[text]",
			Action:    Search,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"f"},
					Usage:   "read the text from a file",
				},
				&cli.IntFlag{
					Name:  "page",
					Usage: "page to place the text on, in the empty and emptybook modes",
				},
				&cli.StringFlag{
					Name:  "mode",
					Value: string(search.DefaultMode),
					Usage: "emptybook, empty, chars or words",
				},
			},
		},
	)
}

func searchText(c *cli.Context) (string, error) {
	if filename := c.String("file"); filename != "" {
		b, err := os.ReadFile(filename)
		return string(b), err
	}

	if c.Args().Len() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}

	b, err := io.ReadAll(os.Stdin)
	return string(b), err
}

func Search(c *cli.Context) error {
	text, err := searchText(c)
	if err != nil {
		return err
	}

	mode, err := search.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	lib, cfg, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	result, err := lib.Search(search.Query{
		Text: text,
		Mode: mode,
		Page: c.Int("page"),
	})
	if err != nil {
		return err
	}

	if !pretty(c) {
		fmt.Println(result.Identifier)
		return nil
	}

	page, err := lib.Page(c.Context, result.Identifier)
	if err != nil {
		return err
	}

	short, err := lib.Shorten(c.Context, result.Identifier)
	if err != nil {
		return err
	}

	fmt.Println(short)
	return printPage(c, os.Stdout, page, cfg.Layout.Chars, result.Highlight)
}
