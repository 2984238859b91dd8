package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

const bookUsage = "babel book <identifier> [<output>]"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:      "book",
			Usage:     "write out the whole book holding a page",
			ArgsUsage: "<identifier> [<output>]",
			Action:    Book,
		},
	)
}

func Book(c *cli.Context) (err error) {
	if l := c.Args().Len(); l < 1 || l > 2 {
		return fmt.Errorf("Usage is \"%v\" (invalid number of arguments)", bookUsage)
	}

	lib, _, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	book, err := lib.Book(c.Context, c.Args().Get(0))
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout

	if c.Args().Len() == 2 {
		filename := c.Args().Get(1)

		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("Could not create %v: %w", filename, err)
		}

		defer func() {
			if e := f.Close(); err == nil {
				err = e
			}
		}()

		out = f
	}

	_, err = io.WriteString(out, book)
	return err
}
