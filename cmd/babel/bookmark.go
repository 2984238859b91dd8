package main

import (
	"fmt"

	"github.com/Redundancy/go-babel/bookmark"
	"github.com/urfave/cli/v2"
)

const bookmarkUsage = "babel bookmark <room|@hash>"

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:  "bookmark",
			Usage: "give a room a short name, or look one up",
			Description: `Given a room, prints its bookmark. Given a bookmark, prints the room.
Bookmarks only persist between runs when the configuration names an sqlite
database under "bookmarks".`,
			ArgsUsage: "<room|@hash>",
			Action:    Bookmark,
		},
	)
}

func Bookmark(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("Usage is \"%v\" (invalid number of arguments)", bookmarkUsage)
	}

	lib, _, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	arg := c.Args().Get(0)

	b, err := lib.Bookmark(c.Context, arg)
	if err != nil {
		return err
	}

	if bookmark.IsKey(arg) {
		fmt.Println(b.Room)
	} else {
		fmt.Println(b.Hash)
	}

	return nil
}
