/*
babel is a command-line front end to the library: read pages, find text,
generate parameters and serve the library over HTTP.
*/
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var app *cli.App = cli.NewApp()

func init() {
	app.Name = "babel"
	app.Usage = "Browse, search and serve the Library of Babel"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "YAML configuration file",
			EnvVars: []string{"BABEL_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "params",
			Usage: "parameter store, overriding the configuration",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "frame pages with line numbers (default when stdout is a terminal)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error, overriding the configuration",
		},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
