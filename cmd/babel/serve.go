package main

import (
	"github.com/Redundancy/go-babel/server"
	"github.com/urfave/cli/v2"
)

func init() {
	app.Commands = append(
		app.Commands,
		&cli.Command{
			Name:   "serve",
			Usage:  "serve the library over HTTP",
			Action: Serve,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "listen",
					Usage: "address to listen on, overriding the configuration",
				},
			},
		},
	)
}

func Serve(c *cli.Context) error {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return err
	}

	lib, err := openWith(cfg, logger)
	if err != nil {
		return err
	}
	defer lib.Close()

	listen := cfg.Server.Listen
	if c.IsSet("listen") {
		listen = c.String("listen")
	}

	ctx, stop := signalContext()
	defer stop()

	return server.New(lib, logger).ListenAndServe(ctx, listen)
}
