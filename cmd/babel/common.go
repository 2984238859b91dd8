package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	babel "github.com/Redundancy/go-babel"
	"github.com/Redundancy/go-babel/config"
	"github.com/Redundancy/go-babel/engine"
	"github.com/Redundancy/go-babel/render"
	"github.com/Redundancy/go-babel/search"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// loadConfig reads the configuration file and applies the global flags
func loadConfig(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	if c.IsSet("params") {
		cfg.Params = c.String("params")
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

func openLibrary(c *cli.Context) (*babel.Library, *config.Config, error) {
	cfg, logger, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	lib, err := openWith(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return lib, cfg, nil
}

func openWith(cfg *config.Config, logger *slog.Logger) (*babel.Library, error) {
	lib, err := babel.Open(cfg, logger)
	if err != nil {
		return nil, formatOpenError(cfg.Params, err)
	}
	return lib, nil
}

func formatOpenError(paramsPath string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf(
			"Could not find the parameter store %v (run \"babel generate\" first): %v",
			paramsPath,
			err,
		)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf(
			"Could not open %v (permission denied): %v",
			paramsPath,
			err,
		)
	default:
		return err
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// pretty is the --pretty flag, or whether stdout is a terminal when unset
func pretty(c *cli.Context) bool {
	if c.IsSet("pretty") {
		return c.Bool("pretty")
	}
	return isTerminal(os.Stdout)
}

func printPage(c *cli.Context, w io.Writer, page *engine.PageResult, chars int, highlight *search.Highlight) error {
	if !pretty(c) {
		return render.Plain(w, page, chars)
	}

	return render.Page(w, page, render.Options{
		Chars:     chars,
		Color:     isTerminal(os.Stdout),
		Highlight: highlight,
	})
}

// signalContext is cancelled on interrupt or termination
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
