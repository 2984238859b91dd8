/*
babel is a Library of Babel: every book of 410 pages, 40 lines to the page
and 80 characters to the line, over an alphabet of 26 letters, space, comma
and full stop, each at a fixed place on a shelf.

Nothing is stored. A book's place is a sequence number, and a multiplicative
cipher modulo 29^1312000 - 1 turns that number into the book's text and back
again. The cipher parameters are generated once (see package params) and all
addresses are only meaningful against the parameters they were made with.

The Library type bundles the pieces most callers need: configuration,
parameters, the content engine, search and a bookmark store for long rooms.
The lower level packages are usable on their own.
*/
package babel

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Redundancy/go-babel/bookmark"
	"github.com/Redundancy/go-babel/config"
	"github.com/Redundancy/go-babel/engine"
	"github.com/Redundancy/go-babel/layout"
	"github.com/Redundancy/go-babel/params"
	"github.com/Redundancy/go-babel/search"
)

type closer interface {
	Close() error
}

/*
Library is an engine, a searcher and a bookmark store over one parameter
set. It is safe for concurrent use.

Identifiers passed to Page and Book may carry a bookmark hash ("@...") in
place of the room.
*/
type Library struct {
	Engine    *engine.Engine
	Searcher  *search.Searcher
	Bookmarks bookmark.Store

	logger  *slog.Logger
	OnClose []closer
}

// Open loads the parameters and bookmark store that cfg names
func Open(cfg *config.Config, logger *slog.Logger) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	set, err := params.Load(cfg.Params)
	if err != nil {
		return nil, err
	}

	var store bookmark.Store
	if cfg.Bookmarks == "" {
		store = bookmark.NewMemoryStore()
	} else {
		if store, err = bookmark.OpenSQLite(cfg.Bookmarks, logger); err != nil {
			return nil, err
		}
	}

	lib, err := New(cfg.Layout, set, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	logger.Debug("library opened",
		"params", cfg.Params,
		"bookmarks", cfg.Bookmarks,
		"pages", cfg.Layout.Pages,
	)

	return lib, nil
}

// New assembles a library from parts already loaded. The library takes
// ownership of store and closes it on Close.
func New(l layout.Layout, set *params.Set, store bookmark.Store, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e, err := engine.New(l, set, engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Library{
		Engine:    e,
		Searcher:  search.New(e, search.WithLogger(logger)),
		Bookmarks: store,
		logger:    logger,
		OnClose: []closer{
			&storeCloser{store},
		},
	}, nil
}

func (lib *Library) Layout() layout.Layout {
	return lib.Engine.Layout()
}

// Page returns one page; a bookmarked room is expanded first
func (lib *Library) Page(ctx context.Context, identifier string) (*engine.PageResult, error) {
	full, err := bookmark.Expand(ctx, lib.Bookmarks, identifier)
	if err != nil {
		return nil, err
	}
	return lib.Engine.GetPage(full)
}

// Book returns the full text of the book holding the identified page
func (lib *Library) Book(ctx context.Context, identifier string) (string, error) {
	full, err := bookmark.Expand(ctx, lib.Bookmarks, identifier)
	if err != nil {
		return "", err
	}
	return lib.Engine.GetBook(full)
}

// Lookup finds the book that starts with text
func (lib *Library) Lookup(text string, page int) (string, error) {
	return lib.Engine.FindAddressForContent(text, page)
}

func (lib *Library) Random() string {
	return lib.Engine.RandomAddress()
}

func (lib *Library) Search(q search.Query) (*search.Result, error) {
	return lib.Searcher.Search(q)
}

// Bookmark resolves a room or a bookmark hash
func (lib *Library) Bookmark(ctx context.Context, roomOrHash string) (bookmark.Bookmark, error) {
	return bookmark.Resolve(ctx, lib.Bookmarks, roomOrHash)
}

// Shorten bookmarks the room of identifier and returns it with the hash in
// place of the room
func (lib *Library) Shorten(ctx context.Context, identifier string) (string, error) {
	return bookmark.Abbreviate(ctx, lib.Bookmarks, identifier)
}

// Close releases the bookmark store. Later calls do nothing.
func (lib *Library) Close() error {
	closers := lib.OnClose
	lib.OnClose = nil

	for _, c := range closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

type storeCloser struct {
	store bookmark.Store
}

// Close - add context to closing a bookmark store
func (s *storeCloser) Close() error {
	err := s.store.Close()
	if err != nil {
		return fmt.Errorf(
			"Could not close bookmark store: %v",
			err,
		)
	}
	return nil
}
