/*
Package search builds whole books around a query and locates them in the
library.

The engine alone only places text at the start of a book. A search builds a
complete book, with the query laid out at a chosen page or offset and the rest
filled according to the mode, so the identifier it returns names the page the
query is actually on.
*/
package search

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Redundancy/go-babel/alphabet"
	"github.com/Redundancy/go-babel/engine"
	"github.com/Redundancy/go-babel/layout"
	"github.com/Redundancy/go-babel/search/readers"
)

//go:embed words.txt
var wordList string

// Words is the embedded list of common english words used by ModeWords
var Words = strings.Fields(wordList)

var (
	ErrQueryTooLong = errors.New("query is longer than a book")
	ErrUnknownMode  = errors.New("unknown search mode")
)

type Mode string

const (
	// ModeEmptyBook lays the query out as page 1 of an otherwise blank book
	ModeEmptyBook Mode = "emptybook"
	// ModeEmpty lays the query out as one page of a book of random symbols
	ModeEmpty Mode = "empty"
	// ModeChars runs the query on from a random offset among random symbols
	ModeChars Mode = "chars"
	// ModeWords runs the query on from a random offset among random words
	ModeWords Mode = "words"

	DefaultMode = ModeEmpty
)

// ParseMode accepts a mode name; the empty string is DefaultMode
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(name)); m {
	case "":
		return DefaultMode, nil
	case ModeEmptyBook, ModeEmpty, ModeChars, ModeWords:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Highlight marks where a query landed. Lines and columns are zero based and
// counted from the first line of Page; the end is exclusive. A query that
// runs over a page break has an EndLine past the last line of the page.
type Highlight struct {
	Page      int `json:"page"`
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

type Query struct {
	Text string
	Mode Mode

	// Page places the query page in ModeEmptyBook and ModeEmpty.
	// Zero means page 1 for ModeEmptyBook and a random page for ModeEmpty.
	Page int
}

type Result struct {
	Identifier string     `json:"ref"`
	Page       int        `json:"page"`
	Highlight  *Highlight `json:"highlight,omitempty"`
}

type Searcher struct {
	engine *engine.Engine
	layout layout.Layout
	words  []string
	logger *slog.Logger

	randLock sync.Mutex
	rand     *rand.Rand
}

type Option func(*Searcher)

func WithRand(r *rand.Rand) Option {
	return func(s *Searcher) {
		s.rand = r
	}
}

// WithWords replaces the embedded word list
func WithWords(words []string) Option {
	return func(s *Searcher) {
		s.words = words
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

func New(e *engine.Engine, opts ...Option) *Searcher {
	s := &Searcher{
		engine: e,
		layout: e.Layout(),
		words:  Words,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return s
}

// Search builds a book for q and returns the identifier of the page holding
// the query
func (s *Searcher) Search(q Query) (*Result, error) {
	start := time.Now()

	book, page, highlight, err := s.Build(q)
	if err != nil {
		return nil, err
	}

	identifier, err := s.engine.FindAddressForContent(book, page)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search complete",
		"mode", q.Mode,
		"length", len(q.Text),
		"page", page,
		"elapsed", time.Since(start),
	)

	return &Result{
		Identifier: identifier,
		Page:       page,
		Highlight:  highlight,
	}, nil
}

// Build returns the full book for q, the page the query is on and, for the
// modes that place the query at an offset, where on that page it starts
func (s *Searcher) Build(q Query) (book string, page int, highlight *Highlight, err error) {
	mode, err := ParseMode(string(q.Mode))
	if err != nil {
		return "", 0, nil, err
	}

	text := normalise(q.Text)
	if text == "" {
		return "", 0, nil, engine.ErrEmptyContent
	}

	if q.Page < 0 || q.Page > s.layout.Pages {
		return "", 0, nil, fmt.Errorf("search: page %v is not between 1 and %v", q.Page, s.layout.Pages)
	}

	s.randLock.Lock()
	defer s.randLock.Unlock()

	switch mode {
	case ModeEmptyBook, ModeEmpty:
		book, page, err = s.pageBook(text, mode, q.Page)
	default:
		book, page, highlight, err = s.offsetBook(text, mode)
	}

	return book, page, highlight, err
}

func normalise(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), "\r", "")
}

// layoutPage fits text to a single page: one line per input line, each cut
// or padded to the line width, anything outside the alphabet shown as a
// space
func layoutPage(l layout.Layout, text string) string {
	var page strings.Builder
	page.Grow(l.PageLength())

	lines := strings.Split(text, "\n")

	for li := 0; li < l.Lines; li++ {
		var line []rune
		if li < len(lines) {
			line = []rune(lines[li])
		}

		for i := 0; i < l.Chars; i++ {
			if i < len(line) && line[i] < 0x80 && alphabet.Contains(byte(line[i])) {
				page.WriteRune(line[i])
			} else {
				page.WriteByte(alphabet.Space)
			}
		}
	}

	return page.String()
}

func (s *Searcher) pageBook(text string, mode Mode, page int) (string, int, error) {
	var base io.Reader

	if mode == ModeEmptyBook {
		if page == 0 {
			page = 1
		}
		base = readers.SpaceReader(s.layout.BookLength())
	} else {
		if page == 0 {
			page = s.rand.Intn(s.layout.Pages) + 1
		}
		base = readers.NewSymbolReader(s.rand)
	}

	offset := (page - 1) * s.layout.PageLength()

	book, err := s.read(readers.InjectedReader(
		int64(offset),
		base,
		strings.NewReader(layoutPage(s.layout, text)),
	))

	return book, page, err
}

func (s *Searcher) offsetBook(text string, mode Mode) (string, int, *Highlight, error) {
	text = strings.ReplaceAll(text, "\n", "")
	length := s.layout.BookLength()

	if len(text) > length {
		return "", 0, nil, fmt.Errorf("%w: %v characters, a book holds %v", ErrQueryTooLong, len(text), length)
	}

	if err := alphabet.Validate(text); err != nil {
		return "", 0, nil, err
	}

	offset := s.rand.Intn(length - len(text) + 1)

	var r io.Reader
	if mode == ModeWords {
		r = readers.SequenceLimit(
			int64(length),
			readers.NewWordReader(s.rand, s.words, offset),
			strings.NewReader(text+" "),
			readers.NewWordReader(s.rand, s.words, length-offset-len(text)-1),
		)
	} else {
		r = readers.InjectedReader(
			int64(offset),
			readers.NewSymbolReader(s.rand),
			strings.NewReader(text),
		)
	}

	book, err := s.read(r)
	if err != nil {
		return "", 0, nil, err
	}

	highlight := highlightAt(s.layout, offset, len(text))
	return book, highlight.Page, highlight, nil
}

// read takes exactly one book from r
func (s *Searcher) read(r io.Reader) (string, error) {
	book := make([]byte, s.layout.BookLength())

	if _, err := io.ReadFull(r, book); err != nil {
		return "", fmt.Errorf("search: building book: %w", err)
	}

	return string(book), nil
}

func highlightAt(l layout.Layout, start, length int) *Highlight {
	pageLength := l.PageLength()
	page := start / pageLength
	offset := start - page*pageLength
	end := offset + length

	return &Highlight{
		Page:      page + 1,
		StartLine: offset / l.Chars,
		StartCol:  offset % l.Chars,
		EndLine:   end / l.Chars,
		EndCol:    end % l.Chars,
	}
}
