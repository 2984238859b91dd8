/*
Package engine is the content engine of the library: it turns identifiers
into pages of text, text back into identifiers, and picks random identifiers.

An Engine combines an address.Codec with a cipher.Cipher for one layout and
one parameter set. Every operation is a pure function of its arguments and
those two values, apart from RandomAddress which draws from the engine's
random source. An Engine is safe for concurrent use.

Each page or lookup materialises a whole book (1,312,000 characters with the
default layout) and a big integer of similar size; they are not cheap calls.
*/
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Redundancy/go-babel/address"
	"github.com/Redundancy/go-babel/alphabet"
	"github.com/Redundancy/go-babel/cipher"
	"github.com/Redundancy/go-babel/layout"
	"github.com/Redundancy/go-babel/params"
)

// ErrEmptyContent is an InvalidContentCharacter failure with nothing to name
var ErrEmptyContent = fmt.Errorf("%w: content is empty", alphabet.ErrInvalidContentCharacter)

// PageResult is one page of a book and where it sits in the library
type PageResult struct {
	Identifier string `json:"identifier"`
	Content    string `json:"content"`
	Room       string `json:"room"`
	RoomShort  string `json:"roomShort"`
	Wall       int    `json:"wall"`
	Shelf      int    `json:"shelf"`
	Book       int    `json:"book"`
	Page       int    `json:"page"`
	Prev       string `json:"prevIdentifier"`
	Next       string `json:"nextIdentifier"`
}

// Lines splits the page content into lines of chars characters
func (r *PageResult) Lines(chars int) []string {
	lines := make([]string, 0, len(r.Content)/chars+1)

	for start := 0; start < len(r.Content); start += chars {
		end := start + chars
		if end > len(r.Content) {
			end = len(r.Content)
		}
		lines = append(lines, r.Content[start:end])
	}

	return lines
}

type Engine struct {
	layout layout.Layout
	codec  *address.Codec
	cipher *cipher.Cipher
	logger *slog.Logger

	uniqueBooks *big.Int

	randLock sync.Mutex
	rand     *rand.Rand
}

type Option func(*Engine)

// WithRand replaces the time-seeded random source used by RandomAddress
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rand = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New builds an engine. The parameter set must already be valid (params.Load
// validates) and must fit in the layout's book length.
func New(l layout.Layout, set *params.Set, opts ...Option) (*Engine, error) {
	codec, err := address.NewCodec(l)
	if err != nil {
		return nil, err
	}

	c, err := cipher.New(set, l.BookLength())
	if err != nil {
		return nil, err
	}

	e := &Engine{
		layout:      l,
		codec:       codec,
		cipher:      c,
		uniqueBooks: l.UniqueBooks(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rand == nil {
		e.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return e, nil
}

func (e *Engine) Layout() layout.Layout {
	return e.layout
}

func (e *Engine) Codec() *address.Codec {
	return e.codec
}

// book renders the full content of the book with sequence number seq
func (e *Engine) book(seq *big.Int) (string, error) {
	hash, err := e.cipher.Forward(seq)
	if err != nil {
		return "", err
	}
	return alphabet.FromDigits(hash)
}

// GetPage returns the page named by identifier, with its neighbours
func (e *Engine) GetPage(identifier string) (*PageResult, error) {
	start := time.Now()

	a, err := address.Parse(identifier)
	if err != nil {
		return nil, err
	}

	seq, page, err := e.codec.Encode(a)
	if err != nil {
		return nil, err
	}

	book, err := e.book(seq)
	if err != nil {
		return nil, err
	}

	pageLength := e.layout.PageLength()
	offset := (page - 1) * pageLength

	// clone so the result does not pin the whole book in memory
	content := strings.Clone(book[offset : offset+pageLength])

	room := a.RoomText()

	result := &PageResult{
		Identifier: address.Join(room, a.Wall, a.Shelf, a.Book, page),
		Content:    content,
		Room:       room,
		RoomShort:  address.ShortenRoom(room),
		Wall:       a.Wall,
		Shelf:      a.Shelf,
		Book:       a.Book,
		Page:       page,
		Next:       e.next(a, room, seq, page),
		Prev:       e.prev(a, room, seq, page),
	}

	e.logger.Debug("page generated",
		"room", result.RoomShort,
		"wall", a.Wall,
		"shelf", a.Shelf,
		"book", a.Book,
		"page", page,
		"elapsed", time.Since(start),
	)

	return result, nil
}

func (e *Engine) next(current address.Address, room string, seq *big.Int, page int) string {
	if page == e.layout.Pages {
		return e.sibling(current, room, new(big.Int).Add(seq, big.NewInt(1)), 1)
	}
	return e.sibling(current, room, seq, page+1)
}

func (e *Engine) prev(current address.Address, room string, seq *big.Int, page int) string {
	if page == 1 {
		return e.sibling(current, room, new(big.Int).Sub(seq, big.NewInt(1)), e.layout.Pages)
	}
	return e.sibling(current, room, seq, page-1)
}

// sibling is the identifier of seq at page. room is the base-62 text of
// current's room; it is reused whenever seq lies in the same room.
func (e *Engine) sibling(current address.Address, room string, seq *big.Int, page int) string {
	a := e.codec.Decode(seq, page)
	if a.Room.Cmp(current.Room) == 0 {
		return address.Join(room, a.Wall, a.Shelf, a.Book, a.Page)
	}
	return a.String()
}

// GetBook returns the full content of the book holding the identified page
func (e *Engine) GetBook(identifier string) (string, error) {
	a, err := address.Parse(identifier)
	if err != nil {
		return "", err
	}

	seq, _, err := e.codec.Encode(a)
	if err != nil {
		return "", err
	}

	return e.book(seq)
}

// FindAddressForContent returns the identifier of the book that begins with
// text, followed by spaces to the end of the book. Text longer than a book
// is truncated. The page field of the result is page as given: the text is
// always placed at the start of the book, not at that page's offset.
func (e *Engine) FindAddressForContent(text string, page int) (string, error) {
	start := time.Now()

	if text == "" {
		return "", ErrEmptyContent
	}

	if err := alphabet.Validate(text); err != nil {
		return "", err
	}

	if page < 1 || page > e.layout.Pages {
		return "", &address.OutOfRangeError{
			Field: "page",
			Value: fmt.Sprint(page),
			Max:   fmt.Sprint(e.layout.Pages),
		}
	}

	digits, err := alphabet.ToDigits(alphabet.PadBook(text, e.layout.BookLength()))
	if err != nil {
		return "", err
	}

	seq, err := e.cipher.Inverse(digits)
	if err != nil {
		return "", err
	}

	identifier := e.codec.Identifier(seq, page)

	e.logger.Debug("content located",
		"length", len(text),
		"page", page,
		"elapsed", time.Since(start),
	)

	return identifier, nil
}

// RandomAddress draws a sequence number uniformly from [1, 29^L] and a page
// uniformly from [1, P]
func (e *Engine) RandomAddress() string {
	e.randLock.Lock()
	u := new(big.Int).Rand(e.rand, e.uniqueBooks)
	p := e.rand.Intn(e.layout.Pages)
	e.randLock.Unlock()

	return e.codec.Identifier(u.Add(u, big.NewInt(1)), p+1)
}
