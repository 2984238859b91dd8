/*
Package layout describes the geometry of the library: how many walls a room
has, how many shelves per wall, books per shelf, pages per book, and how a
page is set out in lines of characters.

Default is the library everything is published against. Smaller layouts are
useful in tests, where a book of a few dozen characters exercises the same
arithmetic as one of 1,312,000.
*/
package layout

import (
	"fmt"
	"math/big"

	"github.com/Redundancy/go-babel/alphabet"
)

type Layout struct {
	Walls   int `yaml:"walls"`
	Shelves int `yaml:"shelves"`
	Books   int `yaml:"books"`
	Pages   int `yaml:"pages"`
	Lines   int `yaml:"lines"`
	Chars   int `yaml:"chars"`
}

// Default is the published library: 410 pages of 40 lines of 80 characters
var Default = Layout{
	Walls:   4,
	Shelves: 5,
	Books:   32,
	Pages:   410,
	Lines:   40,
	Chars:   80,
}

func (l Layout) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"walls", l.Walls},
		{"shelves", l.Shelves},
		{"books", l.Books},
		{"pages", l.Pages},
		{"lines", l.Lines},
		{"chars", l.Chars},
	}

	for _, f := range fields {
		if f.value < 1 {
			return fmt.Errorf("layout: %v must be at least 1, got %v", f.name, f.value)
		}
	}

	return nil
}

// PageLength is the number of characters on one page
func (l Layout) PageLength() int {
	return l.Lines * l.Chars
}

// BookLength is the number of characters in one book (L)
func (l Layout) BookLength() int {
	return l.Pages * l.PageLength()
}

// BooksPerRoom is W·S·B
func (l Layout) BooksPerRoom() int64 {
	return int64(l.Walls) * int64(l.Shelves) * int64(l.Books)
}

// BooksPerWall is S·B
func (l Layout) BooksPerWall() int64 {
	return int64(l.Shelves) * int64(l.Books)
}

// UniqueBooks is 29^L, the number of distinct books. It is expensive for
// the default layout; compute it once and keep it.
func (l Layout) UniqueBooks() *big.Int {
	return new(big.Int).Set(alphabet.DigitBase.Pow(l.BookLength()))
}

// MaxRoom is ⌊29^L / (W·S·B)⌋, the largest valid room
func (l Layout) MaxRoom() *big.Int {
	rooms := l.UniqueBooks()
	return rooms.Quo(rooms, big.NewInt(l.BooksPerRoom()))
}
