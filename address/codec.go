package address

import (
	"math/big"
	"strconv"

	"github.com/Redundancy/go-babel/layout"
)

// Codec converts between addresses and sequence numbers for one layout.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	layout  layout.Layout
	roomMax *big.Int

	booksPerRoom  *big.Int
	booksPerWall  *big.Int
	booksPerShelf *big.Int
}

// NewCodec prepares a codec. Working out the largest room raises 29 to the
// book length, so codecs should be built once and shared.
func NewCodec(l layout.Layout) (*Codec, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	return &Codec{
		layout:        l,
		roomMax:       l.MaxRoom(),
		booksPerRoom:  big.NewInt(l.BooksPerRoom()),
		booksPerWall:  big.NewInt(l.BooksPerWall()),
		booksPerShelf: big.NewInt(int64(l.Books)),
	}, nil
}

func (c *Codec) Layout() layout.Layout {
	return c.layout
}

// RoomMax returns a copy of the largest valid room
func (c *Codec) RoomMax() *big.Int {
	return new(big.Int).Set(c.roomMax)
}

// Validate checks each field of the address against the layout, in the
// order room, wall, shelf, book, page.
func (c *Codec) Validate(a Address) error {
	if a.Room == nil || a.Room.Sign() < 1 {
		value := "0"
		if a.Room != nil {
			value = a.Room.String()
		}
		return &OutOfRangeError{Field: "room", Value: value, Max: RoomBase.Format(c.roomMax)}
	}

	if a.Room.Cmp(c.roomMax) > 0 {
		return &OutOfRangeError{
			Field: "room",
			Value: a.RoomText(),
			Max:   RoomBase.Format(c.roomMax),
		}
	}

	checks := []struct {
		field string
		value int
		max   int
	}{
		{"wall", a.Wall, c.layout.Walls},
		{"shelf", a.Shelf, c.layout.Shelves},
		{"book", a.Book, c.layout.Books},
		{"page", a.Page, c.layout.Pages},
	}

	for _, check := range checks {
		if check.value < 1 || check.value > check.max {
			return &OutOfRangeError{
				Field: check.field,
				Value: strconv.Itoa(check.value),
				Max:   strconv.Itoa(check.max),
			}
		}
	}

	return nil
}

// Encode validates the address and returns its sequence number along with
// the unchanged page.
func (c *Codec) Encode(a Address) (seq *big.Int, page int, err error) {
	if err = c.Validate(a); err != nil {
		return nil, 0, err
	}

	seq = new(big.Int).Sub(a.Room, big.NewInt(1))
	seq.Mul(seq, c.booksPerRoom)

	offset := int64(a.Wall-1)*c.layout.BooksPerWall() +
		int64(a.Shelf-1)*int64(c.layout.Books) +
		int64(a.Book)

	seq.Add(seq, big.NewInt(offset))

	return seq, a.Page, nil
}

// Decode performs the mixed-radix decomposition of a 1-based sequence
// number. Anything below 1 decodes to the first address, 1.1.1.1.1,
// whatever page was asked for. seq is not modified.
func (c *Codec) Decode(seq *big.Int, page int) Address {
	if seq.Sign() < 1 {
		return First()
	}

	n := new(big.Int).Sub(seq, big.NewInt(1))

	room := new(big.Int)
	wall := new(big.Int)
	shelf := new(big.Int)

	room.QuoRem(n, c.booksPerRoom, n)
	wall.QuoRem(n, c.booksPerWall, n)
	shelf.QuoRem(n, c.booksPerShelf, n)

	return Address{
		Room:  room.Add(room, big.NewInt(1)),
		Wall:  int(wall.Int64()) + 1,
		Shelf: int(shelf.Int64()) + 1,
		Book:  int(n.Int64()) + 1,
		Page:  page,
	}
}

// Identifier is Decode rendered as text
func (c *Codec) Identifier(seq *big.Int, page int) string {
	return c.Decode(seq, page).String()
}

// ParseAndEncode is Parse followed by Encode
func (c *Codec) ParseAndEncode(identifier string) (seq *big.Int, page int, err error) {
	a, err := Parse(identifier)
	if err != nil {
		return nil, 0, err
	}
	return c.Encode(a)
}
