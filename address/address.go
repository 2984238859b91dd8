/*
Package address maps hierarchical library addresses (room, wall, shelf, book,
page) to and from flat 1-based sequence numbers.

The textual identifier is "room.wall.shelf.book.page". The room is an
arbitrary-precision integer written in base 62 with digits 0-9, A-Z, a-z (in
that order, matching GMP); the other four fields are small decimal integers.

The sequence number identifies a book and ignores the page:

	seq = (room-1)·W·S·B + (wall-1)·S·B + (shelf-1)·B + book
*/
package address

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/Redundancy/go-babel/numeral"
)

// RoomDigits is the base-62 digit order used for rooms
const RoomDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// RoomBase writes and reads rooms
var RoomBase = numeral.MustBase(RoomDigits)

const (
	// Fields is the number of dot-separated fields in an identifier
	Fields = 5

	// Separator joins identifier fields
	Separator = "."
)

var (
	ErrOutOfRange          = errors.New("address field out of range")
	ErrMalformedIdentifier = errors.New("malformed identifier")
)

// OutOfRangeError identifies the address field that failed validation
type OutOfRangeError struct {
	Field string
	Value string
	Max   string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf(
		"%v must be between 1 and %v, got %v",
		e.Field,
		ShortenRoom(e.Max),
		ShortenRoom(e.Value),
	)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// MalformedError reports an identifier that could not be parsed
type MalformedError struct {
	Identifier string
	Reason     string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrMalformedIdentifier, abbreviate(e.Identifier), e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedIdentifier
}

// Address is one page of one book in the library
type Address struct {
	Room  *big.Int
	Wall  int
	Shelf int
	Book  int
	Page  int
}

// First is the canonical minimum address, 1.1.1.1.1
func First() Address {
	return Address{Room: big.NewInt(1), Wall: 1, Shelf: 1, Book: 1, Page: 1}
}

// RoomText is the room in base 62
func (a Address) RoomText() string {
	return RoomBase.Format(a.Room)
}

func (a Address) String() string {
	return Join(a.RoomText(), a.Wall, a.Shelf, a.Book, a.Page)
}

// Join builds an identifier from a room already written in base 62
func Join(room string, wall, shelf, book, page int) string {
	return strings.Join(
		[]string{
			room,
			strconv.Itoa(wall),
			strconv.Itoa(shelf),
			strconv.Itoa(book),
			strconv.Itoa(page),
		},
		Separator,
	)
}

// WithPage returns a copy of the address pointing at another page
func (a Address) WithPage(page int) Address {
	a.Room = new(big.Int).Set(a.Room)
	a.Page = page
	return a
}

// Parse splits an identifier into an Address. It only checks syntax; range
// checks happen in Codec.Encode.
func Parse(identifier string) (Address, error) {
	fields := strings.Split(identifier, Separator)

	if len(fields) != Fields {
		return Address{}, &MalformedError{
			Identifier: identifier,
			Reason:     fmt.Sprintf("expected %v fields, got %v", Fields, len(fields)),
		}
	}

	room, err := RoomBase.Parse(fields[0])
	if err != nil {
		return Address{}, &MalformedError{
			Identifier: identifier,
			Reason:     "room: " + err.Error(),
		}
	}

	names := [...]string{"wall", "shelf", "book", "page"}
	var values [4]int

	for i, name := range names {
		f := fields[i+1]

		if f == "" {
			return Address{}, &MalformedError{Identifier: identifier, Reason: name + " is empty"}
		}

		if f[0] < '0' || f[0] > '9' {
			return Address{}, &MalformedError{
				Identifier: identifier,
				Reason:     fmt.Sprintf("%v %q must start with a decimal digit", name, f),
			}
		}

		v, err := strconv.Atoi(f)
		if err != nil {
			return Address{}, &MalformedError{
				Identifier: identifier,
				Reason:     fmt.Sprintf("%v %q is not a decimal integer", name, f),
			}
		}

		values[i] = v
	}

	return Address{
		Room:  room,
		Wall:  values[0],
		Shelf: values[1],
		Book:  values[2],
		Page:  values[3],
	}, nil
}

// ShortenRoom keeps the first and last 8 characters of rooms longer than 16
func ShortenRoom(room string) string {
	if len(room) <= 16 {
		return room
	}
	return room[:8] + "..." + room[len(room)-8:]
}

func abbreviate(identifier string) string {
	if len(identifier) <= 64 {
		return identifier
	}
	return identifier[:30] + "..." + identifier[len(identifier)-30:]
}
