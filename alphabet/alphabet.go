/*
Package alphabet holds the two fixed symbol tables of the library: the 29
characters that books are written in, and the base-29 digits used to write a
book as a single number ("digit form").

Converting between the two is a pure relabeling, one character at a time. The
n-th content symbol is always the digit with value n.
*/
package alphabet

import (
	"errors"
	"fmt"

	"github.com/Redundancy/go-babel/numeral"
)

const (
	// Symbols is the content alphabet, in alpha index order
	Symbols = "abcdefghijklmnopqrstuvwxyz., "

	// Digits is the digit form of each alpha index; it is the standard
	// lowercase base-29 digit set
	Digits = "0123456789abcdefghijklmnopqrs"

	Size = len(Symbols)

	// Space pads short content out to a full book
	Space byte = ' '

	// MaxDigit is the digit for the largest alpha index
	MaxDigit byte = 's'
)

// ErrInvalidContentCharacter is wrapped by every InvalidCharacterError
var ErrInvalidContentCharacter = errors.New("content can only consist of letters a-z, space, comma and full-stop")

// InvalidCharacterError names the first character outside the alphabet
type InvalidCharacterError struct {
	Char   rune
	Offset int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q at offset %v: %v", e.Char, e.Offset, ErrInvalidContentCharacter)
}

func (e *InvalidCharacterError) Unwrap() error {
	return ErrInvalidContentCharacter
}

// DigitBase is the numeral base for digit form
var DigitBase = numeral.MustBase(Digits)

var (
	symbolToDigit [256]byte
	digitToSymbol [256]byte
	symbolIndex   [256]int8
)

func init() {
	for i := range symbolIndex {
		symbolIndex[i] = -1
	}

	for i := 0; i < Size; i++ {
		symbolToDigit[Symbols[i]] = Digits[i]
		digitToSymbol[Digits[i]] = Symbols[i]
		symbolIndex[Symbols[i]] = int8(i)
	}
}

// Index returns the alpha index of c, or -1 when c is not in the alphabet
func Index(c byte) int {
	return int(symbolIndex[c])
}

// Contains reports whether c is a content symbol
func Contains(c byte) bool {
	return symbolIndex[c] >= 0
}

// Validate checks that every character of s is a content symbol.
// Multi-byte runes are reported whole.
func Validate(s string) error {
	for i := 0; i < len(s); i++ {
		if !Contains(s[i]) {
			return &InvalidCharacterError{Char: runeAt(s, i), Offset: i}
		}
	}
	return nil
}

func runeAt(s string, i int) rune {
	for offset, r := range s {
		if offset >= i {
			return r
		}
	}
	return rune(s[i])
}

// ToDigits relabels content into digit form
func ToDigits(content string) (string, error) {
	out := make([]byte, len(content))

	for i := 0; i < len(content); i++ {
		d := symbolToDigit[content[i]]
		if d == 0 {
			return "", &InvalidCharacterError{Char: runeAt(content, i), Offset: i}
		}
		out[i] = d
	}

	return string(out), nil
}

// FromDigits relabels a digit form numeral back into content
func FromDigits(digits string) (string, error) {
	out := make([]byte, len(digits))

	for i := 0; i < len(digits); i++ {
		s := digitToSymbol[digits[i]]
		if s == 0 {
			return "", fmt.Errorf("alphabet: %q at offset %v is not a base-29 digit", digits[i], i)
		}
		out[i] = s
	}

	return string(out), nil
}

// PadBook right-pads content with spaces up to length, or truncates it to
// the first length characters
func PadBook(content string, length int) string {
	if len(content) >= length {
		return content[:length]
	}

	out := make([]byte, length)
	copy(out, content)

	for i := len(content); i < length; i++ {
		out[i] = Space
	}

	return string(out)
}
