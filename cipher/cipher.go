/*
Package cipher implements the multiplicative bijection between book sequence
numbers and book contents.

A sequence number s becomes the numeral (C·s) mod N, written in digit form and
left-padded with zeros to the book length. The reverse direction multiplies
by I, the inverse of C modulo N. This is a permutation, not encryption: anyone
holding the parameters can run it either way.
*/
package cipher

import (
	"fmt"
	"math/big"

	"github.com/Redundancy/go-babel/alphabet"
	"github.com/Redundancy/go-babel/numeral"
	"github.com/Redundancy/go-babel/params"
)

// Cipher is immutable and safe for concurrent use
type Cipher struct {
	set   *params.Set
	width int
}

// New checks that the parameters fit in width digits
func New(set *params.Set, width int) (*Cipher, error) {
	if width < 1 {
		return nil, fmt.Errorf("cipher: width must be positive, got %v", width)
	}

	if err := set.Fits(width); err != nil {
		return nil, err
	}

	return &Cipher{set: set, width: width}, nil
}

// Width is the number of digits in every hash
func (c *Cipher) Width() int {
	return c.width
}

// Forward returns (C·seq) mod N in digit form, exactly Width digits long
func (c *Cipher) Forward(seq *big.Int) (string, error) {
	h := numeral.MulMod(c.set.C, seq, c.set.N)
	return alphabet.DigitBase.FormatWidth(h, c.width)
}

// Inverse reads a Width-digit numeral and returns (X·I) mod N
func (c *Cipher) Inverse(digits string) (*big.Int, error) {
	if len(digits) != c.width {
		return nil, fmt.Errorf(
			"cipher: hash has %v digits, expected %v",
			len(digits),
			c.width,
		)
	}

	x, err := alphabet.DigitBase.Parse(digits)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}

	return numeral.MulMod(x, c.set.I, c.set.N), nil
}
