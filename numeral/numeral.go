/*
Package numeral converts between arbitrary-precision integers and positional
numerals written over a fixed digit alphabet.

Book-sized numerals run to more than a million digits, which is far past the
point where digit-at-a-time accumulation (what big.Int.SetString does) stays
cheap. Parse therefore splits the numeral in half recursively and recombines
the halves with a cached power of the radix, so the cost is dominated by a
handful of large multiplications, which Mul hands to an FFT multiplier.
*/
package numeral

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
)

// nativeDigits is the digit order math/big uses for Text and SetString.
const nativeDigits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// numerals at or below this many digits are handed straight to SetString
const leafDigits = 1024

var ErrEmpty = errors.New("numeral: empty input")

// SyntaxError reports a character that is not a digit of the Base
type SyntaxError struct {
	Offset int
	Char   byte
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("numeral: invalid digit %q at offset %v", e.Char, e.Offset)
}

// Base is a radix together with the characters used to write its digits.
// A Base is safe for concurrent use.
type Base struct {
	radix  int
	digits string

	toNative   [256]byte
	fromNative [256]byte

	powerLock sync.Mutex
	powers    map[int]*big.Int
}

// NewBase builds a Base whose radix is len(digits) and whose n-th character
// is the digit with value n.
func NewBase(digits string) (*Base, error) {
	radix := len(digits)

	if radix < 2 || radix > len(nativeDigits) {
		return nil, fmt.Errorf("numeral: radix %v not in [2, %v]", radix, len(nativeDigits))
	}

	b := &Base{
		radix:  radix,
		digits: digits,
		powers: make(map[int]*big.Int),
	}

	for i := 0; i < radix; i++ {
		c := digits[i]
		if b.toNative[c] != 0 {
			return nil, fmt.Errorf("numeral: duplicate digit %q", c)
		}
		b.toNative[c] = nativeDigits[i]
		b.fromNative[nativeDigits[i]] = c
	}

	return b, nil
}

// MustBase is NewBase for package-level tables; it panics on a bad alphabet
func MustBase(digits string) *Base {
	b, err := NewBase(digits)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Base) Radix() int {
	return b.radix
}

func (b *Base) Digits() string {
	return b.digits
}

// Digit returns the character for the digit value v
func (b *Base) Digit(v int) byte {
	return b.digits[v]
}

// Value returns the value of the digit character c, or -1 if c is not a digit
func (b *Base) Value(c byte) int {
	n := b.toNative[c]
	if n == 0 {
		return -1
	}
	for i := 0; i < b.radix; i++ {
		if nativeDigits[i] == n {
			return i
		}
	}
	return -1
}

// Parse reads s as an unsigned numeral in this base.
// Signs, separators and whitespace are all rejected.
func (b *Base) Parse(s string) (*big.Int, error) {
	if len(s) == 0 {
		return nil, ErrEmpty
	}

	native := make([]byte, len(s))

	for i := 0; i < len(s); i++ {
		n := b.toNative[s[i]]
		if n == 0 {
			return nil, &SyntaxError{Offset: i, Char: s[i]}
		}
		native[i] = n
	}

	return b.parse(native), nil
}

func (b *Base) parse(native []byte) *big.Int {
	if len(native) <= leafDigits {
		z, ok := new(big.Int).SetString(string(native), b.radix)
		if !ok {
			// digits were validated by Parse
			panic("numeral: SetString rejected validated digits")
		}
		return z
	}

	// the low half is always leafDigits * 2^k long, which keeps the number of
	// distinct cached powers logarithmic in the input length
	low := leafDigits
	for low*2 < len(native) {
		low *= 2
	}

	hi := b.parse(native[:len(native)-low])
	lo := b.parse(native[len(native)-low:])

	z := Mul(hi, b.Pow(low))
	return z.Add(z, lo)
}

// Pow returns radix^n. The result is cached and shared: callers must not
// modify it.
func (b *Base) Pow(n int) *big.Int {
	b.powerLock.Lock()
	defer b.powerLock.Unlock()

	if p, ok := b.powers[n]; ok {
		return p
	}

	p := new(big.Int).Exp(big.NewInt(int64(b.radix)), big.NewInt(int64(n)), nil)
	b.powers[n] = p
	return p
}

// Format writes the non-negative x in this base without padding.
func (b *Base) Format(x *big.Int) string {
	if x.Sign() < 0 {
		panic("numeral: Format of negative value")
	}

	native := x.Text(b.radix)
	out := make([]byte, len(native))

	for i := 0; i < len(native); i++ {
		out[i] = b.fromNative[native[i]]
	}

	return string(out)
}

// FormatWidth writes x left-padded with the zero digit to exactly width
// characters. It fails when x is negative or needs more than width digits.
func (b *Base) FormatWidth(x *big.Int, width int) (string, error) {
	if x.Sign() < 0 {
		return "", fmt.Errorf("numeral: cannot format negative value")
	}

	native := x.Text(b.radix)

	if len(native) > width {
		return "", fmt.Errorf(
			"numeral: value needs %v digits, more than width %v",
			len(native),
			width,
		)
	}

	out := make([]byte, width)
	padding := width - len(native)

	for i := 0; i < padding; i++ {
		out[i] = b.digits[0]
	}

	for i := 0; i < len(native); i++ {
		out[padding+i] = b.fromNative[native[i]]
	}

	return string(out), nil
}
