/*
Package params holds the parameter set (N, C, I) behind the library's
cipher, the offline procedure that generates one, and the file formats it is
stored in.

A parameter set is produced once, written out, and loaded read-only by every
process that serves pages. Nothing in this package mutates a Set after it has
been built.
*/
package params

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Redundancy/go-babel/alphabet"
	"github.com/Redundancy/go-babel/numeral"
)

var ErrInvalidParameters = errors.New("invalid parameter set")

// Set is the modulus N, the multiplier C and C's inverse I modulo N
type Set struct {
	N *big.Int
	C *big.Int
	I *big.Int
}

// Validate checks 1 ≤ C < N, 0 ≤ I < N and C·I ≡ 1 (mod N). The last
// condition implies gcd(C, N) = 1.
func (s *Set) Validate() error {
	if s == nil || s.N == nil || s.C == nil || s.I == nil {
		return fmt.Errorf("%w: missing value", ErrInvalidParameters)
	}

	one := big.NewInt(1)

	if s.N.Cmp(one) <= 0 {
		return fmt.Errorf("%w: modulus must be greater than 1", ErrInvalidParameters)
	}

	if s.C.Sign() < 1 || s.C.Cmp(s.N) >= 0 {
		return fmt.Errorf("%w: multiplier must be in [1, N)", ErrInvalidParameters)
	}

	if s.I.Sign() < 0 || s.I.Cmp(s.N) >= 0 {
		return fmt.Errorf("%w: inverse must be in [0, N)", ErrInvalidParameters)
	}

	if numeral.MulMod(s.C, s.I, s.N).Cmp(one) != 0 {
		return fmt.Errorf("%w: C·I mod N is not 1", ErrInvalidParameters)
	}

	return nil
}

// Fits checks that N (and therefore C and I) can be written in width
// base-29 digits
func (s *Set) Fits(width int) error {
	if s == nil || s.N == nil {
		return fmt.Errorf("%w: missing modulus", ErrInvalidParameters)
	}

	if s.N.Cmp(alphabet.DigitBase.Pow(width)) >= 0 {
		return fmt.Errorf(
			"%w: modulus does not fit in %v base-29 digits",
			ErrInvalidParameters,
			width,
		)
	}

	return nil
}

// Digits renders N, C and I in digit form, in that order
func (s *Set) Digits() (n, c, i string) {
	return alphabet.DigitBase.Format(s.N),
		alphabet.DigitBase.Format(s.C),
		alphabet.DigitBase.Format(s.I)
}
