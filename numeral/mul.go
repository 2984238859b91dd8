package numeral

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// Below this many words in the smaller operand, math/big's Karatsuba
// multiply is faster than the FFT.
const fftThreshold = 2048

// Mul returns x*y in a newly allocated Int, using FFT multiplication when
// both operands are large.
func Mul(x, y *big.Int) *big.Int {
	if len(x.Bits()) < fftThreshold || len(y.Bits()) < fftThreshold {
		return new(big.Int).Mul(x, y)
	}
	return bigfft.Mul(x, y)
}

// MulMod returns (x*y) mod m, in [0, m).
func MulMod(x, y, m *big.Int) *big.Int {
	z := Mul(x, y)
	return z.Mod(z, m)
}
