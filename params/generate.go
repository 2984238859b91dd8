package params

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"math/rand"
	"time"

	"github.com/Redundancy/go-babel/alphabet"
)

// DefaultMaxAttempts bounds the coprimality search.
//
// N = 29^L - 1 is divisible by 28 and by 29^d - 1 for every divisor d of L,
// so a random C is coprime to it with probability roughly ∏(1 - 1/p) over
// N's small prime factors, a constant well above 1/10. Each failed attempt
// is independent enough that thousands of failures in a row do not happen in
// practice, but nothing proves the loop terminates, hence the cap.
const DefaultMaxAttempts = 4096

// sieveLimit bounds the primes tried against N before a full GCD
const sieveLimit = 1 << 12

var ErrGenerationExhausted = errors.New("no multiplier coprime to the modulus found within the attempt budget")

type generateOptions struct {
	rand        *rand.Rand
	maxAttempts int
	progress    func(attempt int)
	logger      *slog.Logger
}

type GenerateOption func(*generateOptions)

// WithRand sets the source of the random starting multiplier
func WithRand(r *rand.Rand) GenerateOption {
	return func(o *generateOptions) {
		o.rand = r
	}
}

// WithMaxAttempts caps the number of candidates tested
func WithMaxAttempts(n int) GenerateOption {
	return func(o *generateOptions) {
		o.maxAttempts = n
	}
}

// WithProgress is called before each candidate is tested
func WithProgress(f func(attempt int)) GenerateOption {
	return func(o *generateOptions) {
		o.progress = f
	}
}

func WithLogger(logger *slog.Logger) GenerateOption {
	return func(o *generateOptions) {
		o.logger = logger
	}
}

// Generate computes a fresh parameter set for books of width characters.
//
// N is the largest width-digit base-29 numeral. The starting candidate for C
// has a leading digit of 's' followed by width-1 random digits; while C shares
// a factor with N it is decremented. Once coprime, the extended Euclidean
// algorithm gives N·x + C·y = 1, so I = y mod N.
//
// A GCD of two book-length numbers is quadratic in the width, so candidates
// divisible by one of N's prime factors below sieveLimit are rejected by
// trial division first.
func Generate(ctx context.Context, width int, opts ...GenerateOption) (*Set, error) {
	o := generateOptions{
		maxAttempts: DefaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if width < 1 {
		return nil, fmt.Errorf("params: width must be positive, got %v", width)
	}

	if o.maxAttempts < 1 {
		return nil, fmt.Errorf("params: max attempts must be positive, got %v", o.maxAttempts)
	}

	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	n := new(big.Int).Sub(alphabet.DigitBase.Pow(width), big.NewInt(1))

	c, err := startingMultiplier(o.rand, width)
	if err != nil {
		return nil, err
	}

	factors := smallFactors(n)
	o.logger.Debug("modulus small factors", "count", len(factors))

	one := big.NewInt(1)
	g := new(big.Int)

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if o.progress != nil {
			o.progress(attempt)
		}

		if c.Sign() < 1 {
			break
		}

		if sharesFactor(c, factors, g) {
			o.logger.Debug("candidate multiplier shares a small factor", "attempt", attempt)
			c.Sub(c, one)
			continue
		}

		if g.GCD(nil, nil, n, c).Cmp(one) != 0 {
			o.logger.Debug("candidate multiplier not coprime",
				"attempt", attempt,
				"gcd_bits", g.BitLen(),
			)
			c.Sub(c, one)
			continue
		}

		y := new(big.Int)
		g.GCD(nil, y, n, c)

		// Mod is Euclidean, so a negative y lands in [0, N)
		inverse := y.Mod(y, n)

		set := &Set{N: n, C: c, I: inverse}
		if err := set.Validate(); err != nil {
			return nil, err
		}

		o.logger.Info("parameters generated",
			"width", width,
			"attempts", attempt,
			"modulus_bits", n.BitLen(),
		)

		return set, nil
	}

	return nil, fmt.Errorf("params: %w (%v attempts)", ErrGenerationExhausted, o.maxAttempts)
}

func startingMultiplier(r *rand.Rand, width int) (*big.Int, error) {
	digits := make([]byte, width)
	digits[0] = alphabet.MaxDigit

	for i := 1; i < width; i++ {
		digits[i] = alphabet.Digits[r.Intn(alphabet.Size)]
	}

	return alphabet.DigitBase.Parse(string(digits))
}

// smallFactors returns the primes below sieveLimit that divide n
func smallFactors(n *big.Int) []*big.Int {
	var factors []*big.Int

	composite := make([]bool, sieveLimit)
	r := new(big.Int)

	for p := 2; p < sieveLimit; p++ {
		if composite[p] {
			continue
		}

		for m := p * p; m < sieveLimit; m += p {
			composite[m] = true
		}

		prime := big.NewInt(int64(p))
		if r.Mod(n, prime).Sign() == 0 {
			factors = append(factors, prime)
		}
	}

	return factors
}

// sharesFactor reports whether any of factors divides c. scratch is
// overwritten.
func sharesFactor(c *big.Int, factors []*big.Int, scratch *big.Int) bool {
	for _, p := range factors {
		if scratch.Mod(c, p).Sign() == 0 {
			return true
		}
	}
	return false
}
