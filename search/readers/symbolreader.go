package readers

import (
	"io"
	"math/rand"

	"github.com/Redundancy/go-babel/alphabet"
)

// symbolReader never ends; use io.LimitReader or SequenceLimit to bound it
type symbolReader struct {
	rand *rand.Rand
}

// NewSymbolReader produces content symbols drawn uniformly from r.
// r is not safe for concurrent use, and neither is the reader.
func NewSymbolReader(r *rand.Rand) io.Reader {
	return &symbolReader{rand: r}
}

func (r *symbolReader) Read(p []byte) (n int, err error) {
	for i := range p {
		p[i] = alphabet.Symbols[r.rand.Intn(alphabet.Size)]
	}
	return len(p), nil
}
