package readers

import (
	"io"
	"math/rand"
	"sort"
)

// wordReader fills exactly length bytes with random words, each followed by
// a space. Words that would overrun the length are never picked, so a
// stretch ends in a short word or in spaces rather than half a word.
type wordReader struct {
	rand      *rand.Rand
	words     []string
	remaining int
	pending   []byte
}

// NewWordReader draws from words, which must be non-empty lower case
// strings of content symbols. The slice is copied.
func NewWordReader(r *rand.Rand, words []string, length int) io.Reader {
	sorted := make([]string, len(words))
	copy(sorted, words)

	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) < len(sorted[j])
	})

	return &wordReader{
		rand:      r,
		words:     sorted,
		remaining: length,
	}
}

func (r *wordReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(r.pending) == 0 {
			if r.remaining <= 0 {
				break
			}
			r.next()
		}

		copied := copy(p[n:], r.pending)
		r.pending = r.pending[copied:]
		n += copied
	}

	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}

	return n, nil
}

func (r *wordReader) next() {
	// words[:fit] leave room for the trailing space
	fit := sort.Search(len(r.words), func(i int) bool {
		return len(r.words[i]) > r.remaining-1
	})

	word := ""
	if fit > 0 {
		word = r.words[r.rand.Intn(fit)]
	}

	r.pending = make([]byte, 0, len(word)+1)
	r.pending = append(r.pending, word...)
	r.pending = append(r.pending, ' ')
	r.remaining -= len(r.pending)
}
