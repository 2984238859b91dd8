package readers

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/Redundancy/go-babel/alphabet"
)

func TestUniformReaderLength(t *testing.T) {
	r, err := io.ReadAll(SpaceReader(100))

	if err != nil {
		t.Fatal(err)
	}

	if len(r) != 100 {
		t.Errorf("Unexpected length: %v", len(r))
	}

	for i, b := range r {
		if b != ' ' {
			t.Errorf("Byte at position %v is not a space: %q", i, b)
		}
	}
}

func TestReadIntoLargerBuffer(t *testing.T) {
	b := make([]byte, 100)
	r := UniformReader('a', 10)

	n, err := r.Read(b)

	if n != 10 {
		t.Errorf("Wrong read length: %v", n)
	}

	if err != io.EOF {
		t.Errorf("Did not raise EOF after reading: %v", err)
	}
}

func TestSymbolReaderStaysInAlphabet(t *testing.T) {
	b := make([]byte, 10000)
	_, err := io.ReadFull(NewSymbolReader(rand.New(rand.NewSource(1))), b)

	if err != nil {
		t.Fatal(err)
	}

	if err := alphabet.Validate(string(b)); err != nil {
		t.Fatal(err)
	}

	seen := make(map[byte]bool)
	for _, c := range b {
		seen[c] = true
	}

	if len(seen) != alphabet.Size {
		t.Errorf("Expected all %v symbols, saw %v", alphabet.Size, len(seen))
	}
}

func TestWordReaderExactLength(t *testing.T) {
	words := []string{"a", "of", "the", "library", "babel"}

	for length := 0; length < 40; length++ {
		r := NewWordReader(rand.New(rand.NewSource(int64(length))), words, length)
		b, err := io.ReadAll(r)

		if err != nil {
			t.Fatal(err)
		}

		if len(b) != length {
			t.Fatalf("Wrong length: %v, expected %v", len(b), length)
		}

		if length > 0 && b[length-1] != ' ' {
			t.Errorf("Stretch of %v does not end with a space: %q", length, b)
		}

		for _, w := range strings.Fields(string(b)) {
			found := false
			for _, candidate := range words {
				found = found || w == candidate
			}
			if !found {
				t.Errorf("Unexpected word %q in %q", w, b)
			}
		}
	}
}

func TestWordReaderSmallBuffer(t *testing.T) {
	r := NewWordReader(rand.New(rand.NewSource(2)), []string{"library"}, 24)

	var out bytes.Buffer
	b := make([]byte, 3)

	for {
		n, err := r.Read(b)
		out.Write(b[:n])

		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	if out.String() != "library library library " {
		t.Errorf("Unexpected content: %q", out.String())
	}
}

func TestInjectedReader(t *testing.T) {
	r := SequenceLimit(
		10,
		InjectedReader(3, SpaceReader(20), strings.NewReader("abc")),
	)

	b, err := io.ReadAll(r)

	if err != nil {
		t.Fatal(err)
	}

	if string(b) != "   abc    " {
		t.Errorf("Unexpected content: %q", b)
	}
}

func TestSequenceLimit(t *testing.T) {
	r := SequenceLimit(
		8,
		strings.NewReader("hello"),
		SpaceReader(100),
	)

	b, err := io.ReadAll(r)

	if err != nil {
		t.Fatal(err)
	}

	if string(b) != "hello   " {
		t.Errorf("Unexpected content: %q", b)
	}
}

func BenchmarkSymbolReader(b *testing.B) {
	b.SetBytes(1)

	s := io.LimitReader(NewSymbolReader(rand.New(rand.NewSource(0))), int64(b.N))

	b.StartTimer()
	_, err := io.Copy(io.Discard, s)
	b.StopTimer()

	if err != nil {
		b.Fatal(err)
	}
}
