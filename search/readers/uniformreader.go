package readers

import (
	"io"
)

// Reads a continuous stream of bytes with the same value, up to length
type uniformReader struct {
	value  byte
	length int
	read   int
}

func (r *uniformReader) Read(p []byte) (n int, err error) {
	readable := r.length - r.read
	read := len(p)

	if readable < read {
		read = readable
	}

	if read == 0 {
		return 0, io.EOF
	}

	for i := 0; i < read; i++ {
		p[i] = r.value
	}

	var result error = nil
	if read == readable {
		result = io.EOF
	}

	r.read += read

	return read, result
}

// UniformReader repeats value length times
func UniformReader(value byte, length int) io.Reader {
	return &uniformReader{value: value, length: length}
}

// SpaceReader is the content of an empty stretch of book
func SpaceReader(length int) io.Reader {
	return UniformReader(' ', length)
}
