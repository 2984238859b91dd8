package params

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/Redundancy/go-babel/alphabet"
)

// Format is the encoding of a stored parameter set
type Format int

const (
	// FormatText is three newline-separated base-29 numerals: N, C, I
	FormatText Format = iota

	// FormatCBOR is a CBOR map of big-endian magnitudes
	FormatCBOR
)

const cborVersion = 1

const (
	zstdSuffix = ".zst"
	cborSuffix = ".cbor"
)

// MaxStoreSize bounds the decoded size of a parameter store. Text stores for
// the published layout are about 4MB.
const MaxStoreSize = 16 << 20

type document struct {
	Version int    `cbor:"v"`
	N       []byte `cbor:"n"`
	C       []byte `cbor:"c"`
	I       []byte `cbor:"i"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("params: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("params: CBOR decoder initialization failed: " + err.Error())
	}
}

// FormatOf picks the format and compression from a file name.
// A trailing ".zst" means zstd framing; ".cbor" before it means CBOR,
// anything else is text.
func FormatOf(path string) (format Format, compressed bool) {
	name := path

	if strings.HasSuffix(name, zstdSuffix) {
		compressed = true
		name = strings.TrimSuffix(name, zstdSuffix)
	}

	if strings.HasSuffix(name, cborSuffix) {
		return FormatCBOR, compressed
	}

	return FormatText, compressed
}

// WriteText writes N, C and I as newline-separated digit form numerals
func WriteText(w io.Writer, set *Set) error {
	n, c, i := set.Digits()
	_, err := io.WriteString(w, n+"\n"+c+"\n"+i)
	return err
}

// ReadText reads the text format. Surrounding whitespace on each line,
// including a trailing newline, is ignored.
func ReadText(r io.Reader) (*Set, error) {
	raw, err := readAll(r, MaxStoreSize)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		return nil, fmt.Errorf(
			"%w: expected 3 lines (N, C, I), found %v",
			ErrInvalidParameters,
			len(lines),
		)
	}

	values := make([]*big.Int, 3)

	for idx, name := range []string{"N", "C", "I"} {
		v, err := alphabet.DigitBase.Parse(strings.TrimSpace(lines[idx]))
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %v", ErrInvalidParameters, name, err)
		}
		values[idx] = v
	}

	return &Set{N: values[0], C: values[1], I: values[2]}, nil
}

// WriteCBOR writes the CBOR format
func WriteCBOR(w io.Writer, set *Set) error {
	encoded, err := encMode.Marshal(document{
		Version: cborVersion,
		N:       set.N.Bytes(),
		C:       set.C.Bytes(),
		I:       set.I.Bytes(),
	})
	if err != nil {
		return err
	}

	_, err = w.Write(encoded)
	return err
}

// ReadCBOR reads the CBOR format
func ReadCBOR(r io.Reader) (*Set, error) {
	raw, err := readAll(r, MaxStoreSize)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := decMode.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	if doc.Version != cborVersion {
		return nil, fmt.Errorf("%w: unsupported version %v", ErrInvalidParameters, doc.Version)
	}

	return &Set{
		N: new(big.Int).SetBytes(doc.N),
		C: new(big.Int).SetBytes(doc.C),
		I: new(big.Int).SetBytes(doc.I),
	}, nil
}

// Encode writes set in the given format, optionally zstd compressed
func Encode(w io.Writer, set *Set, format Format, compressed bool) (err error) {
	if compressed {
		var zw *zstd.Encoder
		zw, err = zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return err
		}

		defer func() {
			if e := zw.Close(); err == nil {
				err = e
			}
		}()

		w = zw
	}

	switch format {
	case FormatCBOR:
		return WriteCBOR(w, set)
	default:
		return WriteText(w, set)
	}
}

// Decode reads a set in the given format and validates it
func Decode(r io.Reader, format Format, compressed bool) (*Set, error) {
	if compressed {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()

		r = zr
	}

	var set *Set
	var err error

	switch format {
	case FormatCBOR:
		set, err = ReadCBOR(r)
	default:
		set, err = ReadText(r)
	}

	if err != nil {
		return nil, err
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Load reads and validates the parameter store at path, choosing the
// format from its name
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("params: could not open %v: %w", path, err)
	}
	defer f.Close()

	format, compressed := FormatOf(path)

	set, err := Decode(f, format, compressed)
	if err != nil {
		return nil, fmt.Errorf("params: loading %v: %w", path, err)
	}

	return set, nil
}

// Save writes set to path atomically, through a temporary file in the same
// directory
func Save(path string, set *Set) (err error) {
	format, compressed := FormatOf(path)

	var buffer bytes.Buffer
	if err = Encode(&buffer, set, format, compressed); err != nil {
		return fmt.Errorf("params: encoding %v: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".params_")
	if err != nil {
		return fmt.Errorf("params: %w", err)
	}

	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(buffer.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("params: writing %v: %w", tmpName, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("params: closing %v: %w", tmpName, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("params: renaming %v to %v: %w", tmpName, path, err)
	}

	return nil
}

// readAll reads r to the end, failing once more than limit bytes arrive
func readAll(r io.Reader, limit int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}

	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w: store exceeds %v bytes", ErrInvalidParameters, limit)
	}

	return raw, nil
}
