package readers

import (
	"io"
)

// Injects the second reader into the first at an offset.
// The base reader keeps going after the injection, so the bytes the
// injection covers are shifted along rather than overwritten.
func InjectedReader(
	offsetFromStart int64,
	base io.Reader,
	inject io.Reader,
) io.Reader {
	return io.MultiReader(
		io.LimitReader(base, offsetFromStart),
		inject,
		base,
	)
}
