package alphabet

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables(t *testing.T) {
	assert.Equal(t, 29, Size)
	assert.Equal(t, Size, len(Digits))
	assert.Equal(t, MaxDigit, Digits[Size-1])
	assert.Equal(t, 28, Index(' '))
	assert.Equal(t, 26, Index('.'))
	assert.Equal(t, 27, Index(','))
	assert.Equal(t, -1, Index('A'))
}

func TestRelabelRoundTrip(t *testing.T) {
	digits, err := ToDigits(Symbols)
	require.NoError(t, err)
	assert.Equal(t, Digits, digits)

	content, err := FromDigits(digits)
	require.NoError(t, err)
	assert.Equal(t, Symbols, content)
}

func TestValidateNamesOffendingCharacter(t *testing.T) {
	err := Validate("hello world!")

	var invalid *InvalidCharacterError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, '!', invalid.Char)
	assert.Equal(t, 11, invalid.Offset)
	assert.True(t, errors.Is(err, ErrInvalidContentCharacter))
}

func TestValidateReportsWholeRune(t *testing.T) {
	err := Validate("café")

	var invalid *InvalidCharacterError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 'é', invalid.Char)
	assert.Equal(t, 3, invalid.Offset)
}

func TestToDigitsRejectsUppercase(t *testing.T) {
	_, err := ToDigits("Hello")
	assert.True(t, errors.Is(err, ErrInvalidContentCharacter))
}

func TestFromDigitsRejectsNonDigits(t *testing.T) {
	_, err := FromDigits("0t")
	assert.Error(t, err)
}

func TestPadBook(t *testing.T) {
	assert.Equal(t, "ab   ", PadBook("ab", 5))
	assert.Equal(t, "abcde", PadBook("abcdefg", 5))
	assert.Equal(t, strings.Repeat(" ", 4), PadBook("", 4))
}
