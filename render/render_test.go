package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Redundancy/go-babel/engine"
	"github.com/Redundancy/go-babel/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var result = &engine.PageResult{
	Identifier: "3.2.4.7.2",
	Content:    "hello worldabcd",
	Room:       "3",
	RoomShort:  "3",
	Wall:       2,
	Shelf:      4,
	Book:       7,
	Page:       2,
}

func TestPage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Page(&out, result, Options{Chars: 5}))

	want := strings.Join([]string{
		"room 3  wall 2  shelf 4  book 7  page 2",
		"=========",
		"01|hello|",
		"02| worl|",
		"03|dabcd|",
		"=========",
		"",
	}, "\n")

	assert.Equal(t, want, out.String())
}

func TestPageWithHighlightWithoutColor(t *testing.T) {
	var out bytes.Buffer

	err := Page(&out, result, Options{
		Chars:     5,
		Highlight: &search.Highlight{Page: 2, StartLine: 1, StartCol: 1, EndLine: 2, EndCol: 1},
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "02| worl|\n03|dabcd|")
}

func TestHighlightLine(t *testing.T) {
	s := newStyles(&bytes.Buffer{}, false)
	h := &search.Highlight{StartLine: 1, StartCol: 2, EndLine: 3, EndCol: 1}

	assert.Equal(t, "abcde", highlightLine(s, "abcde", 0, h))
	assert.Equal(t, "abcde", highlightLine(s, "abcde", 1, h))
	assert.Equal(t, "abcde", highlightLine(s, "abcde", 4, h))
	assert.Equal(t, "abcde", highlightLine(s, "abcde", 1, nil))
}

func TestPlain(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Plain(&out, result, 5))

	assert.Equal(t, "hello\n worl\ndabcd\n", out.String())
}

func TestHeaderUsesShortRoom(t *testing.T) {
	long := *result
	long.Room = strings.Repeat("a", 30)
	long.RoomShort = "aaaaaaaa...aaaaaaaa"

	assert.Contains(t, Header(&long), "room aaaaaaaa...aaaaaaaa ")
}
