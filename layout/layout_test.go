package layout

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultGeometry(t *testing.T) {
	assert.NoError(t, Default.Validate())
	assert.Equal(t, 3200, Default.PageLength())
	assert.Equal(t, 1312000, Default.BookLength())
	assert.Equal(t, int64(640), Default.BooksPerRoom())
	assert.Equal(t, int64(160), Default.BooksPerWall())
}

func TestValidateRejectsEmptyDimensions(t *testing.T) {
	l := Default
	l.Chars = 0
	assert.Error(t, l.Validate())

	l = Default
	l.Walls = -1
	assert.Error(t, l.Validate())
}

func TestMaxRoomOfSmallLayout(t *testing.T) {
	l := Layout{Walls: 2, Shelves: 1, Books: 1, Pages: 1, Lines: 1, Chars: 2}

	// 29^2 = 841 books, two per room
	assert.Equal(t, int64(841), l.UniqueBooks().Int64())
	assert.Equal(t, 0, l.MaxRoom().Cmp(big.NewInt(420)))
}
