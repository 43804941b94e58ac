package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryA4(t *testing.T) {
	g := A4(15, 12)
	require.NoError(t, g.Validate())
	assert.Equal(t, 15.0, g.ContentTop())
	assert.Equal(t, 270.0, g.ContentBottom())
	assert.Equal(t, 255.0, g.ContentHeight())
	assert.Equal(t, 180.0, g.ContentWidth())

	assert.Error(t, A4(120, 0).Validate())
	assert.Error(t, Geometry{}.Validate())
}

func TestCursorMeasureAndAdvance(t *testing.T) {
	c := NewCursor(A4(15, 12))
	assert.Equal(t, 0, c.Page())
	assert.Equal(t, 1, c.Pages())
	assert.True(t, c.Empty())

	assert.Equal(t, Fits, c.Measure(100))
	c.Advance(100)
	assert.Equal(t, 115.0, c.Y())
	assert.False(t, c.Empty())
	assert.Equal(t, OnPage, c.State())

	assert.Equal(t, Fits, c.Measure(155), "exact fit")
	assert.Equal(t, NeedsNewPage, c.Measure(156))
	assert.Equal(t, PageFull, c.State())
}

func TestCursorNewPage(t *testing.T) {
	c := NewCursor(A4(15, 12))
	c.Advance(200)
	c.Measure(100)
	c.NewPage()

	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 2, c.Pages())
	assert.Equal(t, 15.0, c.Y())
	assert.Equal(t, OnPage, c.State())
	assert.True(t, c.Empty())
}

func TestCursorReserveDoesNotCount(t *testing.T) {
	c := NewCursor(A4(15, 12))
	c.Reserve(10)
	assert.True(t, c.Empty())
	assert.Equal(t, 25.0, c.Y())
}

func TestCursorNeeds(t *testing.T) {
	c := NewCursor(A4(15, 12))

	// oversized block on an empty page is placed anyway
	assert.False(t, c.Needs(1000))
	c.Advance(1000)
	assert.Less(t, c.Remaining(), 0.0)
	assert.Equal(t, PageFull, c.State())

	// anything after it breaks the page
	assert.True(t, c.Needs(1))
	c.NewPage()
	assert.False(t, c.Needs(10))
}

func TestCursorFullAfterExactFill(t *testing.T) {
	c := NewCursor(A4(15, 12))
	c.Advance(255)
	assert.Equal(t, PageFull, c.State())
	assert.Zero(t, c.Remaining())
}
