package editor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorTrackerPublishesOnCellChange(t *testing.T) {
	var topic Topic[image.Point]
	var got []image.Point
	topic.Subscribe(func(p image.Point) { got = append(got, p) })

	c := NewCursorTracker(&topic)
	assert.Equal(t, image.Pt(1, 1), c.Position())

	assert.False(t, c.Track(image.Pt(0, 0)), "already at (1,1)")
	assert.True(t, c.Track(image.Pt(3, 0)))
	assert.False(t, c.Track(image.Pt(3, 0)))
	assert.True(t, c.Track(image.Pt(3, 1)))
	assert.True(t, c.Track(image.Pt(0, 0)))

	assert.Equal(t, []image.Point{{4, 1}, {4, 2}, {1, 1}}, got)
}
