package editor

import "image"

// CursorTracker turns pointer movement into cell-granularity notifications.
// Positions are published 1-based.
type CursorTracker struct {
	pos   image.Point
	topic *Topic[image.Point]
}

// NewCursorTracker starts at cell (1,1) and publishes changes to topic.
func NewCursorTracker(topic *Topic[image.Point]) *CursorTracker {
	return &CursorTracker{pos: image.Pt(1, 1), topic: topic}
}

// Position returns the last published 1-based cell.
func (c *CursorTracker) Position() image.Point {
	return c.pos
}

// Track records the 0-based cell under the pointer and publishes when it differs.
func (c *CursorTracker) Track(cell image.Point) bool {
	next := cell.Add(image.Pt(1, 1))
	if next == c.pos {
		return false
	}
	c.pos = next
	c.topic.Publish(next)
	return true
}
