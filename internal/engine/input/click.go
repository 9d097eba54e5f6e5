package input

// ClickSlop is the travel in pixels below which a press and release count
// as a click rather than a drag.
const ClickSlop = 4

// ClickTracker separates clicks from drags for one mouse button.
type ClickTracker struct {
	down     bool
	dragging bool
	startX   int
	startY   int
	lastX    int
	lastY    int
}

// Press records the button going down.
func (c *ClickTracker) Press(x, y int) {
	c.down = true
	c.dragging = false
	c.startX, c.startY = x, y
	c.lastX, c.lastY = x, y
}

// Move records pointer motion. While the button is down it returns the
// delta since the previous motion once the pointer has left the slop area.
func (c *ClickTracker) Move(x, y int) (dx, dy int, dragging bool) {
	if !c.down {
		return 0, 0, false
	}
	if !c.dragging && exceeds(x-c.startX, y-c.startY) {
		c.dragging = true
	}
	dx, dy = x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	return dx, dy, c.dragging
}

// Release records the button going up and reports whether the gesture
// was a click.
func (c *ClickTracker) Release(x, y int) bool {
	if !c.down {
		return false
	}
	c.down = false
	click := !c.dragging && !exceeds(x-c.startX, y-c.startY)
	c.dragging = false
	return click
}

// Down reports whether the button is held.
func (c *ClickTracker) Down() bool {
	return c.down
}

func exceeds(dx, dy int) bool {
	return dx*dx+dy*dy >= ClickSlop*ClickSlop
}
