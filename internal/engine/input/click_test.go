package input

import "testing"

func TestClickWithinSlop(t *testing.T) {
	var c ClickTracker
	c.Press(100, 100)
	if _, _, drag := c.Move(102, 101); drag {
		t.Error("small motion should not start a drag")
	}
	if !c.Release(102, 101) {
		t.Error("expected a click")
	}
}

func TestDragIsNotClick(t *testing.T) {
	var c ClickTracker
	c.Press(100, 100)

	dx, dy, drag := c.Move(110, 95)
	if !drag {
		t.Fatal("expected drag after leaving slop")
	}
	if dx != 10 || dy != -5 {
		t.Errorf("expected delta (10,-5), got (%d,%d)", dx, dy)
	}

	// Coming back to the start does not turn it into a click
	c.Move(100, 100)
	if c.Release(100, 100) {
		t.Error("drag should not report a click")
	}
}

func TestReleaseWithoutPress(t *testing.T) {
	var c ClickTracker
	if c.Release(1, 1) {
		t.Error("release without press should not click")
	}
	if _, _, drag := c.Move(50, 50); drag {
		t.Error("motion without press should not drag")
	}
}

func TestJumpBetweenPressAndRelease(t *testing.T) {
	var c ClickTracker
	c.Press(0, 0)
	if c.Release(4, 0) {
		t.Error("travel of exactly the slop should not click")
	}
	if c.Down() {
		t.Error("expected button up")
	}
}
