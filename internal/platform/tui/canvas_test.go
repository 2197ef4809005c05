package tui

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(36, 9, orb.Bound{})

	if c.Width() != 36 || c.Height() != 9 {
		t.Errorf("size = %dx%d, want 36x9", c.Width(), c.Height())
	}
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.Get(x, y) != ' ' {
				t.Fatalf("new canvas should be blank, got %q at (%d, %d)", c.Get(x, y), x, y)
			}
		}
	}

	// Empty view falls back to the whole world.
	if _, _, ok := c.Project(orb.Point{179, -89}); !ok {
		t.Error("world view should contain (179, -89)")
	}
}

func TestCanvasSetGetOutOfRange(t *testing.T) {
	c := NewCanvas(4, 4, worldBound)

	c.Set(-1, 0, 'x')
	c.Set(0, 4, 'x')
	if c.Get(-1, 0) != ' ' || c.Get(4, 4) != ' ' {
		t.Error("out of range Get should return a space")
	}

	c.Set(2, 1, 'x')
	if c.Get(2, 1) != 'x' {
		t.Errorf("Get(2, 1) = %q, want x", c.Get(2, 1))
	}
}

func TestCanvasProject(t *testing.T) {
	c := NewCanvas(36, 18, worldBound)

	tests := []struct {
		name  string
		p     orb.Point
		wantX int
		wantY int
		ok    bool
	}{
		{"north west corner", orb.Point{-180, 90}, 0, 0, true},
		{"south east corner", orb.Point{180, -90}, 35, 17, true},
		{"origin", orb.Point{0, 0}, 18, 9, true},
		{"oslo", orb.Point{10.75, 59.9}, 19, 3, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := c.Project(tc.p)
			if ok != tc.ok || x != tc.wantX || y != tc.wantY {
				t.Errorf("Project(%v) = (%d, %d, %v), want (%d, %d, %v)",
					tc.p, x, y, ok, tc.wantX, tc.wantY, tc.ok)
			}
		})
	}

	zoomed := NewCanvas(10, 10, orb.Bound{Min: orb.Point{0, 50}, Max: orb.Point{20, 70}})
	if _, _, ok := zoomed.Project(orb.Point{-30, 60}); ok {
		t.Error("point outside the view should not project")
	}
}

func TestCanvasFillAndOutline(t *testing.T) {
	view := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	box := orb.Bound{Min: orb.Point{2, 2}, Max: orb.Point{7, 7}}

	c := NewCanvas(10, 10, view)
	c.Fill(box, '#')
	c.Outline(box)

	if c.Get(2, 3) != '┌' || c.Get(7, 3) != '┐' || c.Get(2, 8) != '└' || c.Get(7, 8) != '┘' {
		t.Errorf("corners not drawn:\n%s", c.String())
	}
	if c.Get(4, 5) != '#' {
		t.Errorf("interior = %q, want #", c.Get(4, 5))
	}
	if c.Get(0, 0) != ' ' || c.Get(9, 9) != ' ' {
		t.Errorf("outside the box should stay blank:\n%s", c.String())
	}

	// A bound entirely outside the view draws nothing.
	blank := NewCanvas(10, 10, view)
	blank.Fill(orb.Bound{Min: orb.Point{20, 20}, Max: orb.Point{30, 30}}, '#')
	if strings.ContainsRune(blank.String(), '#') {
		t.Error("bound outside the view should not be drawn")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2, worldBound)
	c.Mark(orb.Point{-180, 90}, 'a')
	c.Mark(orb.Point{180, -90}, 'b')

	want := "a  \n  b"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
