package scene

import (
	"strings"
	"testing"

	"geofence/internal/geom"
)

type fakePrimitive struct {
	renders   int
	destroyed bool
}

func (p *fakePrimitive) Render(*Frame)     { p.renders++ }
func (p *fakePrimitive) Destroy()          { p.destroyed = true }
func (p *fakePrimitive) IsDestroyed() bool { return p.destroyed }

func TestCollection(t *testing.T) {
	c := NewCollection()
	a, b := &fakePrimitive{}, &fakePrimitive{}
	c.Add(a)
	c.Add(b)
	if c.Len() != 2 || c.Get(0) != a || c.Get(1) != b || c.Get(2) != nil {
		t.Fatal("collection order wrong")
	}

	c.Render(NewFrame(1, testViewport()))
	if a.renders != 1 || b.renders != 1 {
		t.Fatalf("renders = %d,%d, want 1,1", a.renders, b.renders)
	}

	if !c.Remove(a) || !a.destroyed {
		t.Fatal("remove did not destroy the child")
	}
	if c.Remove(a) {
		t.Fatal("second remove reported success")
	}
	if c.Len() != 1 || c.Get(0) != Primitive(b) {
		t.Fatal("collection wrong after remove")
	}

	c.Destroy()
	if !b.destroyed || !c.IsDestroyed() || c.Len() != 0 {
		t.Fatal("destroy did not release children")
	}
	c.Render(NewFrame(2, testViewport()))
	if b.renders != 1 {
		t.Fatal("destroyed collection rendered")
	}
}

func TestLabelsAndPoints(t *testing.T) {
	f := NewFrame(1, testViewport())
	labels := NewLabelCollection()
	l := labels.Add(Label{Show: true, Position: geom.FromDegrees(0, 0, 0), Text: "1.00 km", Color: White})
	points := NewPointCollection()
	points.Add(Point{Show: true, Position: geom.FromDegrees(-5, 5, 0), Color: Blue})
	labels.Render(f)
	points.Render(f)

	lines := f.PlainLines()
	if !strings.Contains(lines[10], "1.00 km") {
		t.Fatalf("label row = %q", lines[10])
	}
	if g, c := f.Cell(10, 5); g != '●' || c != Blue {
		t.Fatalf("marker = %q %v", g, c)
	}

	l.Show = false
	f = NewFrame(2, testViewport())
	labels.Render(f)
	if strings.Contains(f.PlainLines()[10], "km") {
		t.Fatal("hidden label drawn")
	}
	if !labels.Remove(l) || labels.Len() != 0 {
		t.Fatal("label not removed")
	}
}

func TestInputHandlerLastRegistrationWins(t *testing.T) {
	h := NewInputHandler()
	var got []string
	h.SetInputAction(LeftClick, func(int, int) { got = append(got, "first") })
	h.SetInputAction(LeftClick, func(x, y int) { got = append(got, "second") })

	if !h.Dispatch(LeftClick, 1, 2) {
		t.Fatal("left click not dispatched")
	}
	if len(got) != 1 || got[0] != "second" {
		t.Fatalf("dispatched to %v", got)
	}
	if h.Dispatch(RightClick, 0, 0) {
		t.Fatal("unregistered gesture dispatched")
	}
	h.RemoveInputAction(LeftClick)
	if h.Dispatch(LeftClick, 0, 0) {
		t.Fatal("removed action still dispatched")
	}
}
