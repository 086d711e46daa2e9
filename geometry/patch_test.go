/*
Copyright © 2026 the divgrid authors.
This file is part of divgrid.

divgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

divgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with divgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package geometry

import (
	"testing"

	"github.com/ctessum/geom"
)

// unitPatch returns a clockwise unit-square patch with slightly
// perturbed corners, as left behind by numerical tracing.
func unitPatch(name string) *Patch {
	nw := geom.Point{X: 0, Y: 1.0000004}
	ne := geom.Point{X: 1.0000002, Y: 1}
	se := geom.Point{X: 1, Y: 0}
	sw := geom.Point{X: 0, Y: 0}
	return NewPatch(name,
		NewLine(nw, ne),
		NewLine(ne, se),
		NewLine(se, sw),
		NewLine(sw, nw),
	)
}

func TestAdjustCornerMovesOnlyTarget(t *testing.T) {
	p := unitPatch("B2")
	other := unitPatch("B1")

	before := map[Corner]geom.Point{}
	for _, c := range []Corner{NW, NE, SE, SW} {
		pt, err := p.Corner(c)
		if err != nil {
			t.Fatal(err)
		}
		before[c] = pt
	}

	xpt := geom.Point{X: 1, Y: 1}
	if err := p.AdjustCorner(xpt, NE); err != nil {
		t.Fatal(err)
	}

	for _, c := range []Corner{NW, NE, SE, SW} {
		got, err := p.Corner(c)
		if err != nil {
			t.Fatal(err)
		}
		if c == NE {
			if got != xpt {
				t.Errorf("NE corner = %v, want exactly %v", got, xpt)
			}
			continue
		}
		if got != before[c] {
			t.Errorf("corner %v moved from %v to %v", c, before[c], got)
		}
	}

	// Both lines meeting at the corner see the same snapped vertex.
	if p.N.P[len(p.N.P)-1] != xpt || p.E.P[0] != xpt {
		t.Error("snapped corner is not shared by both boundary lines")
	}

	// The untouched patch keeps its corners.
	for _, c := range []Corner{NW, NE, SE, SW} {
		got, err := other.Corner(c)
		if err != nil {
			t.Fatal(err)
		}
		want, _ := unitPatch("B1").Corner(c)
		if got != want {
			t.Errorf("other patch corner %v moved to %v", c, got)
		}
	}
}

func TestNewCellVertices(t *testing.T) {
	n := NewLine(geom.Point{X: 0, Y: 1}, geom.Point{X: 1, Y: 1})
	s := NewLine(geom.Point{X: 1, Y: 0}, geom.Point{X: 0, Y: 0})
	e := NewLine(geom.Point{X: 1, Y: 1}, geom.Point{X: 1, Y: 0})
	w := NewLine(geom.Point{X: 0, Y: 0}, geom.Point{X: 0, Y: 1})
	c := NewCell(n, s, e, w)

	if c.Vertices[NW] != (geom.Point{X: 0, Y: 1}) ||
		c.Vertices[NE] != (geom.Point{X: 1, Y: 1}) ||
		c.Vertices[SE] != (geom.Point{X: 1, Y: 0}) ||
		c.Vertices[SW] != (geom.Point{X: 0, Y: 0}) {
		t.Errorf("corners = %v", c.Vertices)
	}
	if c.Vertices[Center] != (geom.Point{X: 0.5, Y: 0.5}) {
		t.Errorf("center = %v, want (0.5, 0.5)", c.Vertices[Center])
	}
}

func TestPatchBorderCloses(t *testing.T) {
	p := unitPatch("A1")
	b := p.Border()
	if b[0] != b[len(b)-1] {
		t.Errorf("border does not close: %v ... %v", b[0], b[len(b)-1])
	}
}
