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

package plot

import (
	"testing"

	"github.com/ctessum/geom"

	"github.com/fusionmodel/divgrid/geometry"
)

func TestLine(t *testing.T) {
	l := geometry.NewLine(geom.Point{X: 1, Y: 2}, geom.Point{X: 3, Y: 4})
	xys := Line(l)
	if xys.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", xys.Len())
	}
	if x, y := xys.XY(1); x != 3 || y != 4 {
		t.Errorf("XY(1) = (%g, %g), want (3, 4)", x, y)
	}
}

func TestPatchOutlines(t *testing.T) {
	n := geometry.NewLine(geom.Point{X: 0, Y: 1}, geom.Point{X: 1, Y: 1})
	e := geometry.NewLine(geom.Point{X: 1, Y: 1}, geom.Point{X: 1, Y: 0})
	s := geometry.NewLine(geom.Point{X: 1, Y: 0}, geom.Point{X: 0, Y: 0})
	w := geometry.NewLine(geom.Point{X: 0, Y: 0}, geom.Point{X: 0, Y: 1})
	p := geometry.NewPatch("B1", n, e, s, w)
	p.Cells = [][]geometry.Cell{{geometry.NewCell(n, s, e, w)}}

	border := PatchBorder(p)
	if border.Len() < 5 {
		t.Errorf("patch border has %d points, want a closed outline", border.Len())
	}
	cells := CellBorders(p)
	if len(cells) != 1 {
		t.Fatalf("len(CellBorders) = %d, want 1", len(cells))
	}
	if cells[0].Len() != 5 {
		t.Errorf("cell border has %d points, want 5", cells[0].Len())
	}
}
