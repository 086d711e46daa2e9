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

package subgrid

import (
	"math"
	"testing"

	"github.com/ctessum/geom"

	"github.com/fusionmodel/divgrid/geometry"
	"github.com/fusionmodel/divgrid/trace"
)

// arc samples a circular arc about the origin from th0 to th1 degrees.
func arc(rho, th0, th1 float64, n int) geometry.Line {
	pts := make([]geom.Point, n)
	for i := range pts {
		th := (th0 + (th1-th0)*float64(i)/float64(n-1)) * math.Pi / 180
		pts[i] = geom.Point{X: rho * math.Cos(th), Y: rho * math.Sin(th)}
	}
	return geometry.Line{P: pts}
}

// annulusPatch is a quarter-annulus patch between flux surfaces rho=2
// and rho=3 in the upper-left quadrant, bounded clockwise.
func annulusPatch() *geometry.Patch {
	n := arc(3, 180, 90, 33)
	e := geometry.NewLine(geom.Point{X: 0, Y: 3}, geom.Point{X: 0, Y: 2})
	s := arc(2, 90, 180, 33)
	w := geometry.NewLine(geom.Point{X: -2, Y: 0}, geom.Point{X: -3, Y: 0})
	return geometry.NewPatch("C2", n, e, s, w)
}

func testGenerator() *Generator {
	f := &trace.AnalyticField{Axis: geom.Point{X: 0, Y: 0}, A: 4}
	return &Generator{Tracer: f, Psi: f}
}

func TestFillCellCounts(t *testing.T) {
	p := annulusPatch()
	g := testGenerator()
	if err := g.Fill(p, 3, 3); err != nil {
		t.Fatal(err)
	}
	if got, want := len(p.Cells), 2; got != want {
		t.Fatalf("radial rows = %d, want %d", got, want)
	}
	for j, row := range p.Cells {
		if got, want := len(row), 2; got != want {
			t.Fatalf("row %d has %d cells, want %d", j, got, want)
		}
	}
	if p.NumPol() != 3 || p.NumRad() != 3 {
		t.Errorf("patch counts = (%d, %d), want (3, 3)", p.NumPol(), p.NumRad())
	}
}

func TestFillSharesVerticesExactly(t *testing.T) {
	p := annulusPatch()
	g := testGenerator()
	if err := g.Fill(p, 3, 3); err != nil {
		t.Fatal(err)
	}

	// Radially adjacent cells share their horizontal edge vertices as
	// identical values, not merely close ones.
	for ix := 0; ix < 2; ix++ {
		lower, upper := p.Cells[0][ix], p.Cells[1][ix]
		if lower.Vertices[geometry.NW] != upper.Vertices[geometry.SW] {
			t.Errorf("column %d west: %v != %v", ix, lower.Vertices[geometry.NW], upper.Vertices[geometry.SW])
		}
		if lower.Vertices[geometry.NE] != upper.Vertices[geometry.SE] {
			t.Errorf("column %d east: %v != %v", ix, lower.Vertices[geometry.NE], upper.Vertices[geometry.SE])
		}
	}
	// Poloidally adjacent cells share their vertical edge vertices.
	for jy := 0; jy < 2; jy++ {
		west, east := p.Cells[jy][0], p.Cells[jy][1]
		if west.Vertices[geometry.SE] != east.Vertices[geometry.SW] {
			t.Errorf("row %d south: %v != %v", jy, west.Vertices[geometry.SE], east.Vertices[geometry.SW])
		}
		if west.Vertices[geometry.NE] != east.Vertices[geometry.NW] {
			t.Errorf("row %d north: %v != %v", jy, west.Vertices[geometry.NE], east.Vertices[geometry.NW])
		}
	}
}

func TestFillAnchorsOnBoundaries(t *testing.T) {
	p := annulusPatch()
	g := testGenerator()
	if err := g.Fill(p, 3, 3); err != nil {
		t.Fatal(err)
	}
	// The SW corner of the first cell is the exact first west anchor.
	sw := p.Cells[0][0].Vertices[geometry.SW]
	if math.Hypot(sw.X+2, sw.Y) > 1e-9 {
		t.Errorf("SW corner = %v, want (-2, 0)", sw)
	}
	// Interior cells sit between the two bounding flux surfaces.
	for _, row := range p.Cells {
		for _, c := range row {
			for _, v := range c.Vertices {
				rho := math.Hypot(v.X, v.Y)
				if rho < 2-1e-6 || rho > 3+1e-6 {
					t.Errorf("vertex %v at rho=%g outside [2, 3]", v, rho)
				}
			}
		}
	}
}

func TestFillDegenerateBoundary(t *testing.T) {
	// A west boundary along a flux surface spans no flux; the patch
	// must be reported degenerate and left unfilled.
	p := annulusPatch()
	p.W = arc(2.5, 170, 180, 5)
	g := testGenerator()
	if err := g.Fill(p, 3, 3); err == nil {
		t.Fatal("expected a degenerate-boundary error")
	}
	if p.Filled() {
		t.Error("degenerate patch was filled")
	}
}

func TestFillBadCounts(t *testing.T) {
	p := annulusPatch()
	g := testGenerator()
	if err := g.Fill(p, 1, 3); err == nil {
		t.Error("npol=1 should fail")
	}
}
