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

package divgrid

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ctessum/geom"

	"github.com/fusionmodel/divgrid/geometry"
	"github.com/fusionmodel/divgrid/topology"
)

// rectPatch builds a filled rectangular patch spanning [x0,x1] x [0,1]
// with uniformly spaced cells.
func rectPatch(name string, x0, x1 float64, npolCells, nradCells int) *geometry.Patch {
	xs := make([]float64, npolCells+1)
	for i := range xs {
		xs[i] = x0 + (x1-x0)*float64(i)/float64(npolCells)
	}
	ys := make([]float64, nradCells+1)
	for j := range ys {
		ys[j] = float64(j) / float64(nradCells)
	}
	pt := func(i, j int) geom.Point { return geom.Point{X: xs[i], Y: ys[j]} }

	p := geometry.NewPatch(name,
		geometry.NewLine(pt(0, nradCells), pt(npolCells, nradCells)),
		geometry.NewLine(pt(npolCells, nradCells), pt(npolCells, 0)),
		geometry.NewLine(pt(npolCells, 0), pt(0, 0)),
		geometry.NewLine(pt(0, 0), pt(0, nradCells)),
	)
	p.Cells = make([][]geometry.Cell, nradCells)
	for j := range p.Cells {
		p.Cells[j] = make([]geometry.Cell, npolCells)
		for i := range p.Cells[j] {
			p.Cells[j][i] = geometry.NewCell(
				geometry.NewLine(pt(i, j+1), pt(i+1, j+1)),
				geometry.NewLine(pt(i+1, j), pt(i, j)),
				geometry.NewLine(pt(i+1, j+1), pt(i+1, j)),
				geometry.NewLine(pt(i, j), pt(i, j+1)),
			)
		}
	}
	return p
}

type sumPsi struct{}

func (sumPsi) Psi(r, z float64) float64 { return r + z }

func near(a, b geom.Point) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) < 1e-12
}

func TestAssembleGridSingleRegion(t *testing.T) {
	p1 := rectPatch("B1", 0, 1, 2, 2)
	p2 := rectPatch("C1", 1, 2, 3, 2)
	m, err := topology.NewPatchMatrix([][]*geometry.Patch{{p1, p2}})
	if err != nil {
		t.Fatal(err)
	}
	const eps = 1e-3
	g, err := AssembleGrid([]*topology.PatchMatrix{m}, sumPsi{}, eps)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumPol != 7 || g.NumRad != 4 {
		t.Fatalf("grid extents = (%d, %d), want (7, 4)", g.NumPol, g.NumRad)
	}

	// The first interior cell is p1's southwest cell, all five points.
	for c := 0; c < geometry.NumCorners; c++ {
		got := g.point(1, 1, geometry.Corner(c))
		want := p1.Cells[0][0].Vertices[c]
		if !near(got, want) {
			t.Errorf("point(1,1,%v) = %v, want %v", geometry.Corner(c), got, want)
		}
	}

	// Cells meet exactly across the patch seam at x=1.
	if se, sw := g.point(2, 1, geometry.SE), g.point(3, 1, geometry.SW); !near(se, sw) {
		t.Errorf("seam vertices differ: %v vs %v", se, sw)
	}

	// The west guard column clings to the first interior column,
	// extending eps of a cell width outward.
	if got, want := g.point(0, 1, geometry.SE), g.point(1, 1, geometry.SW); !near(got, want) {
		t.Errorf("guard SE = %v, want interior SW %v", got, want)
	}
	if got, want := g.point(0, 1, geometry.SW), (geom.Point{X: -eps * 0.5, Y: 0}); !near(got, want) {
		t.Errorf("guard SW = %v, want %v", got, want)
	}

	// The corner guard cell extends eps in both directions.
	if got, want := g.point(0, 0, geometry.NE), (geom.Point{X: 0, Y: 0}); !near(got, want) {
		t.Errorf("corner guard NE = %v, want %v", got, want)
	}
	if got, want := g.point(0, 0, geometry.SW), (geom.Point{X: -eps * 0.5, Y: -eps * 0.5}); !near(got, want) {
		t.Errorf("corner guard SW = %v, want %v", got, want)
	}

	// The radial guard row mirrors the interior row below it.
	if got, want := g.point(1, 0, geometry.NW), g.point(1, 1, geometry.SW); !near(got, want) {
		t.Errorf("radial guard NW = %v, want %v", got, want)
	}
	if got := g.point(1, 0, geometry.SW); !near(got, geom.Point{X: 0, Y: -eps * 0.5}) {
		t.Errorf("radial guard SW = %v, want %v", got, geom.Point{X: 0, Y: -eps * 0.5})
	}

	// PSI is evaluated at every characteristic point.
	if g.PSI == nil {
		t.Fatal("PSI not populated")
	}
	r := g.RM.Get(1, 1, int(geometry.NW))
	z := g.ZM.Get(1, 1, int(geometry.NW))
	if got := g.PSI.Get(1, 1, int(geometry.NW)); got != r+z {
		t.Errorf("PSI = %g, want %g", got, r+z)
	}
}

func TestAssembleGridTwoRegions(t *testing.T) {
	m1, err := topology.NewPatchMatrix([][]*geometry.Patch{{rectPatch("B1", 0, 1, 2, 2)}})
	if err != nil {
		t.Fatal(err)
	}
	p3 := rectPatch("H1", 5, 6, 2, 2)
	m2, err := topology.NewPatchMatrix([][]*geometry.Patch{{p3}})
	if err != nil {
		t.Fatal(err)
	}
	g, err := AssembleGrid([]*topology.PatchMatrix{m1, m2}, nil, 1e-3)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumPol != 8 || g.NumRad != 4 {
		t.Fatalf("grid extents = (%d, %d), want (8, 4)", g.NumPol, g.NumRad)
	}
	if g.PSI != nil {
		t.Error("PSI populated without an evaluator")
	}
	// Region 2 starts after region 1's guard column.
	if got, want := g.point(5, 1, geometry.SW), p3.Cells[0][0].Vertices[geometry.SW]; !near(got, want) {
		t.Errorf("region 2 first cell SW = %v, want %v", got, want)
	}
}

func TestAssembleGridRejectsMismatchedRegions(t *testing.T) {
	m1, err := topology.NewPatchMatrix([][]*geometry.Patch{{rectPatch("B1", 0, 1, 2, 2)}})
	if err != nil {
		t.Fatal(err)
	}
	m2, err := topology.NewPatchMatrix([][]*geometry.Patch{{rectPatch("H1", 1, 2, 2, 3)}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AssembleGrid([]*topology.PatchMatrix{m1, m2}, nil, 1e-3); err == nil {
		t.Error("regions with different radial extents accepted")
	}
	if _, err := AssembleGrid(nil, nil, 1e-3); err == nil {
		t.Error("empty region list accepted")
	}
}

func TestWriteGridue(t *testing.T) {
	m, err := topology.NewPatchMatrix([][]*geometry.Patch{{rectPatch("B1", 0, 1, 2, 2)}})
	if err != nil {
		t.Fatal(err)
	}
	g, err := AssembleGrid([]*topology.PatchMatrix{m}, sumPsi{}, 1e-3)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := g.WriteGridue(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "2 2" {
		t.Errorf("header = %q, want \"2 2\"", lines[0])
	}
	if len(lines) < 10 {
		t.Errorf("gridue body has %d lines, want the three arrays", len(lines))
	}

	g.PSI = nil
	if err := g.WriteGridue(&buf); err == nil {
		t.Error("export without psi values accepted")
	}
}
