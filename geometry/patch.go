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
	"fmt"

	"github.com/ctessum/geom"
)

// Side identifies one boundary of a patch.
type Side int

const (
	North Side = iota
	East
	South
	West
)

func (s Side) String() string {
	switch s {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return "?"
}

// Patch is one quadrilateral topological block of the multi-block mesh.
// Its four boundary lines are traversed clockwise: N west to east, E
// north to south, S east to west, W south to north. Once filled, Cells
// holds the structured sub-mesh as radial rows (south to north) of
// poloidal columns (west to east).
type Patch struct {
	Name       string
	N, E, S, W Line

	// PlatePatch marks a patch with one boundary taken from target
	// plate or limiter geometry; PlateSide says which.
	PlatePatch bool
	PlateSide  Side

	Cells [][]Cell
}

// NewPatch returns an unfilled patch bounded by the four lines.
func NewPatch(name string, n, e, s, w Line) *Patch {
	return &Patch{Name: name, N: n, E: e, S: s, W: w}
}

// NewPlatePatch returns an unfilled plate-adjacent patch.
func NewPlatePatch(name string, n, e, s, w Line, side Side) *Patch {
	return &Patch{Name: name, N: n, E: e, S: s, W: w, PlatePatch: true, PlateSide: side}
}

// Boundary returns the patch boundary on the given side.
func (p *Patch) Boundary(s Side) Line {
	switch s {
	case North:
		return p.N
	case East:
		return p.E
	case South:
		return p.S
	}
	return p.W
}

// Filled reports whether the patch holds a generated sub-mesh.
func (p *Patch) Filled() bool { return len(p.Cells) > 0 }

// NumPol returns the number of poloidal vertex indices of the filled
// patch (cells + 1).
func (p *Patch) NumPol() int {
	if !p.Filled() {
		return 0
	}
	return len(p.Cells[0]) + 1
}

// NumRad returns the number of radial vertex indices of the filled
// patch (cells + 1).
func (p *Patch) NumRad() int {
	if !p.Filled() {
		return 0
	}
	return len(p.Cells) + 1
}

// Corner returns the patch corner from its boundary lines. The patch
// boundary runs clockwise, so NW is the start of N, NE the start of E,
// SE the start of S, and SW the start of W.
func (p *Patch) Corner(c Corner) (geom.Point, error) {
	switch c {
	case NW:
		return p.N.P[0], nil
	case NE:
		return p.E.P[0], nil
	case SE:
		return p.S.P[0], nil
	case SW:
		return p.W.P[0], nil
	}
	return geom.Point{}, fmt.Errorf("geometry: patch %s has no corner %v", p.Name, c)
}

// AdjustCorner overwrites the vertex at the given corner with pt,
// snapping residual tracing error onto an exact coordinate (typically an
// X-point). Both boundary lines meeting at the corner are updated, and
// the matching corner cell of a filled sub-mesh is moved with it. No
// other corner of this or any other patch is touched.
func (p *Patch) AdjustCorner(pt geom.Point, c Corner) error {
	switch c {
	case NW:
		p.N.P[0] = pt
		p.W.P[len(p.W.P)-1] = pt
	case NE:
		p.N.P[len(p.N.P)-1] = pt
		p.E.P[0] = pt
	case SE:
		p.E.P[len(p.E.P)-1] = pt
		p.S.P[0] = pt
	case SW:
		p.S.P[len(p.S.P)-1] = pt
		p.W.P[0] = pt
	default:
		return fmt.Errorf("geometry: cannot adjust corner %v of patch %s", c, p.Name)
	}
	if p.Filled() {
		p.adjustCellCorner(pt, c)
	}
	return nil
}

// adjustCellCorner moves the sub-mesh vertex coincident with the patch
// corner. Rows run south to north and columns west to east.
func (p *Patch) adjustCellCorner(pt geom.Point, c Corner) {
	var cell *Cell
	switch c {
	case NW:
		cell = &p.Cells[len(p.Cells)-1][0]
	case NE:
		cell = &p.Cells[len(p.Cells)-1][len(p.Cells[0])-1]
	case SE:
		cell = &p.Cells[0][len(p.Cells[0])-1]
	case SW:
		cell = &p.Cells[0][0]
	}
	cell.Vertices[c] = pt
	cell.recenter()
}

// Border returns the closed patch outline, concatenating the four
// boundary lines in clockwise order, for rendering.
func (p *Patch) Border() []geom.Point {
	var out []geom.Point
	for _, l := range []Line{p.N, p.E, p.S, p.W} {
		out = append(out, l.P...)
	}
	if len(out) > 0 {
		out = append(out, out[0])
	}
	return out
}
