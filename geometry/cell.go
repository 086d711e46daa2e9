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

import "github.com/ctessum/geom"

// Corner identifies one of the five stored positions of a cell. The
// numeric order matches the legacy vertex ordering of the multi-block
// mesh format.
type Corner int

const (
	Center Corner = iota
	SW
	SE
	NW
	NE
)

// NumCorners is the number of stored positions per cell.
const NumCorners = 5

func (c Corner) String() string {
	switch c {
	case Center:
		return "CENTER"
	case SW:
		return "SW"
	case SE:
		return "SE"
	case NW:
		return "NW"
	case NE:
		return "NE"
	}
	return "UNKNOWN"
}

// Cell is the atomic quadrilateral of a structured sub-mesh. Its north
// edge runs west to east and its south edge east to west, so that
// N.P[0] is the NW corner and S.P[0] the SE corner. Vertices holds the
// center and four corners indexed by Corner.
type Cell struct {
	N, S, E, W Line
	Vertices   [NumCorners]geom.Point
}

// NewCell builds a cell from its four bounding lines and derives the
// five stored positions from the edge endpoints. The center is the mean
// of the four corners.
func NewCell(n, s, e, w Line) Cell {
	c := Cell{N: n, S: s, E: e, W: w}
	c.Vertices[NW] = n.P[0]
	c.Vertices[NE] = n.P[len(n.P)-1]
	c.Vertices[SE] = s.P[0]
	c.Vertices[SW] = s.P[len(s.P)-1]
	c.Vertices[Center] = geom.Point{
		X: (c.Vertices[NW].X + c.Vertices[NE].X + c.Vertices[SE].X + c.Vertices[SW].X) / 4,
		Y: (c.Vertices[NW].Y + c.Vertices[NE].Y + c.Vertices[SE].Y + c.Vertices[SW].Y) / 4,
	}
	return c
}

// Border returns the closed outline of the cell for rendering.
func (c Cell) Border() []geom.Point {
	return []geom.Point{c.Vertices[NW], c.Vertices[NE], c.Vertices[SE], c.Vertices[SW], c.Vertices[NW]}
}

func (c *Cell) recenter() {
	c.Vertices[Center] = geom.Point{
		X: (c.Vertices[NW].X + c.Vertices[NE].X + c.Vertices[SE].X + c.Vertices[SW].X) / 4,
		Y: (c.Vertices[NW].Y + c.Vertices[NE].Y + c.Vertices[SE].Y + c.Vertices[SW].Y) / 4,
	}
}
