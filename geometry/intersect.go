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
	"gonum.org/v1/gonum/mat"
)

// verticalNudge is added to a degenerate x-span before forming the
// point-slope system in LineIntersect.
const verticalNudge = 1e-4

// SegmentIntersect solves the 2x2 linear system for the intersection
// parameters of two finite segments, each given by the first two samples
// of its line. It reports ok only if both parameters lie in [0, 1];
// parallel segments yield a singular system and ok == false.
func SegmentIntersect(l1, l2 Line) (s, t float64, ok bool) {
	a, b := l1.P[0], l1.P[1]
	c, d := l2.P[0], l2.P[1]

	m := mat.NewDense(2, 2, []float64{
		b.X - a.X, c.X - d.X,
		b.Y - a.Y, c.Y - d.Y,
	})
	r := mat.NewVecDense(2, []float64{c.X - a.X, c.Y - a.Y})

	var sol mat.VecDense
	if err := sol.SolveVec(m, r); err != nil {
		return 0, 0, false
	}
	s, t = sol.AtVec(0), sol.AtVec(1)
	if s < 0 || s > 1 || t < 0 || t > 1 {
		return 0, 0, false
	}
	return s, t, true
}

// SegmentIntersectPoint is SegmentIntersect resolved to the intersection
// coordinates on l1.
func SegmentIntersectPoint(l1, l2 Line) (geom.Point, bool) {
	s, _, ok := SegmentIntersect(l1, l2)
	if !ok {
		return geom.Point{}, false
	}
	a, b := l1.P[0], l1.P[1]
	return geom.Point{X: a.X + s*(b.X-a.X), Y: a.Y + s*(b.Y-a.Y)}, true
}

// LineIntersect returns the intersection of the two infinite lines
// through the endpoints of l1 and l2. A vertical x-span is nudged by a
// small epsilon before forming the slope system; parallel lines return
// an error rather than a silently wrong point.
func LineIntersect(l1, l2 Line) (geom.Point, error) {
	m1, x1, y1 := slopeForm(l1)
	m2, x2, y2 := slopeForm(l2)

	// y - m*x = y0 - m*x0 for each line.
	a := mat.NewDense(2, 2, []float64{
		-m1, 1,
		-m2, 1,
	})
	r := mat.NewVecDense(2, []float64{y1 - m1*x1, y2 - m2*x2})

	var sol mat.VecDense
	if err := sol.SolveVec(a, r); err != nil {
		return geom.Point{}, fmt.Errorf("geometry: intersecting parallel lines: %w", err)
	}
	return geom.Point{X: sol.AtVec(0), Y: sol.AtVec(1)}, nil
}

func slopeForm(l Line) (m, x0, y0 float64) {
	a, b := l.Endpoints()
	if b.X == a.X {
		a.X += verticalNudge
	}
	return (b.Y - a.Y) / (b.X - a.X), a.X, a.Y
}
