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

/*Package geometry defines the planar primitives of the divertor mesh:
points and vectors in the poloidal (R,Z) plane, polylines, and the
quadrilateral cells and patches built from them. All transforms return
new values; boundary lines may be shared between neighboring patches and
are never modified in place.*/
package geometry

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// Vector is a point expressed relative to a nontrivial origin.
type Vector struct {
	P      geom.Point
	Origin geom.Point
}

// NewVector returns the vector from origin to p.
func NewVector(p, origin geom.Point) Vector {
	return Vector{P: p, Origin: origin}
}

// Components returns the vector components relative to the origin.
func (v Vector) Components() (float64, float64) {
	return v.P.X - v.Origin.X, v.P.Y - v.Origin.Y
}

// Mag returns the magnitude of the vector.
func (v Vector) Mag() float64 {
	x, y := v.Components()
	return math.Hypot(x, y)
}

// Dot returns the dot product of two vectors.
func (v Vector) Dot(o Vector) float64 {
	x1, y1 := v.Components()
	x2, y2 := o.Components()
	return x1*x2 + y1*y2
}

// Quadrant returns the sign pair of the vector components, used to
// disambiguate absolute headings recovered from arccos.
func (v Vector) Quadrant() (int, int) {
	x, y := v.Components()
	return sign(x), sign(y)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// MidpointOnArc returns the point at the angular bisector of v1 and v2
// at the radius of v1. The two vectors must share an origin; arccos of
// the normalized dot product gives the half-angle between them, and the
// quadrant of v1 resolves it to an absolute heading.
func MidpointOnArc(v1, v2 Vector) (geom.Point, error) {
	if v1.Origin != v2.Origin {
		return geom.Point{}, fmt.Errorf("geometry: arc midpoint of vectors with different origins")
	}
	m1, m2 := v1.Mag(), v2.Mag()
	if m1 == 0 || m2 == 0 {
		return geom.Point{}, fmt.Errorf("geometry: arc midpoint of zero-length vector")
	}
	theta := math.Acos(v1.Dot(v2)/(m1*m2)) / 2

	x, y := v1.Components()
	var angle float64
	qx, qy := v1.Quadrant()
	switch {
	case qx == 1 && qy == 1: // NE
		angle = math.Acos(x / m1)
	case qx == -1 && qy == 1: // NW
		angle = math.Pi - math.Asin(y/m1)
	case qx == -1 && qy == -1: // SW
		angle = math.Pi + math.Atan(y/x)
	case qx == 1 && qy == -1: // SE
		angle = -math.Acos(x / m1)
	default:
		return geom.Point{}, fmt.Errorf("geometry: arc midpoint of axis-aligned vector (%g, %g)", x, y)
	}

	return geom.Point{
		X: v1.Origin.X + m1*math.Cos(theta+angle),
		Y: v1.Origin.Y + m1*math.Sin(theta+angle),
	}, nil
}

// PointsOppositeSides reports the orientation signs of p1 and p2 relative
// to the infinite line through the endpoints of l. Differing signs mean
// the points lie on opposite sides.
func PointsOppositeSides(p1, p2 geom.Point, l Line) (int, int) {
	a, b := l.Endpoints()
	d1 := (p1.X-a.X)*(b.Y-a.Y) - (p1.Y-a.Y)*(b.X-a.X)
	d2 := (p2.X-a.X)*(b.Y-a.Y) - (p2.Y-a.Y)*(b.X-a.X)
	return sign(d1), sign(d2)
}

func dist(a, b geom.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
