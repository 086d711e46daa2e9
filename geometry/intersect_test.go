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
	"math"
	"testing"

	"github.com/ctessum/geom"
)

func seg(x1, y1, x2, y2 float64) Line {
	return NewLine(geom.Point{X: x1, Y: y1}, geom.Point{X: x2, Y: y2})
}

func TestSegmentIntersect(t *testing.T) {
	tests := []struct {
		name   string
		l1, l2 Line
		s, t   float64
		ok     bool
	}{
		{
			name: "crossing diagonals",
			l1:   seg(0, 0, 1, 1),
			l2:   seg(0, 1, 1, 0),
			s:    0.5, t: 0.5, ok: true,
		},
		{
			name: "parallel",
			l1:   seg(0, 0, 1, 0),
			l2:   seg(0, 1, 1, 1),
			ok:   false,
		},
		{
			name: "meeting outside the segments",
			l1:   seg(0, 0, 1, 1),
			l2:   seg(3, 0, 3, 10),
			ok:   false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, tt, ok := SegmentIntersect(test.l1, test.l2)
			if ok != test.ok {
				t.Fatalf("ok = %v, want %v", ok, test.ok)
			}
			if !ok {
				return
			}
			if math.Abs(s-test.s) > 1e-12 || math.Abs(tt-test.t) > 1e-12 {
				t.Errorf("parameters = (%g, %g), want (%g, %g)", s, tt, test.s, test.t)
			}
		})
	}
}

func TestSegmentIntersectPoint(t *testing.T) {
	p, ok := SegmentIntersectPoint(seg(0, 0, 2, 2), seg(0, 2, 2, 0))
	if !ok {
		t.Fatal("expected an intersection")
	}
	if math.Abs(p.X-1) > 1e-12 || math.Abs(p.Y-1) > 1e-12 {
		t.Errorf("intersection = %v, want (1, 1)", p)
	}
}

func TestLineIntersect(t *testing.T) {
	// Intersection of the infinite extensions, beyond the sampled spans.
	p, err := LineIntersect(seg(0, 0, 1, 1), seg(0, 4, 1, 3))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.X-2) > 1e-9 || math.Abs(p.Y-2) > 1e-9 {
		t.Errorf("intersection = %v, want (2, 2)", p)
	}
}

func TestLineIntersectVertical(t *testing.T) {
	// A vertical span is nudged rather than dividing by zero.
	p, err := LineIntersect(seg(1, -5, 1, 5), seg(0, 0, 2, 0))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.X-1) > 1e-3 || math.Abs(p.Y) > 1e-3 {
		t.Errorf("intersection = %v, want approximately (1, 0)", p)
	}
}

func TestLineIntersectParallel(t *testing.T) {
	if _, err := LineIntersect(seg(0, 0, 1, 1), seg(0, 2, 1, 3)); err == nil {
		t.Error("parallel lines should not intersect")
	}
}

func TestMidpointOnArc(t *testing.T) {
	origin := geom.Point{X: 1, Y: 1}
	v1 := NewVector(geom.Point{X: 2, Y: 1.0000001}, origin) // NE quadrant, along +x
	v2 := NewVector(geom.Point{X: 1.0000001, Y: 2}, origin) // along +y
	p, err := MidpointOnArc(v1, v2)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Point{X: 1 + math.Cos(math.Pi/4), Y: 1 + math.Sin(math.Pi/4)}
	if math.Abs(p.X-want.X) > 1e-6 || math.Abs(p.Y-want.Y) > 1e-6 {
		t.Errorf("bisector = %v, want %v", p, want)
	}
}

func TestPointsOppositeSides(t *testing.T) {
	l := seg(0, 0, 1, 0)
	s1, s2 := PointsOppositeSides(geom.Point{X: 0.5, Y: 1}, geom.Point{X: 0.5, Y: -1}, l)
	if s1 == s2 {
		t.Errorf("signs = (%d, %d), want opposite", s1, s2)
	}
	s1, s2 = PointsOppositeSides(geom.Point{X: 0.5, Y: 1}, geom.Point{X: 0.7, Y: 2}, l)
	if s1 != s2 {
		t.Errorf("signs = (%d, %d), want equal", s1, s2)
	}
}
