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
	"math"

	"github.com/ctessum/geom"
)

// Line is an ordered sequence of points in the poloidal plane. Lines are
// the boundary curves of cells and patches. A Line shared between two
// patches must be treated as immutable; every operation below returns a
// new Line and leaves the receiver untouched.
type Line struct {
	P []geom.Point
}

// NewLine returns a line through the given points.
func NewLine(pts ...geom.Point) Line {
	p := make([]geom.Point, len(pts))
	copy(p, pts)
	return Line{P: p}
}

// Len returns the number of samples in the line.
func (l Line) Len() int { return len(l.P) }

// Length returns the sum of consecutive Euclidean distances between
// samples. It is invariant under ReverseCopy.
func (l Line) Length() float64 {
	var sum float64
	for i := 0; i < len(l.P)-1; i++ {
		sum += dist(l.P[i], l.P[i+1])
	}
	return sum
}

// Endpoints returns the first and last samples of the line.
func (l Line) Endpoints() (geom.Point, geom.Point) {
	return l.P[0], l.P[len(l.P)-1]
}

// ReverseCopy returns a new Line with the point order reversed.
func (l Line) ReverseCopy() Line {
	p := make([]geom.Point, len(l.P))
	for i, pt := range l.P {
		p[len(l.P)-1-i] = pt
	}
	return Line{P: p}
}

// Straighten returns the chord through the line's endpoints.
func (l Line) Straighten() Line {
	a, b := l.Endpoints()
	return NewLine(a, b)
}

// Fluff returns a finely resampled copy of the line, linearly
// interpolating resolution points on each original segment. The final
// original sample is kept, so the result has
// resolution*(Len()-1)+1 points. Spline fits use the fluffed line
// rather than the raw sparse samples.
func (l Line) Fluff(resolution int) Line {
	if resolution < 1 {
		resolution = 1
	}
	p := make([]geom.Point, 0, resolution*(len(l.P)-1)+1)
	for i := 0; i < len(l.P)-1; i++ {
		a, b := l.P[i], l.P[i+1]
		for k := 0; k < resolution; k++ {
			f := float64(k) / float64(resolution)
			p = append(p, geom.Point{X: a.X + f*(b.X-a.X), Y: a.Y + f*(b.Y-a.Y)})
		}
	}
	p = append(p, l.P[len(l.P)-1])
	return Line{P: p}
}

// NearestIndex returns the index of the sample closest to p.
func (l Line) NearestIndex(p geom.Point) int {
	best := 0
	bestD := dist(l.P[0], p)
	for i := 1; i < len(l.P); i++ {
		if d := dist(l.P[i], p); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// Split divides the line at the sample nearest p and returns the two
// pieces, which share the split sample. If insertExact is set and p is
// not already a sample, p is inserted exactly at the split boundary
// before dividing, so both pieces end and begin at p. An error is
// returned if the split would leave a degenerate piece.
func (l Line) Split(p geom.Point, insertExact bool) (Line, Line, error) {
	if len(l.P) < 3 {
		return Line{}, Line{}, fmt.Errorf("geometry: cannot split a line with %d samples", len(l.P))
	}
	ind := l.NearestIndex(p)
	if ind == 0 || ind == len(l.P)-1 {
		return Line{}, Line{}, fmt.Errorf("geometry: split point (%g, %g) falls at a line endpoint", p.X, p.Y)
	}
	if insertExact && l.P[ind] != p {
		first := append(append([]geom.Point{}, l.P[:ind+1]...), p)
		second := append([]geom.Point{p}, l.P[ind+1:]...)
		return Line{P: first}, Line{P: second}, nil
	}
	first := append([]geom.Point{}, l.P[:ind+1]...)
	second := append([]geom.Point{}, l.P[ind:]...)
	return Line{P: first}, Line{P: second}, nil
}

// RotateToward cyclically rotates a closed curve so the sample nearest p
// becomes the first sample. It is used to reorder limiter curves before
// splitting out a sub-arc whose end index would otherwise precede its
// start index.
func (l Line) RotateToward(p geom.Point) Line {
	ind := l.NearestIndex(p)
	rotated := make([]geom.Point, 0, len(l.P))
	rotated = append(rotated, l.P[ind:]...)
	rotated = append(rotated, l.P[:ind]...)
	return Line{P: rotated}
}

// Bounds returns the bounding box of the line.
func (l Line) Bounds() *geom.Bounds {
	b := &geom.Bounds{Min: l.P[0], Max: l.P[0]}
	for _, p := range l.P[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}
