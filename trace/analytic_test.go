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

package trace

import (
	"errors"
	"math"
	"testing"

	"github.com/ctessum/geom"

	"github.com/fusionmodel/divgrid/geometry"
)

func testField() *AnalyticField {
	return &AnalyticField{Axis: geom.Point{X: 0, Y: 0}, A: 4}
}

func TestPsi(t *testing.T) {
	f := testField()
	tests := []struct {
		r, z, psi float64
	}{
		{r: 4, z: 0, psi: 1},
		{r: 0, z: 2, psi: 0.25},
		{r: 0, z: 0, psi: 0},
	}
	for _, test := range tests {
		if got := f.Psi(test.r, test.z); math.Abs(got-test.psi) > 1e-12 {
			t.Errorf("Psi(%g, %g) = %g, want %g", test.r, test.z, got, test.psi)
		}
	}
}

func TestTraceGradientToPsi(t *testing.T) {
	f := testField()
	l, err := f.TraceLine(geom.Point{X: 0, Y: -3.8}, PsiTarget{Psi: 0.81}, AcrossSurfaces, CW)
	if err != nil {
		t.Fatal(err)
	}
	_, end := l.Endpoints()
	if math.Abs(end.X) > 1e-9 || math.Abs(end.Y+3.6) > 1e-9 {
		t.Errorf("end = %v, want (0, -3.6)", end)
	}
	// The trace is sampled, not just a chord.
	if l.Len() < 10 {
		t.Errorf("trace has %d samples", l.Len())
	}
}

func TestTraceSurfaceClockwise(t *testing.T) {
	f := testField()
	// Start at the top of the rho=4 surface; trace cw (decreasing
	// angle) to the horizontal mid-plane on the east side.
	target := geometry.NewLine(geom.Point{X: -100, Y: 0}, geom.Point{X: 100, Y: 0})
	l, err := f.TraceLine(geom.Point{X: 0, Y: 4}, LineTarget{Line: target}, AlongSurface, CW)
	if err != nil {
		t.Fatal(err)
	}
	_, end := l.Endpoints()
	if math.Abs(end.X-4) > 1e-3 || math.Abs(end.Y) > 1e-3 {
		t.Errorf("cw trace ended at %v, want (4, 0)", end)
	}
	if got, want := l.Length(), 2*math.Pi; math.Abs(got-want) > 0.01 {
		t.Errorf("arc length = %g, want about %g", got, want)
	}
}

func TestTraceSurfaceNoConvergence(t *testing.T) {
	f := testField()
	target := geometry.NewLine(geom.Point{X: 10, Y: -1}, geom.Point{X: 10, Y: 1})
	_, err := f.TraceLine(geom.Point{X: 0, Y: 1}, LineTarget{Line: target}, AlongSurface, CW)
	if !errors.Is(err, ErrNoConvergence) {
		t.Errorf("err = %v, want ErrNoConvergence", err)
	}
}

func TestTraceConstZ(t *testing.T) {
	f := testField()
	// From (-3.9, 0) inward (cw = increasing R) to psi = 0.81.
	l, err := f.TraceLine(geom.Point{X: -3.9, Y: 0}, PsiAtConstZ{Psi: 0.81}, ConstantZ, CW)
	if err != nil {
		t.Fatal(err)
	}
	_, end := l.Endpoints()
	if math.Abs(end.X+3.6) > 1e-9 || math.Abs(end.Y) > 1e-12 {
		t.Errorf("end = %v, want (-3.6, 0)", end)
	}
}

func TestTraceConstR(t *testing.T) {
	f := testField()
	// From the top of the domain downward (ccw = decreasing Z).
	l, err := f.TraceLine(geom.Point{X: 0, Y: 3.9}, PsiAtConstR{Psi: 0.81}, ConstantR, CCW)
	if err != nil {
		t.Fatal(err)
	}
	_, end := l.Endpoints()
	if math.Abs(end.Y-3.6) > 1e-9 {
		t.Errorf("end = %v, want (0, 3.6)", end)
	}
}
