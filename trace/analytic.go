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
	"fmt"
	"math"

	"github.com/ctessum/geom"

	"github.com/fusionmodel/divgrid/geometry"
)

// AnalyticField is a model field with concentric circular flux surfaces
// about a magnetic axis: psi(r, z) = rho²/A², where rho is the distance
// from the axis. It implements both PsiEvaluator and Tracer by exact
// construction, so tests and examples can run without the numerical
// field integrator. CW traces follow decreasing polar angle; CW rho
// traces head toward the axis and CCW away from it.
type AnalyticField struct {
	Axis geom.Point
	// A is the normalization radius at which psi reaches 1.
	A float64

	// ArcStep is the angular step of along-surface traces in radians;
	// Steps bounds the iteration budget of marching traces. Zero values
	// use defaults suitable for tests.
	ArcStep float64
	Steps   int
}

// Psi returns the normalized flux at (r, z).
func (f *AnalyticField) Psi(r, z float64) float64 {
	rho := math.Hypot(r-f.Axis.X, z-f.Axis.Y)
	return rho * rho / (f.A * f.A)
}

// Radius returns the flux-surface radius of a psi level.
func (f *AnalyticField) Radius(psi float64) float64 {
	return f.A * math.Sqrt(psi)
}

func (f *AnalyticField) arcStep() float64 {
	if f.ArcStep > 0 {
		return f.ArcStep
	}
	return math.Pi / 720
}

func (f *AnalyticField) steps() int {
	if f.Steps > 0 {
		return f.Steps
	}
	return 4096
}

// TraceLine follows the analytic field from start until cond is met.
func (f *AnalyticField) TraceLine(start geom.Point, cond Condition, mode Mode, dir Direction) (geometry.Line, error) {
	var l geometry.Line
	var err error
	switch mode {
	case AlongSurface:
		l, err = f.traceSurface(start, cond, dir)
	case AcrossSurfaces:
		l, err = f.traceGradient(start, cond, dir)
	case ConstantZ:
		l, err = f.traceConstZ(start, cond, dir)
	case ConstantR:
		l, err = f.traceConstR(start, cond, dir)
	default:
		err = fmt.Errorf("trace: unknown mode %v", mode)
	}
	if err != nil {
		return geometry.Line{}, fmt.Errorf("trace: %v %v from (%g, %g): %w", mode, dir, start.X, start.Y, err)
	}
	return l, nil
}

func (f *AnalyticField) traceSurface(start geom.Point, cond Condition, dir Direction) (geometry.Line, error) {
	target, ok := cond.(LineTarget)
	if !ok {
		return geometry.Line{}, fmt.Errorf("condition %v is unreachable along a flux surface", cond)
	}
	rho := math.Hypot(start.X-f.Axis.X, start.Y-f.Axis.Y)
	if rho == 0 {
		return geometry.Line{}, fmt.Errorf("trace starts on the magnetic axis")
	}
	theta := math.Atan2(start.Y-f.Axis.Y, start.X-f.Axis.X)
	dtheta := f.arcStep()
	if dir == CW {
		dtheta = -dtheta
	}

	pts := []geom.Point{start}
	prev := start
	for i := 0; float64(i)*f.arcStep() < 2*math.Pi; i++ {
		theta += dtheta
		cur := geom.Point{X: f.Axis.X + rho*math.Cos(theta), Y: f.Axis.Y + rho*math.Sin(theta)}
		if hit, ok := crossing(prev, cur, target.Line); ok {
			pts = append(pts, hit)
			return geometry.Line{P: pts}, nil
		}
		pts = append(pts, cur)
		prev = cur
	}
	return geometry.Line{}, fmt.Errorf("flux surface never crossed the target line: %w", ErrNoConvergence)
}

func (f *AnalyticField) traceGradient(start geom.Point, cond Condition, dir Direction) (geometry.Line, error) {
	rho := math.Hypot(start.X-f.Axis.X, start.Y-f.Axis.Y)
	if rho == 0 {
		return geometry.Line{}, fmt.Errorf("trace starts on the magnetic axis")
	}
	ux := (start.X - f.Axis.X) / rho
	uy := (start.Y - f.Axis.Y) / rho

	switch c := cond.(type) {
	case PsiTarget:
		rhoEnd := f.Radius(c.Psi)
		return rayLine(f.Axis, ux, uy, rho, rhoEnd), nil
	case LineTarget:
		step := rho / 256
		if dir == CW { // toward the axis
			step = -step
		}
		pts := []geom.Point{start}
		prev := start
		r := rho
		for i := 0; i < f.steps(); i++ {
			r += step
			if r <= 0 {
				break
			}
			cur := geom.Point{X: f.Axis.X + r*ux, Y: f.Axis.Y + r*uy}
			if hit, ok := crossing(prev, cur, c.Line); ok {
				pts = append(pts, hit)
				return geometry.Line{P: pts}, nil
			}
			pts = append(pts, cur)
			prev = cur
		}
		return geometry.Line{}, fmt.Errorf("flux gradient never crossed the target line: %w", ErrNoConvergence)
	}
	return geometry.Line{}, fmt.Errorf("condition %v is not valid across flux surfaces", cond)
}

func (f *AnalyticField) traceConstZ(start geom.Point, cond Condition, dir Direction) (geometry.Line, error) {
	c, ok := cond.(PsiAtConstZ)
	if !ok {
		return geometry.Line{}, fmt.Errorf("condition %v is not valid at constant Z", cond)
	}
	dz := start.Y - f.Axis.Y
	rhoEnd := f.Radius(c.Psi)
	if math.Abs(dz) > rhoEnd {
		return geometry.Line{}, fmt.Errorf("psi=%g unreachable at Z=%g: %w", c.Psi, start.Y, ErrNoConvergence)
	}
	half := math.Sqrt(rhoEnd*rhoEnd - dz*dz)
	end, err := pickRoot(start.X, f.Axis.X-half, f.Axis.X+half, dir)
	if err != nil {
		return geometry.Line{}, err
	}
	return chordLine(start, geom.Point{X: end, Y: start.Y}), nil
}

func (f *AnalyticField) traceConstR(start geom.Point, cond Condition, dir Direction) (geometry.Line, error) {
	c, ok := cond.(PsiAtConstR)
	if !ok {
		return geometry.Line{}, fmt.Errorf("condition %v is not valid at constant R", cond)
	}
	dr := start.X - f.Axis.X
	rhoEnd := f.Radius(c.Psi)
	if math.Abs(dr) > rhoEnd {
		return geometry.Line{}, fmt.Errorf("psi=%g unreachable at R=%g: %w", c.Psi, start.X, ErrNoConvergence)
	}
	half := math.Sqrt(rhoEnd*rhoEnd - dr*dr)
	end, err := pickRoot(start.Y, f.Axis.Y-half, f.Axis.Y+half, dir)
	if err != nil {
		return geometry.Line{}, err
	}
	return chordLine(start, geom.Point{X: start.X, Y: end}), nil
}

// pickRoot chooses between the two crossings of a psi level along a
// coordinate line: CW moves toward increasing coordinate, CCW toward
// decreasing.
func pickRoot(from, lo, hi float64, dir Direction) (float64, error) {
	if dir == CW {
		switch {
		case lo > from:
			return lo, nil
		case hi > from:
			return hi, nil
		}
		return 0, fmt.Errorf("no psi crossing in the cw direction: %w", ErrNoConvergence)
	}
	switch {
	case hi < from:
		return hi, nil
	case lo < from:
		return lo, nil
	}
	return 0, fmt.Errorf("no psi crossing in the ccw direction: %w", ErrNoConvergence)
}

// crossing tests the segment (a, b) against every segment of target and
// returns the first intersection.
func crossing(a, b geom.Point, target geometry.Line) (geom.Point, bool) {
	seg := geometry.Line{P: []geom.Point{a, b}}
	for i := 0; i < target.Len()-1; i++ {
		tseg := geometry.Line{P: target.P[i : i+2]}
		if p, ok := geometry.SegmentIntersectPoint(seg, tseg); ok {
			return p, true
		}
	}
	return geom.Point{}, false
}

const sampleCount = 33

func rayLine(axis geom.Point, ux, uy, rho0, rho1 float64) geometry.Line {
	pts := make([]geom.Point, sampleCount)
	for i := range pts {
		r := rho0 + (rho1-rho0)*float64(i)/float64(sampleCount-1)
		pts[i] = geom.Point{X: axis.X + r*ux, Y: axis.Y + r*uy}
	}
	return geometry.Line{P: pts}
}

func chordLine(a, b geom.Point) geometry.Line {
	pts := make([]geom.Point, sampleCount)
	for i := range pts {
		f := float64(i) / float64(sampleCount-1)
		pts[i] = geom.Point{X: a.X + f*(b.X-a.X), Y: a.Y + f*(b.Y-a.Y)}
	}
	return geometry.Line{P: pts}
}
