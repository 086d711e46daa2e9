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
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/fusionmodel/divgrid/geometry"
	"github.com/fusionmodel/divgrid/trace"
)

// boundarySpline is a cubic parameterization of one patch boundary,
// fitted through the finely resampled line rather than the raw sparse
// samples.
type boundarySpline struct {
	x, y interp.NaturalCubic
}

// At evaluates the boundary at parameter u in [0, 1].
func (s *boundarySpline) At(u float64) geom.Point {
	return geom.Point{X: s.x.Predict(u), Y: s.y.Predict(u)}
}

// Anchors evaluates the boundary at n evenly spaced parameters.
func (s *boundarySpline) Anchors(n int) []geom.Point {
	out := make([]geom.Point, n)
	for i := range out {
		out[i] = s.At(float64(i) / float64(n-1))
	}
	return out
}

// fitArclength fits a spline through the fluffed line, parameterized by
// normalized sample index. Used for the poloidal (N/S) boundaries.
func fitArclength(l geometry.Line, resolution int) (*boundarySpline, error) {
	f := l.Fluff(resolution)
	us := make([]float64, f.Len())
	floats.Span(us, 0, 1)
	return fit(f, us)
}

// fitPsi fits a spline through the fluffed line, parameterized by
// normalized flux: u_i = |psi_i - psi_0| / |psi_end - psi_0|. Flux is
// the natural radial coordinate, so the radial (E/W) boundaries use it
// instead of arclength.
func fitPsi(l geometry.Line, psi trace.PsiEvaluator, resolution int) (*boundarySpline, error) {
	f := l.Fluff(resolution)
	us, err := psiParameterize(f, psi)
	if err != nil {
		return nil, err
	}
	return fit(f, us)
}

func fit(f geometry.Line, us []float64) (*boundarySpline, error) {
	if f.Len() < 4 {
		return nil, fmt.Errorf("subgrid: %d samples are too few to fit a cubic boundary", f.Len())
	}
	xs := make([]float64, f.Len())
	ys := make([]float64, f.Len())
	for i, p := range f.P {
		xs[i] = p.X
		ys[i] = p.Y
	}
	var s boundarySpline
	if err := s.x.Fit(us, xs); err != nil {
		return nil, fmt.Errorf("subgrid: fitting boundary spline: %w", err)
	}
	if err := s.y.Fit(us, ys); err != nil {
		return nil, fmt.Errorf("subgrid: fitting boundary spline: %w", err)
	}
	return &s, nil
}

func psiParameterize(f geometry.Line, psi trace.PsiEvaluator) ([]float64, error) {
	first, last := f.Endpoints()
	v0 := psi.Psi(first.X, first.Y)
	v1 := psi.Psi(last.X, last.Y)
	span := math.Abs(v1 - v0)
	if span == 0 {
		return nil, fmt.Errorf("subgrid: boundary spans no flux (psi=%g at both ends)", v0)
	}
	us := make([]float64, f.Len())
	for i, p := range f.P {
		us[i] = math.Abs(psi.Psi(p.X, p.Y)-v0) / span
	}
	// A non-monotone parameterization makes the fit ill-conditioned;
	// the patch is reported degenerate rather than silently smoothed.
	for i := 1; i < len(us); i++ {
		if us[i] <= us[i-1] {
			return nil, fmt.Errorf("subgrid: flux parameterization is not monotone at sample %d (u=%g after %g)",
				i, us[i], us[i-1])
		}
	}
	return us, nil
}
