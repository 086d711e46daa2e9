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

/*Package topology assembles the fixed patch set of a magnetic
configuration family. For the two-null "45 degree" divertor family it
runs a deterministic recipe of flux-tracer calls, splits, and reversals
that produces 27 named patches in two disconnected regions, then snaps
X-point corners and checks plate-adjacent boundaries against the
declared plate geometry.*/
package topology

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"

	"github.com/fusionmodel/divgrid/geometry"
	"github.com/fusionmodel/divgrid/trace"
)

// refLineExtent extends the reference lines far beyond any plausible
// domain, so every traced curve is guaranteed to intersect them.
const refLineExtent = 1e6

// Params carries the resolved configuration the assembler needs: the
// (shift-adjusted) magnetic axis, reference-line tilts, psi levels, the
// two X-points with their trace seed points, and the plate geometry.
type Params struct {
	MagAxis    geom.Point
	InnerTilt  float64
	OuterTilt  float64
	PsiMaxWest float64
	PsiMaxEast float64
	PsiMinCore float64
	PsiMinPF   float64
	PsiPF2     float64

	Xpt1, Xpt2 trace.XPoint

	WestPlate1, WestPlate2 geometry.Line
	EastPlate1, EastPlate2 geometry.Line

	// LimiterClosed marks the plates as sub-arcs of one closed limiter
	// curve, enabling cyclic rotation before span extraction.
	LimiterClosed bool
}

// Assembler builds the SF45 patch topology.
type Assembler struct {
	Tracer trace.Tracer
	Psi    trace.PsiEvaluator
	Params Params
}

// Result is the outcome of one topology construction run. Unresolved
// maps each patch that could not be constructed to the failure that
// blocked it; re-invoking Build after the upstream issue is fixed
// retries the whole deterministic recipe.
type Result struct {
	Patches    map[string]*geometry.Patch
	Order      []string
	Adjacency  *Adjacency
	Unresolved map[string]error
}

// Patch returns a named patch, failing loudly on a missing key.
func (r *Result) Patch(name string) (*geometry.Patch, error) {
	if p, ok := r.Patches[name]; ok {
		return p, nil
	}
	if err, ok := r.Unresolved[name]; ok {
		return nil, fmt.Errorf("topology: patch %s is unresolved: %w", name, err)
	}
	return nil, fmt.Errorf("topology: no patch named %s in this configuration", name)
}

// Build runs the construction recipe. Individual trace or split
// failures abort only the patches that need the failed line; the error
// is non-nil only when no patch could be constructed at all.
func (a *Assembler) Build() (*Result, error) {
	b := &builder{
		a:      a,
		failed: make(map[string]error),
	}
	r := &Result{
		Patches:    make(map[string]*geometry.Patch),
		Order:      patchOrder(),
		Adjacency:  sf45Adjacency(),
		Unresolved: make(map[string]error),
	}
	a.construct(b, r)
	if len(r.Patches) == 0 {
		return r, fmt.Errorf("topology: no patch could be constructed: %v", firstError(r.Unresolved))
	}
	return r, nil
}

func firstError(m map[string]error) error {
	for _, err := range m {
		return err
	}
	return nil
}

// patchOrder is the fixed construction and iteration order of the SF45
// patch set, outermost radial index first within each column.
func patchOrder() []string {
	var order []string
	for _, col := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"} {
		for _, row := range []string{"3", "2", "1"} {
			order = append(order, col+row)
		}
	}
	return order
}

// builder accumulates named lines and per-line failures while the
// recipe runs. A zero-length line marks an unavailable result; every
// derived operation propagates unavailability instead of panicking, so
// one failed trace only poisons the patches that depend on it.
type builder struct {
	a      *Assembler
	failed map[string]error
}

func valid(l geometry.Line) bool { return l.Len() >= 2 }

func (b *builder) fail(name string, err error) geometry.Line {
	if _, ok := b.failed[name]; !ok {
		b.failed[name] = err
		logrus.WithField("line", name).WithError(err).Warn("topology: line construction failed")
	}
	return geometry.Line{}
}

// draw traces a line from start, recording the result under name.
func (b *builder) draw(name string, start geom.Point, startOK bool, cond trace.Condition, mode trace.Mode, dir trace.Direction) geometry.Line {
	if !startOK {
		return b.fail(name, fmt.Errorf("start point unavailable"))
	}
	if lt, ok := cond.(trace.LineTarget); ok && !valid(lt.Line) {
		return b.fail(name, fmt.Errorf("target line unavailable"))
	}
	l, err := b.a.Tracer.TraceLine(start, cond, mode, dir)
	if err != nil {
		return b.fail(name, err)
	}
	return l
}

// split divides l at the sample nearest p, inserting p exactly, and
// records failures under both piece names.
func (b *builder) split(nameA, nameB string, l geometry.Line, p geom.Point, pOK bool) (geometry.Line, geometry.Line) {
	if !valid(l) || !pOK {
		err := fmt.Errorf("line or split point unavailable")
		return b.fail(nameA, err), b.fail(nameB, err)
	}
	first, second, err := l.Split(p, true)
	if err != nil {
		return b.fail(nameA, err), b.fail(nameB, err)
	}
	return first, second
}

// rev is ReverseCopy that preserves unavailability.
func rev(l geometry.Line) geometry.Line {
	if !valid(l) {
		return geometry.Line{}
	}
	return l.ReverseCopy()
}

// start and end return a line's endpoints, reporting availability.
func start(l geometry.Line) (geom.Point, bool) {
	if !valid(l) {
		return geom.Point{}, false
	}
	p, _ := l.Endpoints()
	return p, true
}

func end(l geometry.Line) (geom.Point, bool) {
	if !valid(l) {
		return geom.Point{}, false
	}
	_, p := l.Endpoints()
	return p, true
}

// target wraps a previously produced line as a trace boundary
// condition.
func target(l geometry.Line) trace.Condition {
	return trace.LineTarget{Line: l}
}

// refLine returns the infinite reference line through p at the given
// tilt, extended to refLineExtent on both sides.
func refLine(p geom.Point, tilt float64) geometry.Line {
	return geometry.NewLine(
		geom.Point{X: p.X - refLineExtent*math.Cos(tilt), Y: p.Y - refLineExtent*math.Sin(tilt)},
		geom.Point{X: p.X + refLineExtent*math.Cos(tilt), Y: p.Y + refLineExtent*math.Sin(tilt)},
	)
}

// verticalLine returns the vertical reference line through p.
func verticalLine(p geom.Point) geometry.Line {
	return geometry.NewLine(
		geom.Point{X: p.X, Y: p.Y - refLineExtent},
		geom.Point{X: p.X, Y: p.Y + refLineExtent},
	)
}

// plateSection extracts the plate span between two strike points: the
// samples from the one nearest from up to the one nearest to, with the
// exact to appended. A closed limiter whose span wraps past the seam is
// cyclically rotated first so the span is extractable.
func (b *builder) plateSection(name string, plate geometry.Line, from geom.Point, fromOK bool, to geom.Point, toOK bool) geometry.Line {
	if !fromOK || !toOK {
		return b.fail(name, fmt.Errorf("strike point unavailable"))
	}
	if !valid(plate) {
		return b.fail(name, fmt.Errorf("plate geometry unavailable"))
	}
	i1 := plate.NearestIndex(from)
	i2 := plate.NearestIndex(to)
	if i2 <= i1 {
		if !b.a.Params.LimiterClosed {
			return b.fail(name, fmt.Errorf("plate span ends (sample %d) before it starts (sample %d)", i2, i1))
		}
		plate = plate.RotateToward(from)
		i1 = 0
		i2 = plate.NearestIndex(to)
		if i2 == 0 {
			return b.fail(name, fmt.Errorf("limiter span collapses after rotation"))
		}
	}
	sec := append([]geom.Point{}, plate.P[i1:i2+1]...)
	if sec[len(sec)-1] != to {
		sec = append(sec, to)
	}
	return geometry.Line{P: sec}
}

// patch assembles a named patch once all four boundaries are available;
// otherwise it records the patch as unresolved with the blocking
// failures.
func (b *builder) patch(r *Result, name string, n, e, s, w geometry.Line, plate bool, plateSide geometry.Side) {
	sides := []geometry.Side{geometry.North, geometry.East, geometry.South, geometry.West}
	for i, l := range []geometry.Line{n, e, s, w} {
		if !valid(l) {
			side := sides[i]
			r.Unresolved[name] = fmt.Errorf("boundary %v unavailable", side)
			logrus.WithField("patch", name).WithField("side", side.String()).
				Warn("topology: patch left unresolved")
			return
		}
	}
	if plate {
		r.Patches[name] = geometry.NewPlatePatch(name, n, e, s, w, plateSide)
		return
	}
	r.Patches[name] = geometry.NewPatch(name, n, e, s, w)
}
