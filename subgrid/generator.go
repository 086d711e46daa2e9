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

/*Package subgrid fills a topological patch with a structured cell mesh.
The four patch boundaries are re-parameterized with cubic splines —
poloidal boundaries by arclength-like sample index, radial boundaries by
normalized flux — and the interior is built column by column from
along-flux-surface traces, reusing every shared vertex exactly.*/
package subgrid

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"

	"github.com/fusionmodel/divgrid/geometry"
	"github.com/fusionmodel/divgrid/trace"
)

// DefaultResolution is the per-segment subdivision applied to boundary
// lines before spline fitting.
const DefaultResolution = 100

// boundExtension lengthens each poloidal bounding chord beyond its
// anchors, so a surface trace at the exact boundary radius still
// crosses it despite spline sag.
const boundExtension = 0.05

// Generator fills patches with structured sub-meshes.
type Generator struct {
	Tracer trace.Tracer
	Psi    trace.PsiEvaluator

	// Resolution overrides DefaultResolution when positive.
	Resolution int
}

func (g *Generator) resolution() int {
	if g.Resolution > 0 {
		return g.Resolution
	}
	return DefaultResolution
}

// Fill generates a (nrad-1) x (npol-1) cell mesh inside p, where npol
// and nrad are the boundary anchor counts of the patch's region. On
// failure the patch is left unfilled and the error names it; the fill
// may be retried after the upstream issue is fixed.
func (g *Generator) Fill(p *geometry.Patch, npol, nrad int) error {
	if npol < 2 || nrad < 2 {
		return fmt.Errorf("subgrid: patch %s: anchor counts (%d, %d) must be at least 2", p.Name, npol, nrad)
	}
	res := g.resolution()

	nSpl, err := fitArclength(p.N, res)
	if err != nil {
		return fmt.Errorf("subgrid: patch %s north boundary: %w", p.Name, err)
	}
	// The south and east boundaries run opposite to the north and west;
	// reversed copies align all four parameterizations.
	sSpl, err := fitArclength(p.S.ReverseCopy(), res)
	if err != nil {
		return fmt.Errorf("subgrid: patch %s south boundary: %w", p.Name, err)
	}
	wSpl, err := fitPsi(p.W, g.Psi, res)
	if err != nil {
		return fmt.Errorf("subgrid: patch %s west boundary: %w", p.Name, err)
	}
	// The east fit's anchors are never consumed, but a boundary that
	// cannot carry a monotone psi parameterization must still reject the
	// patch before any cells are built.
	if _, err := fitPsi(p.E.ReverseCopy(), g.Psi, res); err != nil {
		return fmt.Errorf("subgrid: patch %s east boundary: %w", p.Name, err)
	}

	nVerts := nSpl.Anchors(npol)
	sVerts := sSpl.Anchors(npol)
	wVerts := wSpl.Anchors(nrad)

	bounds := make([]geometry.Line, 0, npol-1)
	for i := 1; i < npol; i++ {
		bounds = append(bounds, extendChord(nVerts[i], sVerts[i]))
	}

	logrus.WithFields(logrus.Fields{
		"patch": p.Name,
		"npol":  npol,
		"nrad":  nrad,
	}).Debug("generating subgrid")

	cells := make([][]geometry.Cell, nrad-1)

	// March column by column. The frontier holds the western vertices of
	// the next column, south to north; each column's far-edge vertices
	// become the next frontier unchanged, so adjacent cells never hold
	// independently computed copies of a shared vertex.
	frontier := wVerts
	for ix, bound := range bounds {
		traces := make([]geometry.Line, len(frontier))
		for j, start := range frontier {
			t, err := g.Tracer.TraceLine(start, trace.LineTarget{Line: bound}, trace.AlongSurface, trace.CW)
			if err != nil {
				return fmt.Errorf("subgrid: patch %s, column %d, radial anchor %d: %w", p.Name, ix, j, err)
			}
			traces[j] = t
		}
		next := make([]geom.Point, len(frontier))
		for j, t := range traces {
			_, far := t.Endpoints()
			next[j] = far
		}
		for j := 0; j < len(traces)-1; j++ {
			// The cell's south edge is the shared trace of the cell
			// below, reversed; straight east/west edges close it.
			n := traces[j+1]
			s := traces[j].ReverseCopy()
			nFirst, nLast := n.Endpoints()
			sFirst, sLast := s.Endpoints()
			e := geometry.NewLine(nLast, sFirst)
			w := geometry.NewLine(sLast, nFirst)
			cells[j] = append(cells[j], geometry.NewCell(n, s, e, w))
		}
		frontier = next
	}

	p.Cells = cells
	return nil
}

// extendChord returns the poloidal bounding chord from the north anchor
// to the south anchor, lengthened a little past both.
func extendChord(n, s geom.Point) geometry.Line {
	dx, dy := n.X-s.X, n.Y-s.Y
	return geometry.NewLine(
		geom.Point{X: n.X + boundExtension*dx, Y: n.Y + boundExtension*dy},
		geom.Point{X: s.X - boundExtension*dx, Y: s.Y - boundExtension*dy},
	)
}
