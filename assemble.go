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

package divgrid

import (
	"fmt"
	"io"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"

	"github.com/fusionmodel/divgrid/geometry"
	"github.com/fusionmodel/divgrid/topology"
	"github.com/fusionmodel/divgrid/trace"
)

// Grid is the assembled global mesh. RM and ZM hold the R and Z
// coordinates of the five characteristic points of every cell (center
// then the four corners, indexed by geometry.Corner), with shape
// (NumPol, NumRad, 5). Index 0 and the last index of each horizontal
// dimension are guard cells. PSI holds the normalized flux at the same
// points when an evaluator was supplied.
type Grid struct {
	NumPol, NumRad int
	RM, ZM, PSI    *sparse.DenseArray
}

// AssembleGrid builds the global arrays from the per-region patch
// matrices, concatenating the regions poloidally. All regions must have
// the same radial extent. Guard cells are extrapolated outward from the
// adjacent interior cell by eps.
func AssembleGrid(regions []*topology.PatchMatrix, psi trace.PsiEvaluator, eps float64) (*Grid, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("divgrid: no patch matrices to assemble")
	}
	nr := regions[0].TotalRad()
	np := 0
	for i, m := range regions {
		if m.TotalRad() != nr {
			return nil, fmt.Errorf("divgrid: region %d has radial extent %d, want %d to concatenate",
				i, m.TotalRad(), nr)
		}
		np += m.TotalPol()
	}

	g := &Grid{
		NumPol: np,
		NumRad: nr,
		RM:     sparse.ZerosDense(np, nr, geometry.NumCorners),
		ZM:     sparse.ZerosDense(np, nr, geometry.NumCorners),
	}
	ixOff := 0
	for _, m := range regions {
		g.assembleRegion(m, ixOff, eps)
		ixOff += m.TotalPol()
	}

	if psi != nil {
		g.PSI = sparse.ZerosDense(np, nr, geometry.NumCorners)
		for i, r := range g.RM.Elements {
			g.PSI.Elements[i] = psi.Psi(r, g.ZM.Elements[i])
		}
	}
	return g, nil
}

// vertex accessors working in (R, Z) points.

func (g *Grid) point(ix, jy int, c geometry.Corner) geom.Point {
	return geom.Point{X: g.RM.Get(ix, jy, int(c)), Y: g.ZM.Get(ix, jy, int(c))}
}

func (g *Grid) setPoint(ix, jy int, c geometry.Corner, p geom.Point) {
	g.RM.Set(p.X, ix, jy, int(c))
	g.ZM.Set(p.Y, ix, jy, int(c))
}

func (g *Grid) recenter(ix, jy int) {
	var r, z float64
	for _, c := range []geometry.Corner{geometry.SW, geometry.SE, geometry.NW, geometry.NE} {
		p := g.point(ix, jy, c)
		r += p.X / 4
		z += p.Y / 4
	}
	g.setPoint(ix, jy, geometry.Center, geom.Point{X: r, Y: z})
}

// assembleRegion writes one region's cells into the global arrays
// starting at poloidal offset ixOff, then fills the region's guard
// ring.
func (g *Grid) assembleRegion(m *topology.PatchMatrix, ixOff int, eps float64) {
	jOff := ixOff + 1
	for j := 0; j < m.NumCols(); j++ {
		iOff := 1
		for i := 0; i < m.NumRows(); i++ {
			p := m.At(i, j)
			for jyl, row := range p.Cells {
				for ixl, cell := range row {
					ix := jOff + ixl
					jy := iOff + jyl
					for c := 0; c < geometry.NumCorners; c++ {
						g.setPoint(ix, jy, geometry.Corner(c), cell.Vertices[c])
					}
				}
			}
			iOff += m.At(i, j).NumRad() - 1
		}
		jOff += m.At(0, j).NumPol() - 1
	}

	np := m.TotalPol()
	nr := m.TotalRad()

	// Poloidal guard columns, extrapolated from the first and last
	// interior columns.
	for jy := 1; jy < nr-1; jy++ {
		g.extrapolate(ixOff, jy, ixOff+1, jy,
			[2]geometry.Corner{geometry.SE, geometry.SW}, [2]geometry.Corner{geometry.NE, geometry.NW})
		g.extrapolate(ixOff+np-1, jy, ixOff+np-2, jy,
			[2]geometry.Corner{geometry.SW, geometry.SE}, [2]geometry.Corner{geometry.NW, geometry.NE})
	}
	// Radial guard rows, covering the guard corners from the already
	// filled poloidal guards.
	for ix := ixOff; ix < ixOff+np; ix++ {
		g.extrapolate(ix, 0, ix, 1,
			[2]geometry.Corner{geometry.NW, geometry.SW}, [2]geometry.Corner{geometry.NE, geometry.SE})
		g.extrapolate(ix, nr-1, ix, nr-2,
			[2]geometry.Corner{geometry.SW, geometry.NW}, [2]geometry.Corner{geometry.SE, geometry.NE})
	}
	g.scaleGuards(m, ixOff, eps)
}

// extrapolate fills a guard cell from its interior neighbor. For each
// (near, far) guard corner pair the roles mirror across the shared
// face: the guard's near corner coincides with the interior's far-side
// corner, and the guard's far corner continues the interior edge
// outward by one full step. scaleGuards later shrinks that step to eps.
func (g *Grid) extrapolate(gix, gjy, iix, ijy int, pair1, pair2 [2]geometry.Corner) {
	for _, pair := range [][2]geometry.Corner{pair1, pair2} {
		near, far := pair[0], pair[1]
		a := g.point(iix, ijy, far)
		b := g.point(iix, ijy, near)
		g.setPoint(gix, gjy, near, a)
		g.setPoint(gix, gjy, far, geom.Point{X: a.X + (a.X - b.X), Y: a.Y + (a.Y - b.Y)})
	}
	g.recenter(gix, gjy)
}

// scaleGuards shrinks every guard cell's outward extent to eps times
// the adjacent interior edge.
func (g *Grid) scaleGuards(m *topology.PatchMatrix, ixOff int, eps float64) {
	np := m.TotalPol()
	nr := m.TotalRad()
	shrink := func(gix, gjy int, near, far geometry.Corner) {
		a := g.point(gix, gjy, near)
		b := g.point(gix, gjy, far)
		g.setPoint(gix, gjy, far, geom.Point{
			X: a.X + eps*(b.X-a.X),
			Y: a.Y + eps*(b.Y-a.Y),
		})
	}
	for jy := 0; jy < nr; jy++ {
		shrink(ixOff, jy, geometry.SE, geometry.SW)
		shrink(ixOff, jy, geometry.NE, geometry.NW)
		shrink(ixOff+np-1, jy, geometry.SW, geometry.SE)
		shrink(ixOff+np-1, jy, geometry.NW, geometry.NE)
		g.recenter(ixOff, jy)
		g.recenter(ixOff+np-1, jy)
	}
	for ix := ixOff; ix < ixOff+np; ix++ {
		shrink(ix, 0, geometry.NW, geometry.SW)
		shrink(ix, 0, geometry.NE, geometry.SE)
		shrink(ix, nr-1, geometry.SW, geometry.NW)
		shrink(ix, nr-1, geometry.SE, geometry.NE)
		g.recenter(ix, 0)
		g.recenter(ix, nr-1)
	}
}

// WriteGridue writes the grid in the plain-text exchange format read by
// edge transport codes: a header with the interior extents followed by
// the RM, ZM, and PSI arrays in poloidal-major order, three values per
// line.
func (g *Grid) WriteGridue(w io.Writer) error {
	if g.PSI == nil {
		return fmt.Errorf("divgrid: grid has no psi values to export")
	}
	if _, err := fmt.Fprintf(w, "%d %d\n", g.NumPol-2, g.NumRad-2); err != nil {
		return fmt.Errorf("divgrid: writing gridue header: %w", err)
	}
	for _, arr := range []*sparse.DenseArray{g.RM, g.ZM, g.PSI} {
		for i, v := range arr.Elements {
			sep := " "
			if i%3 == 2 || i == len(arr.Elements)-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%23.15E%s", v, sep); err != nil {
				return fmt.Errorf("divgrid: writing gridue body: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("divgrid: writing gridue body: %w", err)
		}
	}
	return nil
}
