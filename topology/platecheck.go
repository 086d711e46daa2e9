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

package topology

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"github.com/fusionmodel/divgrid/geometry"
)

// PlateReport records how closely one plate-adjacent patch boundary
// follows its declared plate.
type PlateReport struct {
	Patch       string
	Side        geometry.Side
	MaxDistance float64
	OK          bool
}

// plateIndex builds a spatial index over a plate's segments. Each
// segment goes in as a two-point LineString so queries can use its
// point-to-segment distance directly.
func plateIndex(plate geometry.Line) *rtree.Rtree {
	tree := rtree.NewTree(25, 50)
	for i := 0; i < plate.Len()-1; i++ {
		tree.Insert(geom.LineString{plate.P[i], plate.P[i+1]})
	}
	return tree
}

// plateFor maps a plate patch to the plate its boundary must follow.
func (a *Assembler) plateFor(name string) (geometry.Line, bool) {
	switch name[0] {
	case 'A':
		return a.Params.WestPlate1, true
	case 'H':
		return a.Params.WestPlate2, true
	case 'I':
		return a.Params.EastPlate1, true
	case 'G':
		return a.Params.EastPlate2, true
	}
	return geometry.Line{}, false
}

// CheckPatches verifies that every resolved plate patch keeps its
// plate-side boundary within tol of the declared plate geometry. The
// reports are ordered by patch name; OK is false where the boundary
// strays.
func (a *Assembler) CheckPatches(r *Result, tol float64) []PlateReport {
	indexes := make(map[byte]*rtree.Rtree)
	var out []PlateReport
	for name, p := range r.Patches {
		if !p.PlatePatch {
			continue
		}
		plate, ok := a.plateFor(name)
		if !ok {
			continue
		}
		tree, ok := indexes[name[0]]
		if !ok {
			tree = plateIndex(plate)
			indexes[name[0]] = tree
		}
		out = append(out, PlateReport{
			Patch:       name,
			Side:        p.PlateSide,
			MaxDistance: maxPlateDistance(p.Boundary(p.PlateSide), tree, tol),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Patch < out[j].Patch })
	for i := range out {
		out[i].OK = out[i].MaxDistance <= tol
	}
	return out
}

// maxPlateDistance is the largest distance from any boundary sample to
// the indexed plate. A sample with no plate segment inside its tol
// search box counts as infinitely far.
func maxPlateDistance(boundary geometry.Line, tree *rtree.Rtree, tol float64) float64 {
	var worst float64
	for _, p := range boundary.P {
		bb := &geom.Bounds{
			Min: geom.Point{X: p.X - tol, Y: p.Y - tol},
			Max: geom.Point{X: p.X + tol, Y: p.Y + tol},
		}
		best := math.Inf(1)
		for _, hit := range tree.SearchIntersect(bb) {
			if d := hit.(geom.LineString).Distance(p); d < best {
				best = d
			}
		}
		if best > worst {
			worst = best
		}
	}
	return worst
}
