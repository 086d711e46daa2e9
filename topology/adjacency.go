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
	"fmt"
	"math"

	"github.com/ctessum/geom"

	"github.com/fusionmodel/divgrid/geometry"
)

// Neighbor identifies the patch and side on the far side of a shared
// boundary.
type Neighbor struct {
	Patch string
	Side  geometry.Side
}

// Adjacency is the fixed neighbor graph of a patch topology. Sides with
// no entry face a domain boundary: the core hole, a private-flux floor,
// the outermost flux surface, or a target plate.
type Adjacency struct {
	links map[string]map[geometry.Side]Neighbor
}

// Neighbor returns the patch across the given side. The second return
// is false when that side faces a domain boundary; an unknown patch
// name is an error.
func (a *Adjacency) Neighbor(patch string, side geometry.Side) (Neighbor, bool, error) {
	sides, ok := a.links[patch]
	if !ok {
		return Neighbor{}, false, fmt.Errorf("topology: unknown patch %q in adjacency lookup", patch)
	}
	n, ok := sides[side]
	return n, ok, nil
}

// Links returns all internal boundaries once each, as (patch, side,
// neighbor) triples ordered by patch name. Each shared boundary appears
// from the side whose patch name sorts first.
func (a *Adjacency) Links() []struct {
	Patch string
	Side  geometry.Side
	With  Neighbor
} {
	var out []struct {
		Patch string
		Side  geometry.Side
		With  Neighbor
	}
	for _, name := range patchOrder() {
		for _, side := range []geometry.Side{geometry.North, geometry.East, geometry.South, geometry.West} {
			n, ok := a.links[name][side]
			if !ok {
				continue
			}
			// Emit each link once, from the lexicographically first
			// endpoint (ties broken by side).
			if n.Patch < name {
				continue
			}
			out = append(out, struct {
				Patch string
				Side  geometry.Side
				With  Neighbor
			}{name, side, n})
		}
	}
	return out
}

func (a *Adjacency) add(p1 string, s1 geometry.Side, p2 string, s2 geometry.Side) {
	if a.links[p1] == nil {
		a.links[p1] = make(map[geometry.Side]Neighbor)
	}
	if a.links[p2] == nil {
		a.links[p2] = make(map[geometry.Side]Neighbor)
	}
	a.links[p1][s1] = Neighbor{Patch: p2, Side: s2}
	a.links[p2][s2] = Neighbor{Patch: p1, Side: s1}
}

// SF45Adjacency returns the fixed neighbor graph of the two-null
// 45-degree patch family. The graph depends only on the family, not on
// any particular equilibrium.
func SF45Adjacency() *Adjacency { return sf45Adjacency() }

// sf45Adjacency encodes the neighbor graph of the two-null 45-degree
// topology. Row 1 wraps around the core (E1 east meets B1 west) and
// through the primary private-flux region (A1 east meets F1 west); the
// secondary private-flux dome couples the G and H columns.
func sf45Adjacency() *Adjacency {
	a := &Adjacency{links: make(map[string]map[geometry.Side]Neighbor)}

	// Radial stacks within each column.
	for _, col := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"} {
		a.add(col+"1", geometry.North, col+"2", geometry.South)
		a.add(col+"2", geometry.North, col+"3", geometry.South)
	}

	// Poloidal chains, east side first.
	pol := [][2]string{
		{"A2", "B2"}, {"A3", "B3"}, {"A1", "F1"},
		{"B1", "C1"}, {"B2", "C2"}, {"B3", "C3"},
		{"C1", "D1"}, {"C2", "D2"}, {"C3", "D3"},
		{"D1", "E1"}, {"D2", "E2"}, {"D3", "E3"},
		{"E1", "B1"}, {"E2", "F2"}, {"E3", "F3"},
		{"F1", "I1"}, {"F2", "I2"}, {"F3", "G3"},
		{"H1", "G1"}, {"H2", "G2"}, {"H3", "I3"},
	}
	for _, p := range pol {
		a.add(p[0], geometry.East, p[1], geometry.West)
	}
	return a
}

// BoundaryMismatch reports a shared boundary whose endpoints disagree
// between the two patches that own it.
type BoundaryMismatch struct {
	Patch    string
	Side     geometry.Side
	With     Neighbor
	Distance float64
}

func (m BoundaryMismatch) Error() string {
	return fmt.Sprintf("topology: boundary %s.%v does not meet %s.%v (endpoints differ by %g)",
		m.Patch, m.Side, m.With.Patch, m.With.Side, m.Distance)
}

// VerifyBoundaries checks every internal boundary of the adjacency
// graph: the endpoints of the two patches' shared sides must coincide
// within tol. Mismatches are reported, never repaired. Patches missing
// from the map are skipped.
func VerifyBoundaries(adj *Adjacency, patches map[string]*geometry.Patch, tol float64) []BoundaryMismatch {
	var out []BoundaryMismatch
	for _, link := range adj.Links() {
		p1, ok := patches[link.Patch]
		if !ok {
			continue
		}
		p2, ok := patches[link.With.Patch]
		if !ok {
			continue
		}
		d := endpointMismatch(p1.Boundary(link.Side), p2.Boundary(link.With.Side))
		if d > tol {
			out = append(out, BoundaryMismatch{
				Patch: link.Patch, Side: link.Side, With: link.With, Distance: d,
			})
		}
	}
	return out
}

// endpointMismatch measures how far apart two renditions of the same
// boundary are at their ends, allowing for opposite orientations.
func endpointMismatch(l1, l2 geometry.Line) float64 {
	a0, a1 := l1.Endpoints()
	b0, b1 := l2.Endpoints()
	direct := math.Max(pointDist(a0, b0), pointDist(a1, b1))
	flipped := math.Max(pointDist(a0, b1), pointDist(a1, b0))
	return math.Min(direct, flipped)
}

func pointDist(a, b geom.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
