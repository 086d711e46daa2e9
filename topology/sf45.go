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
	"github.com/ctessum/geom"

	"github.com/fusionmodel/divgrid/geometry"
	"github.com/fusionmodel/divgrid/trace"
)

// construct runs the two-null 45-degree recipe. Lines are traced in
// dependency order; each result is named after the patch boundary it
// becomes (west-to-east along North edges, south-to-north along West
// edges), and reversed copies provide the matching boundary of the
// neighboring patch so adjacent patches share sample values exactly.
func (a *Assembler) construct(b *builder, r *Result) {
	p := a.Params
	xpt1, xpt2 := p.Xpt1, p.Xpt2

	westMid := refLine(p.MagAxis, p.InnerTilt)
	eastMid := refLine(p.MagAxis, p.OuterTilt)
	topLine := verticalLine(p.MagAxis)

	// Primary separatrix legs and the core region boundaries.
	xpt1N__psiMinCore := b.draw("xpt1N__psiMinCore",
		xpt1.N, true, trace.PsiTarget{Psi: p.PsiMinCore}, trace.AcrossSurfaces, trace.CW)
	E1_E := xpt1N__psiMinCore
	B1_W := rev(E1_E)

	xpt1NW__westMid := b.draw("xpt1NW__westMid",
		xpt1.NW, true, target(westMid), trace.AlongSurface, trace.CW)
	B1_N := xpt1NW__westMid
	B2_S := rev(B1_N)

	xpt1NE__eastMid := b.draw("xpt1NE__eastMid",
		xpt1.NE, true, target(eastMid), trace.AlongSurface, trace.CCW)
	E1_N := rev(xpt1NE__eastMid)
	E2_S := rev(E1_N)

	wmEnd, wmOK := end(xpt1NW__westMid)
	westMid__topLine := b.draw("westMid__topLine",
		wmEnd, wmOK, target(topLine), trace.AlongSurface, trace.CW)
	C1_N := westMid__topLine
	C2_S := rev(C1_N)

	emEnd, emOK := end(xpt1NE__eastMid)
	eastMid__topLine := b.draw("eastMid__topLine",
		emEnd, emOK, target(topLine), trace.AlongSurface, trace.CCW)
	D1_N := rev(eastMid__topLine)
	D2_S := rev(D1_N)

	coreEnd, coreOK := end(xpt1N__psiMinCore)
	psiMinCore__westMid := b.draw("psiMinCore__westMid",
		coreEnd, coreOK, target(westMid), trace.AlongSurface, trace.CW)
	B1_S := rev(psiMinCore__westMid)

	psiMinCore__eastMid := b.draw("psiMinCore__eastMid",
		coreEnd, coreOK, target(eastMid), trace.AlongSurface, trace.CCW)
	E1_S := psiMinCore__eastMid

	cwEnd, cwOK := end(psiMinCore__westMid)
	coreWest__topLine := b.draw("coreWest__topLine",
		cwEnd, cwOK, target(topLine), trace.AlongSurface, trace.CW)
	C1_S := rev(coreWest__topLine)

	ceEnd, ceOK := end(psiMinCore__eastMid)
	coreEast__topLine := b.draw("coreEast__topLine",
		ceEnd, ceOK, target(topLine), trace.AlongSurface, trace.CCW)
	D1_S := coreEast__topLine

	// Primary private-flux region.
	xpt1__psiMinPF1 := b.draw("xpt1__psiMinPF1",
		xpt1.S, true, trace.PsiTarget{Psi: p.PsiMinPF}, trace.AcrossSurfaces, trace.CW)
	A1_E := xpt1__psiMinPF1
	F1_W := rev(A1_E)

	pfEnd, pfOK := end(xpt1__psiMinPF1)
	psiMinPF1__westPlate1 := b.draw("psiMinPF1__westPlate1",
		pfEnd, pfOK, target(p.WestPlate1), trace.AlongSurface, trace.CCW)
	A1_S := psiMinPF1__westPlate1

	psiMinPF1__eastPlate1 := b.draw("psiMinPF1__eastPlate1",
		pfEnd, pfOK, target(p.EastPlate1), trace.AlongSurface, trace.CW)

	xpt1__westPlate1 := b.draw("xpt1__westPlate1",
		xpt1.SW, true, target(p.WestPlate1), trace.AlongSurface, trace.CCW)
	A2_S := xpt1__westPlate1
	A1_N := rev(A2_S)

	xpt1__eastPlate1 := b.draw("xpt1__eastPlate1",
		xpt1.SE, true, target(p.EastPlate1), trace.AlongSurface, trace.CW)

	// Secondary X-point drops into the primary PF leg, splitting the
	// F and I columns.
	F2_E := b.draw("F2_E",
		xpt2.N, true, target(xpt1__eastPlate1), trace.AcrossSurfaces, trace.CW)
	f2eEnd, f2eOK := end(F2_E)
	F1_E := b.draw("F1_E",
		f2eEnd, f2eOK, target(psiMinPF1__eastPlate1), trace.AcrossSurfaces, trace.CW)
	I1_W := rev(F1_E)
	I2_W := rev(F2_E)

	i2wStart, i2wOK := start(I2_W)
	F1_N, I1_N := b.split("F1_N", "I1_N", xpt1__eastPlate1, i2wStart, i2wOK)
	I2_S := rev(I1_N)
	F2_S := rev(F1_N)

	i1wStart, i1wOK := start(I1_W)
	I1_S, F1_S := b.split("I1_S", "F1_S", rev(psiMinPF1__eastPlate1), i1wStart, i1wOK)

	I2_N := b.draw("I2_N",
		xpt2.NW, true, target(p.EastPlate1), trace.AlongSurface, trace.CW)
	I3_S := rev(I2_N)

	// Secondary separatrix through the outboard midplane.
	xpt2NE__eastMid := b.draw("xpt2NE__eastMid",
		xpt2.NE, true, target(eastMid), trace.AlongSurface, trace.CCW)

	F2_W := b.draw("F2_W",
		xpt1.E, true, target(xpt2NE__eastMid), trace.AcrossSurfaces, trace.CCW)
	E2_E := rev(F2_W)

	f2wEnd, f2wOK := end(F2_W)
	E2_N, F2_N := b.split("E2_N", "F2_N", rev(xpt2NE__eastMid), f2wEnd, f2wOK)
	F3_S := rev(F2_N)
	E3_S := rev(E2_N)

	x2eEnd, x2eOK := end(xpt2NE__eastMid)
	xpt2__eastMid__topLine := b.draw("xpt2__eastMid__topLine",
		x2eEnd, x2eOK, target(topLine), trace.AlongSurface, trace.CCW)
	D3_S := xpt2__eastMid__topLine
	D2_N := rev(D3_S)

	x2tEnd, x2tOK := end(xpt2__eastMid__topLine)
	xpt2__topLine__westMid := b.draw("xpt2__topLine__westMid",
		x2tEnd, x2tOK, target(westMid), trace.AlongSurface, trace.CCW)
	C3_S := xpt2__topLine__westMid
	C2_N := rev(C3_S)

	x2wEnd, x2wOK := end(xpt2__topLine__westMid)
	xpt2__westMid__westPlate1 := b.draw("xpt2__westMid__westPlate1",
		x2wEnd, x2wOK, target(p.WestPlate1), trace.AlongSurface, trace.CCW)

	B2_W := b.draw("B2_W",
		xpt1.W, true, target(xpt2__westMid__westPlate1), trace.AcrossSurfaces, trace.CCW)
	A2_E := rev(B2_W)

	b2wEnd, b2wOK := end(B2_W)
	A2_N, B2_N := b.split("A2_N", "B2_N", rev(xpt2__westMid__westPlate1), b2wEnd, b2wOK)
	A3_S := rev(A2_N)
	B3_S := rev(B2_N)

	// Secondary private-flux dome, split at its midpoint into the G
	// and H column interface.
	xpt2__psiMinPF2 := b.draw("xpt2__psiMinPF2",
		xpt2.S, true, trace.PsiTarget{Psi: p.PsiPF2}, trace.AcrossSurfaces, trace.CW)
	domeMidOK := valid(xpt2__psiMinPF2)
	var domeMidPoint geom.Point
	if domeMidOK {
		domeMidPoint = xpt2__psiMinPF2.P[xpt2__psiMinPF2.Len()/2]
	}
	G1_W, G2_W := b.split("G1_W", "G2_W", rev(xpt2__psiMinPF2), domeMidPoint, domeMidOK)
	H1_E := rev(G1_W)
	H2_E := rev(G2_W)

	g1wStart, g1wOK := start(G1_W)
	G1_S := rev(b.draw("G1_S",
		g1wStart, g1wOK, target(p.EastPlate2), trace.AlongSurface, trace.CW))
	H1_S := b.draw("H1_S",
		g1wStart, g1wOK, target(p.WestPlate2), trace.AlongSurface, trace.CCW)

	g2wStart, g2wOK := start(G2_W)
	G1_N := b.draw("G1_N",
		g2wStart, g2wOK, target(p.EastPlate2), trace.AlongSurface, trace.CW)
	G2_S := rev(G1_N)
	H1_N := rev(b.draw("H1_N",
		g2wStart, g2wOK, target(p.WestPlate2), trace.AlongSurface, trace.CCW))
	H2_S := rev(H1_N)

	G2_N := b.draw("G2_N",
		xpt2.SE, true, target(p.EastPlate2), trace.AlongSurface, trace.CW)
	G3_S := rev(G2_N)
	H2_N := rev(b.draw("H2_N",
		xpt2.SW, true, target(p.WestPlate2), trace.AlongSurface, trace.CCW))
	H3_S := rev(H2_N)

	// Outer scrape-off layer bounded by the east and west psi maxima.
	H3_E := rev(b.draw("H3_E",
		xpt2.W, true, trace.PsiTarget{Psi: p.PsiMaxEast}, trace.AcrossSurfaces, trace.CCW))
	I3_W := rev(H3_E)

	h3eStart, h3eOK := start(H3_E)
	H3_N := rev(b.draw("H3_N",
		h3eStart, h3eOK, target(p.EastPlate1), trace.AlongSurface, trace.CCW))
	I3_N := b.draw("I3_N",
		h3eStart, h3eOK, target(p.EastPlate1), trace.AlongSurface, trace.CW)

	G3_W := b.draw("G3_W",
		xpt2.E, true, trace.PsiTarget{Psi: p.PsiMaxWest}, trace.AcrossSurfaces, trace.CCW)
	F3_E := rev(G3_W)

	g3wEnd, g3wOK := end(G3_W)
	G3_N := b.draw("G3_N",
		g3wEnd, g3wOK, target(p.EastPlate2), trace.AlongSurface, trace.CW)
	G3_W__eastMid := b.draw("G3_W__eastMid",
		g3wEnd, g3wOK, target(eastMid), trace.AlongSurface, trace.CCW)

	F3_W := b.draw("F3_W",
		f2wEnd, f2wOK, target(G3_W__eastMid), trace.AcrossSurfaces, trace.CCW)
	E3_E := rev(F3_W)

	f3wEnd, f3wOK := end(F3_W)
	E3_N, F3_N := b.split("E3_N", "F3_N", rev(G3_W__eastMid), f3wEnd, f3wOK)

	e3nStart, e3nOK := start(E3_N)
	D3_N := rev(b.draw("D3_N",
		e3nStart, e3nOK, target(topLine), trace.AlongSurface, trace.CCW))

	d3nStart, d3nOK := start(D3_N)
	C3_N := rev(b.draw("C3_N",
		d3nStart, d3nOK, target(westMid), trace.AlongSurface, trace.CCW))

	c3nStart, c3nOK := start(C3_N)
	westMid__westPlate1 := b.draw("westMid__westPlate1",
		c3nStart, c3nOK, target(p.WestPlate1), trace.AlongSurface, trace.CCW)

	B3_W := b.draw("B3_W",
		b2wEnd, b2wOK, target(westMid__westPlate1), trace.AcrossSurfaces, trace.CCW)
	A3_E := rev(B3_W)

	b3wEnd, b3wOK := end(B3_W)
	A3_N, B3_N := b.split("A3_N", "B3_N", rev(westMid__westPlate1), b3wEnd, b3wOK)

	// Connector edges along the reference lines, at constant Z for the
	// B|C interface and constant R for C|D. The E|D interface mirrors
	// B|C from the other side.
	psiXpt2 := a.Psi.Psi(xpt2.Center.X, xpt2.Center.Y)

	b1nEnd, b1nOK := end(B1_N)
	B1_E := b.draw("B1_E",
		b1nEnd, b1nOK, trace.PsiAtConstZ{Psi: p.PsiMinCore}, trace.ConstantZ, trace.CW)
	C1_W := rev(B1_E)
	b2nEnd, b2nOK := end(B2_N)
	B2_E := b.draw("B2_E",
		b2nEnd, b2nOK, trace.PsiAtConstZ{Psi: 1}, trace.ConstantZ, trace.CW)
	C2_W := rev(B2_E)
	b3nEnd, b3nOK := end(B3_N)
	B3_E := b.draw("B3_E",
		b3nEnd, b3nOK, trace.PsiAtConstZ{Psi: psiXpt2}, trace.ConstantZ, trace.CW)
	C3_W := rev(B3_E)

	c1nEnd, c1nOK := end(C1_N)
	C1_E := b.draw("C1_E",
		c1nEnd, c1nOK, trace.PsiAtConstR{Psi: p.PsiMinCore}, trace.ConstantR, trace.CCW)
	D1_W := rev(C1_E)
	c2nEnd, c2nOK := end(C2_N)
	C2_E := b.draw("C2_E",
		c2nEnd, c2nOK, trace.PsiAtConstR{Psi: 1}, trace.ConstantR, trace.CCW)
	D2_W := rev(C2_E)
	c3nEnd, c3nOK := end(C3_N)
	C3_E := b.draw("C3_E",
		c3nEnd, c3nOK, trace.PsiAtConstR{Psi: psiXpt2}, trace.ConstantR, trace.CCW)
	D3_W := rev(C3_E)

	e1nStart, e1nOK := start(E1_N)
	E1_W := rev(b.draw("E1_W",
		e1nStart, e1nOK, trace.PsiAtConstZ{Psi: p.PsiMinCore}, trace.ConstantZ, trace.CCW))
	D1_E := rev(E1_W)
	e2nStart, e2nOK := start(E2_N)
	E2_W := rev(b.draw("E2_W",
		e2nStart, e2nOK, trace.PsiAtConstZ{Psi: 1}, trace.ConstantZ, trace.CCW))
	D2_E := rev(E2_W)
	E3_W := rev(b.draw("E3_W",
		e3nStart, e3nOK, trace.PsiAtConstZ{Psi: psiXpt2}, trace.ConstantZ, trace.CCW))
	D3_E := rev(E3_W)

	// Plate sections between consecutive strike points.
	a1sEnd, a1sOK := end(A1_S)
	a1nStart, a1nOK := start(A1_N)
	A1_W := b.plateSection("A1_W", p.WestPlate1, a1sEnd, a1sOK, a1nStart, a1nOK)
	a2sEnd, a2sOK := end(A2_S)
	a2nStart, a2nOK := start(A2_N)
	A2_W := b.plateSection("A2_W", p.WestPlate1, a2sEnd, a2sOK, a2nStart, a2nOK)
	a3sEnd, a3sOK := end(A3_S)
	a3nStart, a3nOK := start(A3_N)
	A3_W := b.plateSection("A3_W", p.WestPlate1, a3sEnd, a3sOK, a3nStart, a3nOK)

	h1sEnd, h1sOK := end(H1_S)
	h1nStart, h1nOK := start(H1_N)
	H1_W := b.plateSection("H1_W", p.WestPlate2, h1sEnd, h1sOK, h1nStart, h1nOK)
	h2sEnd, h2sOK := end(H2_S)
	h2nStart, h2nOK := start(H2_N)
	H2_W := b.plateSection("H2_W", p.WestPlate2, h2sEnd, h2sOK, h2nStart, h2nOK)
	h3sEnd, h3sOK := end(H3_S)
	h3nStart, h3nOK := start(H3_N)
	H3_W := b.plateSection("H3_W", p.WestPlate2, h3sEnd, h3sOK, h3nStart, h3nOK)

	i1nEnd, i1nOK := end(I1_N)
	i1sStart, i1sOK := start(I1_S)
	I1_E := b.plateSection("I1_E", p.EastPlate1, i1nEnd, i1nOK, i1sStart, i1sOK)
	i2nEnd, i2nOK := end(I2_N)
	i2sStart, i2sOK := start(I2_S)
	I2_E := b.plateSection("I2_E", p.EastPlate1, i2nEnd, i2nOK, i2sStart, i2sOK)
	i3nEnd, i3nOK := end(I3_N)
	i3sStart, i3sOK := start(I3_S)
	I3_E := b.plateSection("I3_E", p.EastPlate1, i3nEnd, i3nOK, i3sStart, i3sOK)

	g1nEnd, g1nOK := end(G1_N)
	g1sStart, g1sOK := start(G1_S)
	G1_E := b.plateSection("G1_E", p.EastPlate2, g1nEnd, g1nOK, g1sStart, g1sOK)
	g2nEnd, g2nOK := end(G2_N)
	g2sStart, g2sOK := start(G2_S)
	G2_E := b.plateSection("G2_E", p.EastPlate2, g2nEnd, g2nOK, g2sStart, g2sOK)
	g3nEnd, g3nOK := end(G3_N)
	g3sStart, g3sOK := start(G3_S)
	G3_E := b.plateSection("G3_E", p.EastPlate2, g3nEnd, g3nOK, g3sStart, g3sOK)

	// Assemble the patch set. The A and H columns face their plates on
	// the west, I and G on the east.
	b.patch(r, "A1", A1_N, A1_E, A1_S, A1_W, true, geometry.West)
	b.patch(r, "A2", A2_N, A2_E, A2_S, A2_W, true, geometry.West)
	b.patch(r, "A3", A3_N, A3_E, A3_S, A3_W, true, geometry.West)
	b.patch(r, "B1", B1_N, B1_E, B1_S, B1_W, false, 0)
	b.patch(r, "B2", B2_N, B2_E, B2_S, B2_W, false, 0)
	b.patch(r, "B3", B3_N, B3_E, B3_S, B3_W, false, 0)
	b.patch(r, "C1", C1_N, C1_E, C1_S, C1_W, false, 0)
	b.patch(r, "C2", C2_N, C2_E, C2_S, C2_W, false, 0)
	b.patch(r, "C3", C3_N, C3_E, C3_S, C3_W, false, 0)
	b.patch(r, "D1", D1_N, D1_E, D1_S, D1_W, false, 0)
	b.patch(r, "D2", D2_N, D2_E, D2_S, D2_W, false, 0)
	b.patch(r, "D3", D3_N, D3_E, D3_S, D3_W, false, 0)
	b.patch(r, "E1", E1_N, E1_E, E1_S, E1_W, false, 0)
	b.patch(r, "E2", E2_N, E2_E, E2_S, E2_W, false, 0)
	b.patch(r, "E3", E3_N, E3_E, E3_S, E3_W, false, 0)
	b.patch(r, "F1", F1_N, F1_E, F1_S, F1_W, false, 0)
	b.patch(r, "F2", F2_N, F2_E, F2_S, F2_W, false, 0)
	b.patch(r, "F3", F3_N, F3_E, F3_S, F3_W, false, 0)
	b.patch(r, "G1", G1_N, G1_E, G1_S, G1_W, true, geometry.East)
	b.patch(r, "G2", G2_N, G2_E, G2_S, G2_W, true, geometry.East)
	b.patch(r, "G3", G3_N, G3_E, G3_S, G3_W, true, geometry.East)
	b.patch(r, "H1", H1_N, H1_E, H1_S, H1_W, true, geometry.West)
	b.patch(r, "H2", H2_N, H2_E, H2_S, H2_W, true, geometry.West)
	b.patch(r, "H3", H3_N, H3_E, H3_S, H3_W, true, geometry.West)
	b.patch(r, "I1", I1_N, I1_E, I1_S, I1_W, true, geometry.East)
	b.patch(r, "I2", I2_N, I2_E, I2_S, I2_W, true, geometry.East)
	b.patch(r, "I3", I3_N, I3_E, I3_S, I3_W, true, geometry.East)

	SnapCorners(r.Patches, xpt1, xpt2)
}
